package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/pagerank"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Store persists canonical graph envelopes and score runs in a local
// SQLite database. A single connection plus a mutex keeps writes
// serialized; WAL and a busy timeout absorb short lock contention from
// concurrent readers.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open opens (creating if needed) the store at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("registry: store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("registry: store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("registry: create store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("registry: open store %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: ping store %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: initialize schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Path returns the store's file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}

	return s.path
}

// SaveGraph stores g's canonical envelope for repoID. Each save is a new
// row keyed by timestamp; LoadGraph returns the most recent one.
func (s *Store) SaveGraph(repoID string, g *graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g == nil {
		return ErrNilGraph
	}
	payload, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("registry: encode graph for %s: %w", repoID, err)
	}

	query := `
INSERT INTO graphs (repo_id, saved_at_utc, node_count, edge_count, payload)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(repo_id, saved_at_utc) DO UPDATE SET
  node_count=excluded.node_count,
  edge_count=excluded.edge_count,
  payload=excluded.payload
`
	return s.withRetry("save graph", func() error {
		_, err := s.db.Exec(
			query,
			repoID,
			time.Now().UTC().Format(time.RFC3339Nano),
			g.NodeCount(),
			g.EdgeCount(),
			payload,
		)
		return err
	})
}

// LoadGraph returns the most recently saved graph for repoID, or
// ErrNotFound if none has been saved.
func (s *Store) LoadGraph(repoID string) (*graph.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.withRetry("load graph", func() error {
		return s.db.QueryRow(
			`SELECT payload FROM graphs WHERE repo_id = ? ORDER BY saved_at_utc DESC LIMIT 1`,
			repoID,
		).Scan(&payload)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: graph for %s", ErrNotFound, repoID)
		}
		return nil, err
	}

	g, err := graph.FromJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("registry: decode graph for %s: %w", repoID, err)
	}

	return g, nil
}

// SaveScoreRun stores a settled view together with its solver outcome
// under a fresh run id, and returns that id.
func (s *Store) SaveScoreRun(repoID string, sg *cred.ScoredGraph, res *pagerank.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sg == nil {
		return "", ErrNilScoredGraph
	}
	payload, err := sg.ToJSON()
	if err != nil {
		return "", fmt.Errorf("registry: encode score run for %s: %w", repoID, err)
	}

	iterations := 0
	delta := 0.0
	if res != nil {
		iterations = res.Iterations
		delta = res.ConvergenceDelta
	}

	runID := uuid.NewString()
	query := `
INSERT INTO score_runs (
  run_id, repo_id, created_at_utc, self_loop_weight,
  iterations, convergence_delta, node_count, edge_count, payload
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	err = s.withRetry("save score run", func() error {
		_, err := s.db.Exec(
			query,
			runID,
			repoID,
			time.Now().UTC().Format(time.RFC3339Nano),
			sg.SyntheticLoopWeight(),
			iterations,
			delta,
			sg.Graph().NodeCount(),
			sg.Graph().EdgeCount(),
			payload,
		)
		return err
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

// LoadScoreRun restores the scored view persisted under runID.
func (s *Store) LoadScoreRun(runID string) (*cred.ScoredGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.withRetry("load score run", func() error {
		return s.db.QueryRow(`SELECT payload FROM score_runs WHERE run_id = ?`, runID).Scan(&payload)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: score run %s", ErrNotFound, runID)
		}
		return nil, err
	}

	sg, err := cred.FromJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("registry: decode score run %s: %w", runID, err)
	}

	return sg, nil
}

// ListScoreRuns returns the run summaries for repoID, newest first.
func (s *Store) ListScoreRuns(repoID string) ([]RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT run_id, repo_id, created_at_utc, self_loop_weight,
       iterations, convergence_delta, node_count, edge_count
FROM score_runs
WHERE repo_id = ?
ORDER BY created_at_utc DESC, run_id ASC
`
	var rows *sql.Rows
	err := s.withRetry("list score runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, repoID)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunInfo, 0)
	for rows.Next() {
		var (
			info  RunInfo
			tsRaw string
		)
		if err := rows.Scan(
			&info.RunID,
			&info.RepoID,
			&tsRaw,
			&info.SelfLoopWeight,
			&info.Iterations,
			&info.ConvergenceDelta,
			&info.NodeCount,
			&info.EdgeCount,
		); err != nil {
			return nil, fmt.Errorf("registry: scan score run row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("registry: parse run timestamp %q: %w", tsRaw, err)
		}
		info.CreatedAt = ts.UTC()
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: iterate score run rows: %w", err)
	}

	return runs, nil
}

// ListRepositories returns every repo id known to the store, across both
// saved graphs and recorded score runs, sorted ascending.
func (s *Store) ListRepositories() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT repo_id FROM graphs
UNION
SELECT repo_id FROM score_runs
ORDER BY repo_id ASC
`
	var rows *sql.Rows
	err := s.withRetry("list repositories", func() error {
		var qErr error
		rows, qErr = s.db.Query(query)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	repos := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("registry: scan repo id: %w", err)
		}
		repos = append(repos, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: iterate repo ids: %w", err)
	}

	return repos, nil
}

// withRetry reruns fn on SQLite lock contention with linear backoff.
func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}

	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
