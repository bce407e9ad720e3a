package registry

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the highest migration the store understands.
const SchemaVersion = 1

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS graphs (
  repo_id TEXT NOT NULL,
  saved_at_utc TEXT NOT NULL,
  node_count INTEGER NOT NULL,
  edge_count INTEGER NOT NULL,
  payload BLOB NOT NULL,
  PRIMARY KEY (repo_id, saved_at_utc)
);
CREATE INDEX IF NOT EXISTS idx_graphs_repo ON graphs(repo_id);

CREATE TABLE IF NOT EXISTS score_runs (
  run_id TEXT PRIMARY KEY,
  repo_id TEXT NOT NULL,
  created_at_utc TEXT NOT NULL,
  self_loop_weight REAL NOT NULL,
  iterations INTEGER NOT NULL,
  convergence_delta REAL NOT NULL,
  node_count INTEGER NOT NULL,
  edge_count INTEGER NOT NULL,
  payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_score_runs_repo ON score_runs(repo_id);
CREATE INDEX IF NOT EXISTS idx_score_runs_created ON score_runs(created_at_utc);
`,
	},
}

// EnsureSchema creates the migration ledger and applies every pending
// migration inside its own transaction. A database stamped with a newer
// version than this build understands is refused.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema_migrations version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
