// Package registry: sentinel errors and shared types for loading and
// persisting graphs and score runs.
package registry

import (
	"errors"
	"time"
)

// Sentinel errors for loading and persistence.
var (
	// ErrNotFound is returned when the store holds no row for the key.
	ErrNotFound = errors.New("registry: not found")

	// ErrNoGraphData is returned when an adapter directory holds neither
	// graph.json nor graph.json.gz.
	ErrNoGraphData = errors.New("registry: no graph data")

	// ErrNoLoaders is returned by a MultiLoader with nothing to load from.
	ErrNoLoaders = errors.New("registry: no loaders configured")

	// ErrNilGraph is returned when persisting a nil graph.
	ErrNilGraph = errors.New("registry: graph is nil")

	// ErrNilScoredGraph is returned when persisting a nil scored view.
	ErrNilScoredGraph = errors.New("registry: scored graph is nil")
)

// RunInfo summarizes one persisted score run.
type RunInfo struct {
	RunID            string
	RepoID           string
	CreatedAt        time.Time
	SelfLoopWeight   float64
	Iterations       int
	ConvergenceDelta float64
	NodeCount        int
	EdgeCount        int
}
