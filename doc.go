// Package credrank turns contribution graphs into reputation scores — a
// pagerank engine over hierarchically addressed nodes and edges, with
// per-flow score decomposition and a persistent run registry.
//
// 🚀 What is credrank?
//
//	A library plus CLI that brings together:
//		• Hierarchical addresses: NUL-encoded part sequences whose native
//		  string order IS part-wise lexicographic order
//		• Graph store: address-keyed nodes & edges with prefix queries,
//		  merging, canonical JSON, and hard modification detection
//		• Markov chains: weighted edges folded into sparse transition rows
//		  with a synthetic self-loop so no node strands its mass
//		• Pagerank: deterministic power iteration with explicit
//		  convergence/cap semantics and cooperative cancellation
//		• Cred views: frozen score snapshots that can be scaled, decomposed
//		  flow-by-flow, serialized, and compared
//		• Registry: adapters loading graph fragments from disk, merged and
//		  persisted with every score run in SQLite
//
// ✨ Why choose credrank?
//
//   - Deterministic – same graph, same weights, same scores, bit for bit
//   - Honest staleness – views fail hard when the graph moves on, never
//     serving numbers from a graph that no longer exists
//   - Explainable – every point of score decomposes into named flows
//   - Pure Go – SQLite via modernc, no cgo
//
// Everything is organized under focused subpackages:
//
//	graph/         — addresses, the graph store, neighbors, merge, JSON
//	markov/        — edge weighing and sparse chain construction
//	pagerank/      — the stationary-distribution solver
//	cred/          — scored views: run, scale, decompose, snapshot
//	registry/      — disk loaders and the SQLite run registry
//	observability/ — zap logging and Prometheus metrics
//	cmd/credrank/  — the load / score / inspect / runs CLI
//
// Quick ASCII example:
//
//	alice ──endorses──▶ bob ──endorses──▶ cara
//
//	each endorsement carries a forward and a backward weight; scores are
//	the stationary mass each contributor retains.
//
// Dive into examples/pagerank_pipeline.go for the full walkthrough from
// graph construction to score decomposition.
//
//	go get github.com/katalvlaran/credrank
package credrank
