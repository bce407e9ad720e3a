// Package registry moves graphs and score runs between the filesystem,
// adapters, and a local SQLite database.
//
// What:
//
//	Loaders read canonical graph envelopes from per-adapter directories
//	(<dir>/<repoID>/<adapter>/graph.json, optionally gzip-compressed);
//	a MultiLoader merges several adapters into one graph. The Store keeps
//	a history of saved graphs per repository and a ledger of score runs,
//	each run persisted as the full canonical scored-graph envelope plus
//	its solver outcome under a UUID run id.
//
// Why SQLite:
//
//	Runs accumulate over time and want listing, latest-lookup, and
//	atomic writes without an external service. WAL mode plus a busy
//	timeout and a single serialized connection make the store safe for
//	one writer alongside casual readers.
//
// Errors:
//
//	ErrNotFound       - no row for the requested repo or run id
//	ErrNoGraphData    - adapter directory holds no graph file
//	ErrNoLoaders      - MultiLoader has no adapters
//	ErrNilGraph       - attempted to persist a nil graph
//	ErrNilScoredGraph - attempted to persist a nil scored view
//
// Loader errors name the adapter that failed, so a multi-adapter load
// pinpoints its source.
package registry
