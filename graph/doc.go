// Package graph provides the contribution graph at the heart of credrank:
// nodes and edges keyed by hierarchical addresses, with structural
// equality, canonical serialization, and change detection for derived
// views.
//
// What
//
//   - NodeAddress / EdgeAddress: two disjoint spaces of hierarchical keys,
//     ordered part-wise lexicographically, with part-boundary-safe prefix
//     matching. The empty address is the universal prefix.
//   - Graph: a mutable node/edge store. Edges are first-class (their own
//     address, Src, Dst); parallel edges and self-loops are allowed; both
//     endpoints of an edge must be present.
//   - Queries: Nodes and Edges with prefix filters, and Neighbors with an
//     orientation (Any/In/Out) plus node- and edge-prefix filters. A
//     self-loop matches once per orientation, so Any yields it twice —
//     downstream weight sums depend on that doubling.
//   - Merge: union of several graphs, rejecting edge addresses bound to
//     different endpoints.
//   - Canonical JSON: history-independent serialization (sorted addresses,
//     versioned envelope); structurally equal graphs marshal to identical
//     bytes.
//
// Change detection
//
//	Every effective mutation increments ModificationCount. Packages that
//	build read models over a Graph (see credrank/cred) snapshot the count
//	and refuse to answer once it moves. That counter — not locking — is
//	the concurrency contract: a Graph is confined to one goroutine.
//
// Determinism
//
//	Every listing is sorted in canonical address order, so iteration,
//	serialization, and all derived computations are reproducible.
//
// Errors
//
//   - ErrBadAddressPart    address part containing NUL.
//   - ErrMalformedAddress  address value not built by a constructor.
//   - ErrNoSuchNode        operation referenced an absent node.
//   - ErrNodeInUse         node removal while incident edges remain.
//   - ErrEdgeConflict      edge address bound to different endpoints.
//   - ErrInvalidDirection  direction outside Any/In/Out.
//   - ErrNilGraph          nil graph input.
//   - ErrFormatVersion     serialized envelope with an unknown version.
//
// Usage
//
//	g := graph.New()
//	alice := graph.MustNodeAddress("credrank", "github", "user", "alice")
//	commit := graph.MustNodeAddress("credrank", "git", "commit", "abc123")
//	_ = g.AddNode(alice)
//	_ = g.AddNode(commit)
//	_ = g.AddEdge(graph.Edge{
//	    Address: graph.MustEdgeAddress("credrank", "git", "authors", "abc123"),
//	    Src:     alice,
//	    Dst:     commit,
//	})
//	nbrs, err := g.Neighbors(alice, graph.NeighborsOptions{Direction: graph.Any})
//	if err != nil {
//	    // ErrNoSuchNode, ErrInvalidDirection, ...
//	}
//	_ = nbrs
package graph
