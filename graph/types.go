// Package graph: central types, sentinel errors, and the Graph constructor.
//
// This file declares Edge, Direction, Neighbor, the query option structs,
// the Graph store itself, and every sentinel error the package returns.

package graph

import "errors"

// Sentinel errors for graph construction and queries.
var (
	// ErrBadAddressPart indicates an address part containing the NUL separator.
	ErrBadAddressPart = errors.New("graph: address part contains NUL")

	// ErrMalformedAddress indicates an address value not produced by a constructor.
	ErrMalformedAddress = errors.New("graph: malformed address encoding")

	// ErrNoSuchNode indicates an operation referenced a node absent from the graph.
	ErrNoSuchNode = errors.New("graph: no such node")

	// ErrNodeInUse indicates a node removal while incident edges remain.
	ErrNodeInUse = errors.New("graph: node has incident edges")

	// ErrEdgeConflict indicates an edge address already bound to different endpoints.
	ErrEdgeConflict = errors.New("graph: edge address bound to different endpoints")

	// ErrInvalidDirection indicates a Direction value outside Any/In/Out.
	ErrInvalidDirection = errors.New("graph: invalid direction")

	// ErrNilGraph indicates a nil *Graph where a non-nil one is required.
	ErrNilGraph = errors.New("graph: graph is nil")

	// ErrFormatVersion indicates serialized data with an unsupported version tag.
	ErrFormatVersion = errors.New("graph: unsupported serialization version")
)

// Edge is a directed connection between two nodes. Address identifies the
// edge itself, so parallel edges between the same endpoints are distinct
// as long as their addresses differ. Both endpoints must be present in
// the graph an edge is added to.
type Edge struct {
	// Address uniquely identifies this edge within its graph.
	Address EdgeAddress

	// Src is the source node address.
	Src NodeAddress

	// Dst is the destination node address.
	Dst NodeAddress
}

// Direction selects edge orientations relative to a target node.
type Direction uint8

const (
	// Any matches both orientations. A self-loop matches once per
	// orientation, so it appears twice under Any; downstream weight sums
	// rely on that doubling.
	Any Direction = iota

	// In matches edges whose Dst is the target.
	In

	// Out matches edges whose Src is the target.
	Out
)

// String names the direction for logs and error text.
func (d Direction) String() string {
	switch d {
	case Any:
		return "ANY"
	case In:
		return "IN"
	case Out:
		return "OUT"
	default:
		return "INVALID"
	}
}

// NeighborsOptions filters a Neighbors query.
// The zero value matches every incident edge in both orientations.
type NeighborsOptions struct {
	// Direction restricts the orientation (Any, In, Out).
	Direction Direction

	// NodePrefix keeps only entries whose adjacent node has this prefix.
	NodePrefix NodeAddress

	// EdgePrefix keeps only entries whose edge address has this prefix.
	EdgePrefix EdgeAddress
}

// Neighbor is one incident-edge entry: the adjacent node, the edge, and
// the orientation under which the edge matched (always In or Out, never
// Any). A self-loop queried under Any yields one In and one Out entry.
type Neighbor struct {
	Node      NodeAddress
	Edge      Edge
	Direction Direction
}

// EdgeFilter narrows an Edges listing by address prefixes.
// The zero value matches every edge.
type EdgeFilter struct {
	// AddressPrefix keeps edges whose own address has this prefix.
	AddressPrefix EdgeAddress

	// SrcPrefix keeps edges whose source node has this prefix.
	SrcPrefix NodeAddress

	// DstPrefix keeps edges whose destination node has this prefix.
	DstPrefix NodeAddress
}

// Graph is a mutable store of nodes and edges keyed by address.
//
// Nodes carry no payload beyond their address. Every state-changing
// mutation increments a monotonic modification counter; derived views
// snapshot the counter and treat any later mismatch as a hard error, so
// a Graph needs no locks: it is confined to a single goroutine and the
// counter is the safety mechanism for outstanding views.
type Graph struct {
	nodes map[NodeAddress]struct{}
	edges map[EdgeAddress]Edge

	// inEdges[dst] and outEdges[src] index incident edge addresses.
	// A self-loop is indexed in both.
	inEdges  map[NodeAddress]map[EdgeAddress]struct{}
	outEdges map[NodeAddress]map[EdgeAddress]struct{}

	// modCount increments once per effective mutation; no-ops leave it be.
	modCount uint64
}

// New creates an empty Graph.
// Complexity: O(1).
func New() *Graph {
	return &Graph{
		nodes:    make(map[NodeAddress]struct{}),
		edges:    make(map[EdgeAddress]Edge),
		inEdges:  make(map[NodeAddress]map[EdgeAddress]struct{}),
		outEdges: make(map[NodeAddress]map[EdgeAddress]struct{}),
	}
}
