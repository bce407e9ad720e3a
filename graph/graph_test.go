package graph_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/credrank/graph"
)

var (
	nA = graph.MustNodeAddress("n", "a")
	nB = graph.MustNodeAddress("n", "b")
	nC = graph.MustNodeAddress("n", "c")

	eAB = graph.Edge{Address: graph.MustEdgeAddress("e", "ab"), Src: nA, Dst: nB}
	eBC = graph.Edge{Address: graph.MustEdgeAddress("e", "bc"), Src: nB, Dst: nC}
)

// buildTriangle assembles a three-node, two-edge fixture.
func buildTriangle(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, n := range []graph.NodeAddress{nA, nB, nC} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n, err)
		}
	}
	for _, e := range []graph.Edge{eAB, eBC} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s): %v", e.Address, err)
		}
	}

	return g
}

// TestGraph_AddNodeIdempotent verifies re-adding a node is a silent no-op
// that does not advance the modification counter.
func TestGraph_AddNodeIdempotent(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(nA); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	before := g.ModificationCount()
	if err := g.AddNode(nA); err != nil {
		t.Fatalf("re-AddNode: %v", err)
	}
	if got := g.ModificationCount(); got != before {
		t.Errorf("counter moved on no-op re-add: %d -> %d", before, got)
	}
	if got := g.NodeCount(); got != 1 {
		t.Errorf("NodeCount = %d; want 1", got)
	}
}

// TestGraph_AddEdgeValidation covers missing endpoints, conflicts, and
// idempotent re-adds.
func TestGraph_AddEdgeValidation(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(nA); err != nil {
		t.Fatal(err)
	}
	// dst absent
	if err := g.AddEdge(eAB); !errors.Is(err, graph.ErrNoSuchNode) {
		t.Errorf("missing dst: want ErrNoSuchNode, got %v", err)
	}
	if err := g.AddNode(nB); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(eAB); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	// byte-identical re-add is a no-op
	before := g.ModificationCount()
	if err := g.AddEdge(eAB); err != nil {
		t.Errorf("identical re-add: want nil, got %v", err)
	}
	if got := g.ModificationCount(); got != before {
		t.Errorf("counter moved on no-op edge re-add: %d -> %d", before, got)
	}
	// same address, different endpoints
	conflict := graph.Edge{Address: eAB.Address, Src: nB, Dst: nA}
	if err := g.AddEdge(conflict); !errors.Is(err, graph.ErrEdgeConflict) {
		t.Errorf("conflicting endpoints: want ErrEdgeConflict, got %v", err)
	}
}

// TestGraph_RemoveNodePolicy verifies a node with incident edges cannot be
// removed until its edges are gone.
func TestGraph_RemoveNodePolicy(t *testing.T) {
	g := buildTriangle(t)
	if err := g.RemoveNode(nB); !errors.Is(err, graph.ErrNodeInUse) {
		t.Errorf("remove endpoint: want ErrNodeInUse, got %v", err)
	}
	if err := g.RemoveEdge(eAB.Address); err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveEdge(eBC.Address); err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveNode(nB); err != nil {
		t.Errorf("remove after edge cleanup: want nil, got %v", err)
	}
	// removing an absent node is a no-op
	before := g.ModificationCount()
	if err := g.RemoveNode(nB); err != nil {
		t.Errorf("remove absent: want nil, got %v", err)
	}
	if got := g.ModificationCount(); got != before {
		t.Errorf("counter moved on no-op remove: %d -> %d", before, got)
	}
}

// TestGraph_MalformedAddress verifies raw casts are rejected by mutators.
func TestGraph_MalformedAddress(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(graph.NodeAddress("raw-cast")); !errors.Is(err, graph.ErrMalformedAddress) {
		t.Errorf("raw cast: want ErrMalformedAddress, got %v", err)
	}
}

// TestGraph_Listings verifies sorted, prefix-filtered Nodes and Edges.
func TestGraph_Listings(t *testing.T) {
	g := buildTriangle(t)
	if got, want := g.Nodes(""), []graph.NodeAddress{nA, nB, nC}; !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes = %v; want %v", got, want)
	}
	if got := g.Nodes(graph.MustNodeAddress("n", "b")); !reflect.DeepEqual(got, []graph.NodeAddress{nB}) {
		t.Errorf("Nodes(prefix n/b) = %v; want [%v]", got, nB)
	}
	all := g.Edges(graph.EdgeFilter{})
	if got, want := len(all), 2; got != want {
		t.Fatalf("Edges len = %d; want %d", got, want)
	}
	if all[0].Address != eAB.Address || all[1].Address != eBC.Address {
		t.Errorf("Edges order = [%v %v]; want [%v %v]",
			all[0].Address, all[1].Address, eAB.Address, eBC.Address)
	}
	bySrc := g.Edges(graph.EdgeFilter{SrcPrefix: nB})
	if len(bySrc) != 1 || bySrc[0].Address != eBC.Address {
		t.Errorf("Edges(SrcPrefix=nB) = %v; want [%v]", bySrc, eBC.Address)
	}
	byDst := g.Edges(graph.EdgeFilter{DstPrefix: nB})
	if len(byDst) != 1 || byDst[0].Address != eAB.Address {
		t.Errorf("Edges(DstPrefix=nB) = %v; want [%v]", byDst, eAB.Address)
	}
}

// TestGraph_EqualsOrderInsensitive builds one node/edge set along two
// mutation histories and expects structural equality both ways.
func TestGraph_EqualsOrderInsensitive(t *testing.T) {
	g1 := buildTriangle(t)

	g2 := graph.New()
	// reversed insertion order, plus a detour that gets undone
	for _, n := range []graph.NodeAddress{nC, nB, nA} {
		if err := g2.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	detour := graph.Edge{Address: graph.MustEdgeAddress("e", "tmp"), Src: nC, Dst: nA}
	if err := g2.AddEdge(detour); err != nil {
		t.Fatal(err)
	}
	if err := g2.AddEdge(eBC); err != nil {
		t.Fatal(err)
	}
	if err := g2.AddEdge(eAB); err != nil {
		t.Fatal(err)
	}
	if err := g2.RemoveEdge(detour.Address); err != nil {
		t.Fatal(err)
	}

	if !g1.Equals(g2) || !g2.Equals(g1) {
		t.Error("structurally identical graphs must be Equals both ways")
	}
	if !g1.Equals(g1) {
		t.Error("Equals must be reflexive")
	}
	if err := g2.RemoveEdge(eBC.Address); err != nil {
		t.Fatal(err)
	}
	if g1.Equals(g2) {
		t.Error("edge sets differ; graphs must not be Equals")
	}
	if g1.Equals(nil) {
		t.Error("nil graph must never be Equals")
	}
}

// TestGraph_Copy verifies independence of the copy.
func TestGraph_Copy(t *testing.T) {
	g := buildTriangle(t)
	c := g.Copy()
	if !g.Equals(c) {
		t.Fatal("copy must be structurally equal to the original")
	}
	if err := c.RemoveEdge(eAB.Address); err != nil {
		t.Fatal(err)
	}
	if !g.HasEdge(eAB.Address) {
		t.Error("mutating the copy must not touch the original")
	}
}

// TestGraph_Merge verifies union semantics and conflict rejection.
func TestGraph_Merge(t *testing.T) {
	g1 := graph.New()
	if err := g1.AddNode(nA); err != nil {
		t.Fatal(err)
	}
	if err := g1.AddNode(nB); err != nil {
		t.Fatal(err)
	}
	if err := g1.AddEdge(eAB); err != nil {
		t.Fatal(err)
	}

	g2 := graph.New()
	if err := g2.AddNode(nB); err != nil {
		t.Fatal(err)
	}
	if err := g2.AddNode(nC); err != nil {
		t.Fatal(err)
	}
	if err := g2.AddEdge(eBC); err != nil {
		t.Fatal(err)
	}

	merged, err := graph.Merge(g1, g2)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if want := buildTriangle(t); !merged.Equals(want) {
		t.Error("merged graph differs from the expected union")
	}

	// shared address, different endpoints
	g3 := graph.New()
	if err = g3.AddNode(nA); err != nil {
		t.Fatal(err)
	}
	if err = g3.AddNode(nC); err != nil {
		t.Fatal(err)
	}
	if err = g3.AddEdge(graph.Edge{Address: eAB.Address, Src: nC, Dst: nA}); err != nil {
		t.Fatal(err)
	}
	if _, err = graph.Merge(g1, g3); !errors.Is(err, graph.ErrEdgeConflict) {
		t.Errorf("conflicting merge: want ErrEdgeConflict, got %v", err)
	}
	if _, err = graph.Merge(g1, nil); !errors.Is(err, graph.ErrNilGraph) {
		t.Errorf("nil input: want ErrNilGraph, got %v", err)
	}
}
