package graph_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/credrank/graph"
)

// TestNeighbors_Directions verifies In/Out/Any views of a small fan.
func TestNeighbors_Directions(t *testing.T) {
	g := buildTriangle(t) // A -eAB-> B -eBC-> C

	in, err := g.Neighbors(nB, graph.NeighborsOptions{Direction: graph.In})
	if err != nil {
		t.Fatalf("Neighbors(In): %v", err)
	}
	if len(in) != 1 || in[0].Node != nA || in[0].Edge != eAB || in[0].Direction != graph.In {
		t.Errorf("In neighbors of B = %+v; want [{%v %v IN}]", in, nA, eAB.Address)
	}

	out, err := g.Neighbors(nB, graph.NeighborsOptions{Direction: graph.Out})
	if err != nil {
		t.Fatalf("Neighbors(Out): %v", err)
	}
	if len(out) != 1 || out[0].Node != nC || out[0].Edge != eBC || out[0].Direction != graph.Out {
		t.Errorf("Out neighbors of B = %+v; want [{%v %v OUT}]", out, nC, eBC.Address)
	}

	any, err := g.Neighbors(nB, graph.NeighborsOptions{})
	if err != nil {
		t.Fatalf("Neighbors(Any): %v", err)
	}
	if len(any) != 2 {
		t.Fatalf("Any neighbors of B: len = %d; want 2", len(any))
	}
	// sorted by edge address: eAB before eBC
	if any[0].Edge != eAB || any[1].Edge != eBC {
		t.Errorf("Any order = [%v %v]; want [%v %v]",
			any[0].Edge.Address, any[1].Edge.Address, eAB.Address, eBC.Address)
	}
}

// TestNeighbors_SelfLoopDoubling verifies the load-bearing loop rule:
// twice under Any, once under In, once under Out.
func TestNeighbors_SelfLoopDoubling(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(nA); err != nil {
		t.Fatal(err)
	}
	loop := graph.Edge{Address: graph.MustEdgeAddress("e", "loop"), Src: nA, Dst: nA}
	if err := g.AddEdge(loop); err != nil {
		t.Fatal(err)
	}

	any, err := g.Neighbors(nA, graph.NeighborsOptions{Direction: graph.Any})
	if err != nil {
		t.Fatal(err)
	}
	if len(any) != 2 {
		t.Fatalf("self-loop under Any: len = %d; want 2", len(any))
	}
	if any[0].Direction != graph.In || any[1].Direction != graph.Out {
		t.Errorf("loop pair directions = [%v %v]; want [IN OUT]", any[0].Direction, any[1].Direction)
	}
	for _, n := range any {
		if n.Node != nA || n.Edge != loop {
			t.Errorf("loop entry = %+v; want node %v via %v", n, nA, loop.Address)
		}
	}

	for _, dir := range []graph.Direction{graph.In, graph.Out} {
		single, nerr := g.Neighbors(nA, graph.NeighborsOptions{Direction: dir})
		if nerr != nil {
			t.Fatal(nerr)
		}
		if len(single) != 1 {
			t.Errorf("self-loop under %v: len = %d; want 1", dir, len(single))
		}
	}
}

// TestNeighbors_PrefixFilters verifies node- and edge-prefix narrowing.
func TestNeighbors_PrefixFilters(t *testing.T) {
	g := buildTriangle(t)

	byNode, err := g.Neighbors(nB, graph.NeighborsOptions{NodePrefix: graph.MustNodeAddress("n", "c")})
	if err != nil {
		t.Fatal(err)
	}
	if len(byNode) != 1 || byNode[0].Node != nC {
		t.Errorf("NodePrefix n/c = %+v; want only %v", byNode, nC)
	}

	byEdge, err := g.Neighbors(nB, graph.NeighborsOptions{EdgePrefix: graph.MustEdgeAddress("e", "ab")})
	if err != nil {
		t.Fatal(err)
	}
	if len(byEdge) != 1 || byEdge[0].Edge != eAB {
		t.Errorf("EdgePrefix e/ab = %+v; want only %v", byEdge, eAB.Address)
	}

	none, err := g.Neighbors(nB, graph.NeighborsOptions{NodePrefix: graph.MustNodeAddress("elsewhere")})
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unmatched prefix: len = %d; want empty result, not error", len(none))
	}
}

// TestNeighbors_Errors verifies absent targets and bad directions fail.
func TestNeighbors_Errors(t *testing.T) {
	g := buildTriangle(t)
	if _, err := g.Neighbors(graph.MustNodeAddress("ghost"), graph.NeighborsOptions{}); !errors.Is(err, graph.ErrNoSuchNode) {
		t.Errorf("absent target: want ErrNoSuchNode, got %v", err)
	}
	if _, err := g.Neighbors(nA, graph.NeighborsOptions{Direction: graph.Direction(9)}); !errors.Is(err, graph.ErrInvalidDirection) {
		t.Errorf("direction 9: want ErrInvalidDirection, got %v", err)
	}
}
