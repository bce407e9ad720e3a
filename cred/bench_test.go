package cred_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
)

// benchView builds a scored view over a sparse random graph.
func benchView(b *testing.B, v, e int) *cred.ScoredGraph {
	b.Helper()

	rnd := rand.New(rand.NewSource(7))
	g := graph.New()
	for i := 0; i < v; i++ {
		if err := g.AddNode(graph.MustNodeAddress("n", fmt.Sprintf("%05d", i))); err != nil {
			b.Fatal(err)
		}
	}
	for k := 0; k < e; k++ {
		edge := graph.Edge{
			Address: graph.MustEdgeAddress("rnd", fmt.Sprintf("%05d", k)),
			Src:     graph.MustNodeAddress("n", fmt.Sprintf("%05d", rnd.Intn(v))),
			Dst:     graph.MustNodeAddress("n", fmt.Sprintf("%05d", rnd.Intn(v))),
		}
		if err := g.AddEdge(edge); err != nil {
			b.Fatal(err)
		}
	}

	sg, err := cred.New(g, markov.ConstantEvaluator(1, 0.5))
	if err != nil {
		b.Fatal(err)
	}

	return sg
}

// BenchmarkRunPagerank measures a full score run at default convergence.
func BenchmarkRunPagerank(b *testing.B) {
	const v, e = 2000, 6000
	sg := benchView(b, v, e)

	b.ReportAllocs()
	b.SetBytes(int64(v + e))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := sg.RunPagerank(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecompose measures a full-graph decomposition of settled scores.
func BenchmarkDecompose(b *testing.B) {
	const v, e = 2000, 6000
	sg := benchView(b, v, e)
	if _, err := sg.RunPagerank(); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(v + e))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := sg.Decompose(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNeighbors measures a single-node adjacency annotation.
func BenchmarkNeighbors(b *testing.B) {
	sg := benchView(b, 2000, 6000)
	target := graph.MustNodeAddress("n", "00000")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := sg.Neighbors(target, graph.NeighborsOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
