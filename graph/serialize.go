// Package graph: canonical JSON serialization.
//
// The serialized form is history-independent: nodes and edges are listed
// in canonical address order, so two structurally equal graphs marshal to
// byte-identical JSON no matter how they were built. Addresses appear as
// arrays of parts. The envelope carries a version tag validated on decode.

package graph

import (
	"encoding/json"
	"fmt"
)

// FormatVersion tags the canonical graph envelope.
const FormatVersion = "credrank/graph/v1"

type graphJSON struct {
	Version string     `json:"version"`
	Nodes   [][]string `json:"nodes"`
	Edges   []edgeJSON `json:"edges"`
}

type edgeJSON struct {
	Address []string `json:"address"`
	Src     []string `json:"src"`
	Dst     []string `json:"dst"`
}

// MarshalJSON encodes the graph in its canonical envelope.
// Complexity: O(V log V + E log E).
func (g *Graph) MarshalJSON() ([]byte, error) {
	nodes := g.Nodes("")
	nodeParts := make([][]string, len(nodes))
	for i, a := range nodes {
		nodeParts[i] = a.Parts()
	}
	edges := g.Edges(EdgeFilter{})
	edgeParts := make([]edgeJSON, len(edges))
	for i, e := range edges {
		edgeParts[i] = edgeJSON{
			Address: e.Address.Parts(),
			Src:     e.Src.Parts(),
			Dst:     e.Dst.Parts(),
		}
	}

	return json.Marshal(graphJSON{Version: FormatVersion, Nodes: nodeParts, Edges: edgeParts})
}

// UnmarshalJSON decodes a canonical envelope into g, replacing its
// contents. The envelope's version must match FormatVersion; edges are
// replayed through AddEdge, so endpoint presence and address validity are
// re-checked on the way in.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var raw graphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("graph: decode: %w", err)
	}
	if raw.Version != FormatVersion {
		return fmt.Errorf("%w: %q", ErrFormatVersion, raw.Version)
	}

	decoded := New()
	for _, parts := range raw.Nodes {
		a, err := NewNodeAddress(parts...)
		if err != nil {
			return err
		}
		if err = decoded.AddNode(a); err != nil {
			return err
		}
	}
	for _, ej := range raw.Edges {
		ea, err := NewEdgeAddress(ej.Address...)
		if err != nil {
			return err
		}
		src, err := NewNodeAddress(ej.Src...)
		if err != nil {
			return err
		}
		dst, err := NewNodeAddress(ej.Dst...)
		if err != nil {
			return err
		}
		if err = decoded.AddEdge(Edge{Address: ea, Src: src, Dst: dst}); err != nil {
			return err
		}
	}
	*g = *decoded

	return nil
}

// ToJSON is a convenience over MarshalJSON.
func (g *Graph) ToJSON() ([]byte, error) { return json.Marshal(g) }

// FromJSON decodes a canonical envelope into a fresh Graph.
func FromJSON(data []byte) (*Graph, error) {
	g := New()
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}

	return g, nil
}
