package cred_test

import (
	"encoding/json"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/credrank/cred"
	"github.com/katalvlaran/credrank/graph"
)

func (s *CredSuite) TestRoundTripPreservesEverything() {
	sg := s.richView()
	_, err := sg.RunPagerank()
	require.NoError(s.T(), err)

	data, err := sg.ToJSON()
	require.NoError(s.T(), err)

	restored, err := cred.FromJSON(data)
	require.NoError(s.T(), err)

	eq, err := restored.Equals(sg)
	require.NoError(s.T(), err)
	require.True(s.T(), eq)

	// Scores survive bit-for-bit, not merely approximately.
	want, _, err := sg.Node(s.beta)
	require.NoError(s.T(), err)
	got, _, err := restored.Node(s.beta)
	require.NoError(s.T(), err)
	require.Equal(s.T(), want.Score, got.Score)

	require.Equal(s.T(), sg.SyntheticLoopWeight(), restored.SyntheticLoopWeight())
}

func (s *CredSuite) TestRoundTripBytesAreCanonical() {
	sg := s.richView()
	_, err := sg.RunPagerank()
	require.NoError(s.T(), err)

	first, err := sg.ToJSON()
	require.NoError(s.T(), err)

	restored, err := cred.FromJSON(first)
	require.NoError(s.T(), err)
	second, err := restored.ToJSON()
	require.NoError(s.T(), err)

	require.Equal(s.T(), first, second)
}

func (s *CredSuite) TestRestoredViewStaysOperational() {
	sg := s.richView()
	data, err := sg.ToJSON()
	require.NoError(s.T(), err)

	restored, err := cred.FromJSON(data)
	require.NoError(s.T(), err)

	// The cached totals were re-derived, so every weight-dependent
	// operation works without the original evaluator.
	w, err := restored.TotalOutWeight(s.beta)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 3.5, w, 1e-15)

	_, err = restored.RunPagerank()
	require.NoError(s.T(), err)

	// Settling the original the same way produces equal views again.
	_, err = sg.RunPagerank()
	require.NoError(s.T(), err)
	eq, err := restored.Equals(sg)
	require.NoError(s.T(), err)
	require.True(s.T(), eq)
}

func (s *CredSuite) TestFromJSONRejectsBadPayloads() {
	sg := s.drainView()
	good, err := sg.ToJSON()
	require.NoError(s.T(), err)

	var payload map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(good, &payload))

	corrupt := func(field string, value any) []byte {
		p := make(map[string]json.RawMessage, len(payload))
		for k, v := range payload {
			p[k] = v
		}
		raw, err := json.Marshal(value)
		require.NoError(s.T(), err)
		p[field] = raw
		out, err := json.Marshal(p)
		require.NoError(s.T(), err)
		return out
	}

	_, err = cred.FromJSON(corrupt("version", "credrank/cred/v999"))
	require.ErrorIs(s.T(), err, cred.ErrFormatVersion)

	_, err = cred.FromJSON(corrupt("selfLoopWeight", -1))
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)

	_, err = cred.FromJSON(corrupt("scores", []float64{0.5}))
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)

	_, err = cred.FromJSON(corrupt("scores", []float64{0.5, -0.5}))
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)

	_, err = cred.FromJSON(corrupt("edgeWeights", []map[string]any{
		{"address": []string{"ghost"}, "toWeight": 1, "froWeight": 0},
	}))
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)

	_, err = cred.FromJSON(corrupt("edgeWeights", []map[string]any{}))
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)

	_, err = cred.FromJSON([]byte(`{`))
	require.Error(s.T(), err)
}

func (s *CredSuite) TestFromJSONRejectsNegativeEdgeWeight() {
	sg := s.drainView()
	good, err := sg.ToJSON()
	require.NoError(s.T(), err)

	var payload map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(good, &payload))
	raw, err := json.Marshal([]map[string]any{
		{"address": []string{"e", "ab"}, "toWeight": -2, "froWeight": 0},
	})
	require.NoError(s.T(), err)
	payload["edgeWeights"] = raw
	data, err := json.Marshal(payload)
	require.NoError(s.T(), err)

	_, err = cred.FromJSON(data)
	require.ErrorIs(s.T(), err, cred.ErrMalformedPayload)
}

func (s *CredSuite) TestGraphEnvelopeVersionIsChecked() {
	// A cred envelope carrying a graph envelope with a bad version fails
	// through the nested decoder.
	sg := s.drainView()
	good, err := sg.ToJSON()
	require.NoError(s.T(), err)

	var payload map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(good, &payload))

	var graphPayload map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(payload["graph"], &graphPayload))
	graphPayload["version"] = json.RawMessage(`"credrank/graph/v999"`)
	newGraph, err := json.Marshal(graphPayload)
	require.NoError(s.T(), err)
	payload["graph"] = newGraph
	data, err := json.Marshal(payload)
	require.NoError(s.T(), err)

	_, err = cred.FromJSON(data)
	require.ErrorIs(s.T(), err, graph.ErrFormatVersion)
}
