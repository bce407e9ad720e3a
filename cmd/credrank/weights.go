package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/katalvlaran/credrank/graph"
	"github.com/katalvlaran/credrank/markov"
)

// weightRule assigns a weight pair to every edge whose address starts
// with the given parts.
type weightRule struct {
	Prefix []string `mapstructure:"prefix"`
	To     float64  `mapstructure:"to"`
	Fro    float64  `mapstructure:"fro"`
}

// weightsConfig is the weights section of the config file.
type weightsConfig struct {
	DefaultTo  float64      `mapstructure:"default_to"`
	DefaultFro float64      `mapstructure:"default_fro"`
	Rules      []weightRule `mapstructure:"rules"`
}

type compiledRule struct {
	prefix graph.EdgeAddress
	weight markov.EdgeWeight
}

// loadWeightsConfig reads the weights section of the active configuration.
func loadWeightsConfig() (weightsConfig, error) {
	var wc weightsConfig
	if err := viper.UnmarshalKey("weights", &wc); err != nil {
		return weightsConfig{}, fmt.Errorf("unmarshal weights config: %w", err)
	}

	return wc, nil
}

// evaluatorFromConfig compiles the configured weighting policy into an
// edge evaluator. Rules apply in order and the first prefix match wins;
// edges matched by no rule get the default pair.
func evaluatorFromConfig(wc weightsConfig) (markov.EdgeEvaluator, error) {
	rules := make([]compiledRule, 0, len(wc.Rules))
	for i, r := range wc.Rules {
		prefix, err := graph.NewEdgeAddress(r.Prefix...)
		if err != nil {
			return nil, fmt.Errorf("weights rule %d: %w", i, err)
		}
		rules = append(rules, compiledRule{
			prefix: prefix,
			weight: markov.EdgeWeight{ToWeight: r.To, FroWeight: r.Fro},
		})
	}
	fallback := markov.EdgeWeight{ToWeight: wc.DefaultTo, FroWeight: wc.DefaultFro}

	return markov.EdgeEvaluatorFunc(func(e graph.Edge) markov.EdgeWeight {
		for _, r := range rules {
			if e.Address.HasPrefix(r.prefix) {
				return r.weight
			}
		}

		return fallback
	}), nil
}
