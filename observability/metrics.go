package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	LoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "credrank_load_seconds",
		Help:    "Time spent loading a graph from one adapter.",
		Buckets: prometheus.DefBuckets,
	}, []string{"adapter"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "credrank_graph_nodes_total",
		Help: "Number of nodes in the most recently loaded graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "credrank_graph_edges_total",
		Help: "Number of edges in the most recently loaded graph.",
	})

	ScoreRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credrank_score_runs_total",
		Help: "Total number of score runs, by outcome.",
	}, []string{"outcome"})

	ScoreRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credrank_score_run_seconds",
		Help:    "Wall time of a full score run.",
		Buckets: prometheus.DefBuckets,
	})

	ScoreIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credrank_score_iterations",
		Help:    "Applied power-iteration steps per score run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	ScoreConvergenceDelta = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "credrank_score_convergence_delta",
		Help: "Final max-norm delta of the most recent score run.",
	})

	StoreWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credrank_store_writes_total",
		Help: "Total rows written to the registry store, by kind.",
	}, []string{"kind"})
)
