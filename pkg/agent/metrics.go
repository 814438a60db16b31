package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqa_questions_total",
			Help: "Total number of questions by terminal state and reason",
		},
		[]string{"state", "reason"},
	)

	questionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cqa_question_duration_seconds",
			Help:    "Time to answer a question in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	loopIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cqa_loop_iterations",
			Help:    "Oracle decisions per question",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	oracleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqa_oracle_requests_total",
			Help: "Total number of oracle requests by outcome",
		},
		[]string{"outcome"},
	)

	oracleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cqa_oracle_duration_seconds",
			Help:    "Oracle request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	questionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cqa_questions_in_flight",
			Help: "Current number of questions being answered",
		},
	)
)
