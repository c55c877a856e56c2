package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_submissions_total",
		Help: "The total number of submission attempts by channel and outcome",
	}, []string{"swqos", "status"})

	SubmitLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trade_submit_seconds",
		Help:    "Time from task spawn to channel response",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
	}, []string{"swqos"})

	Trades = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_trades_total",
		Help: "The total number of trade calls by direction and outcome",
	}, []string{"direction", "status"})

	InFlightTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trade_inflight_tasks",
		Help: "The number of submission tasks currently running",
	})

	LandedFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_landed_failures_total",
		Help: "Transactions that reached the chain but were rejected by program logic",
	}, []string{"swqos"})
)
