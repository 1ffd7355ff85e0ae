package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_computations_total",
		Help: "Settlement computations by outcome.",
	}, []string{"outcome"})

	computeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_compute_duration_seconds",
		Help:    "Time spent building a ledger and simplifying settlements.",
		Buckets: prometheus.DefBuckets,
	})

	planTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_plan_transactions",
		Help:    "Number of transactions in a computed settlement plan.",
		Buckets: prometheus.LinearBuckets(0, 1, 16),
	})
)
