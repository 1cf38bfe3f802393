package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ipowatch",
		Subsystem: "ingest",
		Name:      "requests_total",
		Help:      "Scraper requests by source and outcome, after retries.",
	}, []string{"source", "outcome"})

	collectorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ipowatch",
		Subsystem: "collector",
		Name:      "runs_total",
		Help:      "Collector runs by outcome (live, mock, error).",
	}, []string{"outcome"})
)
