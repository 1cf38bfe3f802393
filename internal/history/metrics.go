package history

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ipowatch",
		Subsystem: "history",
		Name:      "operations_total",
		Help:      "History store operations by operation and outcome.",
	}, []string{"op", "outcome"})

	skippedPartitions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipowatch",
		Subsystem: "history",
		Name:      "skipped_partitions_total",
		Help:      "Partitions ignored during enumeration because their name is not a YYYY-MM-DD date.",
	})
)

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operations.WithLabelValues(op, outcome).Inc()
}
