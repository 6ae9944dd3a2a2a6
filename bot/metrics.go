package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	solves    *prometheus.CounterVec
	malformed prometheus.Counter
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "satbot",
			Name:      "solves_total",
			Help:      "Number of completed solves, by verdict.",
		}, []string{"status"}),
		malformed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "satbot",
			Name:      "malformed_requests_total",
			Help:      "Number of requests rejected before solving.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "satbot",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of solves.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
