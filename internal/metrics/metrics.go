// Package metrics registers the prometheus instruments for oracle traffic
// and optionally serves them over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AffinityQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mural_affinity_queries_total",
		Help: "Total affinity oracle queries issued",
	})
	AffinityFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mural_affinity_failures_total",
		Help: "Total affinity oracle queries that failed or returned garbage",
	})
	AffinityDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mural_affinity_duration_seconds",
		Help:    "Affinity oracle query duration seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(AffinityQueries, AffinityFailures, AffinityDuration)
}

// StartServer exposes /metrics and /health on addr (e.g. ":9090") in a
// background goroutine. No-op when addr is empty.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}
