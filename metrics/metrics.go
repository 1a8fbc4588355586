// Package metrics holds the prometheus collectors of the builder and the
// websocket server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// RecordsBuilt counts built assemblies and parts by kind and result.
	RecordsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rothermal_records_built_total",
		Help: "Total built records by kind (assembly, part) and result",
	}, []string{"kind", "result"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rothermal_run_duration_seconds",
		Help:    "Duration of a complete build run in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	// Requests counts websocket requests by message type.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rothermal_ws_requests_total",
		Help: "Total websocket requests by message type",
	}, []string{"type"})

	Clients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rothermal_ws_clients",
		Help: "Connected websocket clients",
	})
)

func Built(kind string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	RecordsBuilt.WithLabelValues(kind, result).Inc()
}

func ObserveRun(start time.Time) {
	RunDuration.Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
