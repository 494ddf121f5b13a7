package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountMetrics serves g in the Prometheus text format at path
func MountMetrics(r chi.Router, path string, g prometheus.Gatherer) {
	if g == nil {
		return
	}
	r.Method("GET", path, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
