package observe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler returns an HTTP handler serving the Prometheus scrape
// endpoint. Pair it with a Config whose MetricExporter is "prometheus",
// which registers the meter provider's metrics with the default
// Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
