package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scrape limits for the metrics endpoint.
const (
	scrapeTimeout      = 10 * time.Second
	maxScrapesInFlight = 4
)

// Handler serves the collector's registry in the Prometheus exposition
// format. Scrapes of the endpoint are themselves counted in the registry
// (promhttp_metric_handler_*). A nil collector serves 404.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}

	return promhttp.InstrumentMetricHandler(c.registry, promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics:   true,
			ErrorHandling:       promhttp.ContinueOnError,
			Timeout:             scrapeTimeout,
			MaxRequestsInFlight: maxScrapesInFlight,
		},
	))
}
