package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes journal activity as Prometheus metrics. It satisfies
// journal.Recorder.
type Collector struct {
	registry       *prometheus.Registry
	mutations      *prometheus.CounterVec
	importFailures prometheus.Counter
	trades         prometheus.Gauge
}

// NewCollector registers the journal metrics on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "journal",
			Name:      "mutations_total",
			Help:      "Committed changes to the trade collection, by operation.",
		}, []string{"op"}),
		importFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "journal",
			Name:      "import_failures_total",
			Help:      "Rejected or failed imports.",
		}),
		trades: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "journal",
			Name:      "trades",
			Help:      "Trades in the collection after the last change.",
		}),
	}
	c.registry.MustRegister(c.mutations, c.importFailures, c.trades)
	return c
}

// Mutation records a committed change.
func (c *Collector) Mutation(op string, trades int) {
	c.mutations.WithLabelValues(op).Inc()
	c.trades.Set(float64(trades))
}

// ImportFailed records a rejected import.
func (c *Collector) ImportFailed() {
	c.importFailures.Inc()
}

// SetTrades sets the collection size, e.g. after the initial load.
func (c *Collector) SetTrades(n int) {
	c.trades.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
