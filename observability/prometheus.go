package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/arenacodec/persistence"
)

// PrometheusCollector implements arenacodec.MetricsCollector with Prometheus
// histograms and counters.
type PrometheusCollector struct {
	opLatency *prometheus.HistogramVec
	bytes     *prometheus.CounterVec
	ops       *prometheus.CounterVec
}

// NewPrometheusCollector creates the collector and registers its metrics with
// reg. Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of unit operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "format", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_bytes_total",
			Help:      "Bytes of units saved (stored size) and loaded (decoded size)",
		}, []string{"op", "format"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total unit operations",
		}, []string{"op", "status"}),
	}

	for _, col := range []prometheus.Collector{c.opLatency, c.bytes, c.ops} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSave implements arenacodec.MetricsCollector.
func (c *PrometheusCollector) RecordSave(format persistence.Format, bytes int, d time.Duration, err error) {
	c.record("save", format, bytes, d, err)
}

// RecordLoad implements arenacodec.MetricsCollector.
func (c *PrometheusCollector) RecordLoad(format persistence.Format, bytes int, d time.Duration, err error) {
	c.record("load", format, bytes, d, err)
}

// RecordDelete implements arenacodec.MetricsCollector.
func (c *PrometheusCollector) RecordDelete(d time.Duration, err error) {
	c.opLatency.WithLabelValues("delete", persistence.FormatAny.String(), status(err)).Observe(d.Seconds())
	c.ops.WithLabelValues("delete", status(err)).Inc()
}

func (c *PrometheusCollector) record(op string, format persistence.Format, bytes int, d time.Duration, err error) {
	st := status(err)
	c.opLatency.WithLabelValues(op, format.String(), st).Observe(d.Seconds())
	c.ops.WithLabelValues(op, st).Inc()
	if err == nil {
		c.bytes.WithLabelValues(op, format.String()).Add(float64(bytes))
	}
}
