// Package observability exports Store metrics to Prometheus.
//
//	collector, err := observability.NewPrometheusCollector(prometheus.DefaultRegisterer, "arenacodec")
//	store := arenacodec.New(blobs, arenacodec.WithMetricsCollector(collector))
//	http.Handle("/metrics", promhttp.Handler())
package observability
