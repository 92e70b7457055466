// Package metrics provides observability hooks for the site index.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder forwards to a Prometheus
// registry exposed by HTTPHandler on the serve command's metrics path.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	runner := generate.NewRunner(cfg, generate.WithRecorder(rec))
package metrics
