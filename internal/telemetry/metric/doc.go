// Package metric provides Prometheus metrics for the tankmate client.
//
//   - prometheus.go: registry of API client metrics and text exposition
//   - collector.go: collector reporting the local session state
//
// Metrics are printed by `tankmate-cli system metrics` and, in REPL mode,
// accumulate over the whole session.
package metric
