// Package metrics records configuration-load metrics behind a Recorder
// interface. Components default to NoopRecorder; the CLI swaps in a
// PrometheusRecorder when a textfile path is configured and writes the
// registry once the load finishes.
package metrics
