// Package metrics records run measurements in a Prometheus registry. The
// registry is exposed by the server's /metrics endpoint and can be written
// as a node_exporter textfile after a run.
package metrics
