// Package server serves a finished output tree over HTTP together with the
// run's Prometheus metrics.
package server
