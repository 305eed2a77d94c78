// Package progress defines the one-way message protocol between worker units
// and the coordinator: progress reports, completion and failure.
package progress
