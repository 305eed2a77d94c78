// Package tui is the interactive bubbletea dashboard shown with -tui. It
// follows a run live: one progress bar per job, the overall bar with ETA,
// the tail of the progress log, and host CPU and memory sparklines.
package tui
