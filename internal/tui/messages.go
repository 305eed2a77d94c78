package tui

import (
	"time"

	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/progress"
)

// JobsMsg announces the jobs of the run, in JobIndex order.
type JobsMsg struct {
	Jobs []job.Job
}

// ProgressMsg carries one unit message plus the aggregate it produced.
type ProgressMsg struct {
	Message         progress.Message
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the message stream closed.
type ProgressDoneMsg struct{}

// RunCompleteMsg carries the outcome of the run.
type RunCompleteMsg struct {
	Summary orchestration.RunSummary
	Err     error
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a process memory sample.
type MemStatsMsg struct {
	HeapAlloc  uint64
	NumGC      uint32
	Goroutines int
}

// SysStatsMsg is a host-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the run's parent context ends.
type ContextCancelledMsg struct {
	Err error
}
