package orchestration

import (
	"time"

	"github.com/agbru/headergen/internal/format"
	"github.com/agbru/headergen/internal/progress"
)

// ProgressAggregator folds per-unit messages into an overall fraction and
// ETA. Both the CLI and the TUI use it so the aggregation lives in one place.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numJobs int
	done    int
	failed  int
}

// NewProgressAggregator creates an aggregator for numJobs units. Returns nil
// if numJobs <= 0.
func NewProgressAggregator(numJobs int) *ProgressAggregator {
	if numJobs <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numJobs),
		numJobs: numJobs,
	}
}

// AggregatedProgress holds the result of processing one message.
type AggregatedProgress struct {
	// JobIndex is the index of the job that sent the message.
	JobIndex int
	// Value is the unit's own fraction (0.0 to 1.0).
	Value float64
	// AverageProgress is the mean fraction across all units.
	AverageProgress float64
	// ETA is the estimated time remaining based on the smoothed rate.
	ETA time.Duration
}

// Update processes one message and returns the aggregated result. A done
// message counts its unit as complete; an error message freezes it.
func (a *ProgressAggregator) Update(msg progress.Message) AggregatedProgress {
	value := msg.Fraction()
	switch msg.Kind {
	case progress.KindDone:
		a.done++
		value = 1
	case progress.KindError:
		a.failed++
	}
	avg, eta := a.state.UpdateWithETA(msg.JobIndex, value)
	return AggregatedProgress{
		JobIndex:        msg.JobIndex,
		Value:           value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumJobs returns the number of units being tracked.
func (a *ProgressAggregator) NumJobs() int {
	return a.numJobs
}

// Finished returns how many units have completed and how many failed.
func (a *ProgressAggregator) Finished() (done, failed int) {
	return a.done, a.failed
}

// DrainChannel reads all messages from the channel without processing.
func DrainChannel(progressChan <-chan progress.Message) {
	for range progressChan {
	}
}
