package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/progress"
)

// ProgressReporter displays the multiplexed message stream of a run.
//
// Implementations handle the visual representation (spinner, log lines,
// dashboard) while the coordinator focuses on running the units.
type ProgressReporter interface {
	// DisplayProgress consumes messages until progressChan is closed, then
	// calls wg.Done. jobs lists the run's jobs in JobIndex order.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Message, jobs []job.Job, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Message, jobs []job.Job, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Message, jobs []job.Job, out io.Writer) {
	f(wg, progressChan, jobs, out)
}

// NullProgressReporter drains the channel without displaying anything.
// Used for quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Message, _ []job.Job, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// SummaryPresenter renders the outcome of a run.
type SummaryPresenter interface {
	PresentSummary(summary RunSummary, out io.Writer)
}

// Recorder receives per-job and per-artifact measurements.
type Recorder interface {
	JobStarted(group string)
	JobFinished(group string, duration time.Duration, err error)
	ArtifactsWritten(group string, n int)
}

type nopRecorder struct{}

func (nopRecorder) JobStarted(string)                         {}
func (nopRecorder) JobFinished(string, time.Duration, error) {}
func (nopRecorder) ArtifactsWritten(string, int)              {}

// UnitFunc runs one worker unit. It should close out when it is done; the
// coordinator closes it after the unit returns or panics if it did not.
type UnitFunc func(ctx context.Context, payload job.Payload, factory generator.Factory, out chan<- progress.Message)

// IndexBuilder writes the listing pages once every unit has succeeded.
type IndexBuilder func(root string, groups []string, quantity int) error
