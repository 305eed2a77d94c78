package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/headergen/internal/format"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/progress"
	"github.com/agbru/headergen/internal/ui"
)

// BarReporter shows a spinner with an aggregated progress bar and ETA.
type BarReporter struct{}

// LogReporter prints every progress message as its own line.
type LogReporter struct{}

var (
	_ orchestration.ProgressReporter = BarReporter{}
	_ orchestration.ProgressReporter = LogReporter{}
)

// DisplayProgress implements orchestration.ProgressReporter.
func (BarReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan progress.Message, jobs []job.Job, out io.Writer) {
	DisplayProgress(wg, ch, jobs, out)
}

// DisplayProgress implements orchestration.ProgressReporter.
func (LogReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan progress.Message, jobs []job.Job, out io.Writer) {
	DisplayProgressLog(wg, ch, jobs, out)
}

// DisplayProgress consumes the run's message stream and animates a single
// progress bar averaged over every job until the stream closes.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Message, jobs []job.Job, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(len(jobs))
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	s.UpdateSuffix(barSuffix(agg))

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-progressChan:
			if !ok {
				s.Stop()
				done, failed := agg.Finished()
				avg := agg.CalculateAverage()
				fmt.Fprintf(out, "[%s] %6.2f%% %s\n", format.ProgressBar(avg, ProgressBarWidth), avg*100,
					jobCounts(done, failed, agg.NumJobs()))
				return
			}
			agg.Update(msg)
			s.UpdateSuffix(barSuffix(agg))
		case <-ticker.C:
			s.UpdateSuffix(barSuffix(agg))
		}
	}
}

func barSuffix(agg *orchestration.ProgressAggregator) string {
	done, failed := agg.Finished()
	return " " + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth) +
		" " + jobCounts(done, failed, agg.NumJobs())
}

func jobCounts(done, failed, total int) string {
	s := fmt.Sprintf("%d/%d jobs", done, total)
	if failed > 0 {
		s += fmt.Sprintf(", %s%d failed%s", ui.ColorError(), failed, ui.ColorReset())
	}
	return s
}

// DisplayProgressLog prints each progress message's text on its own line and
// each failure as an error line. Done messages are silent.
func DisplayProgressLog(wg *sync.WaitGroup, progressChan <-chan progress.Message, _ []job.Job, out io.Writer) {
	defer wg.Done()
	for msg := range progressChan {
		switch msg.Kind {
		case progress.KindProgress:
			fmt.Fprintln(out, msg.Text)
		case progress.KindError:
			fmt.Fprintf(out, "%sJob %s [%s] failed:%s %s\n", ui.ColorError(), msg.Group, msg.Range, ui.ColorReset(), msg.Reason)
		}
	}
}
