package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/progress"
)

// sender is the part of tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the running program. bubbletea copies
// the model on every Update, so the bridge holds this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards the run's message stream to the dashboard.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress announces the jobs, then turns every message into a
// ProgressMsg until the stream closes.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Message, jobs []job.Job, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(len(jobs))
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		t.ref.Send(ProgressDoneMsg{})
		return
	}

	t.ref.Send(JobsMsg{Jobs: jobs})
	for msg := range progressChan {
		ap := agg.Update(msg)
		t.ref.Send(ProgressMsg{Message: msg, AverageProgress: ap.AverageProgress, ETA: ap.ETA})
	}
	t.ref.Send(ProgressDoneMsg{})
}
