package tui

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/headergen/internal/config"
	"github.com/agbru/headergen/internal/metrics"
	"github.com/agbru/headergen/internal/orchestration"
	"github.com/agbru/headergen/internal/progress"
	"github.com/agbru/headergen/internal/sysmon"
)

// Layout and sampling constants.
const (
	tickInterval   = 500 * time.Millisecond
	sparkSamples   = 60
	maxLogLines    = 500
	minPanelWidth  = 40
	jobLabelWidth  = 18
	defaultBarSize = 30
)

// RunFunc starts the run, streaming progress to reporter.
type RunFunc func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.RunSummary, error)

// jobRow is the dashboard state of one job.
type jobRow struct {
	label     string
	value     float64
	completed int
	total     int
	state     progress.Kind
	finished  bool
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	cfg     config.AppConfig
	version string
	keymap  KeyMap
	help    help.Model
	bar     bprogress.Model
	styles  styles
	memory  *metrics.MemoryCollector

	ctx    context.Context
	cancel context.CancelFunc

	jobs      []jobRow
	logs      []string
	logOffset int
	average   float64
	eta       time.Duration

	cpu        *RingBuffer
	mem        *RingBuffer
	heapAlloc  uint64
	numGC      uint32
	goroutines int

	startTime time.Time
	elapsed   time.Duration
	done      bool
	summary   orchestration.RunSummary
	err       error

	width  int
	height int
}

// NewModel creates the dashboard model. cancel stops the run when the user
// quits.
func NewModel(ctx context.Context, cancel context.CancelFunc, cfg config.AppConfig, version string) Model {
	return Model{
		cfg:       cfg,
		version:   version,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		bar:       bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithoutPercentage(), bprogress.WithWidth(defaultBarSize)),
		styles:    newStyles(),
		memory:    metrics.NewMemoryCollector(),
		ctx:       ctx,
		cancel:    cancel,
		cpu:       NewRingBuffer(sparkSamples),
		mem:       NewRingBuffer(sparkSamples),
		startTime: time.Now(),
	}
}

// Init starts sampling and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(defaultBarSize, m.width-jobLabelWidth-24))
		return m, nil

	case JobsMsg:
		m.jobs = make([]jobRow, len(msg.Jobs))
		for i, j := range msg.Jobs {
			m.jobs[i] = jobRow{label: j.String(), total: j.Range.Len()}
		}
		m.appendLog(fmt.Sprintf("run started: %d jobs, %d headers per group", len(msg.Jobs), m.cfg.Quantity()))
		return m, nil

	case ProgressMsg:
		m.applyProgress(msg)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.elapsed = time.Since(m.startTime)
		m.summary = msg.Summary
		m.err = msg.Err
		if msg.Err != nil {
			m.appendLog("run failed: " + msg.Err.Error())
		} else {
			m.appendLog(fmt.Sprintf("run finished: %d files written to %s", msg.Summary.Files, msg.Summary.OutputRoot))
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(m.ctx), tickCmd())

	case MemStatsMsg:
		m.heapAlloc = msg.HeapAlloc
		m.numGC = msg.NumGC
		m.goroutines = msg.Goroutines
		return m, nil

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		m.scrollLogs(1)
	case key.Matches(msg, m.keymap.Down):
		m.scrollLogs(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.scrollLogs(m.logHeight())
	case key.Matches(msg, m.keymap.PageDown):
		m.scrollLogs(-m.logHeight())
	}
	return m, nil
}

func (m *Model) applyProgress(msg ProgressMsg) {
	m.average = msg.AverageProgress
	m.eta = msg.ETA

	pm := msg.Message
	if pm.JobIndex < 0 || pm.JobIndex >= len(m.jobs) {
		return
	}
	row := &m.jobs[pm.JobIndex]
	row.state = pm.Kind
	switch pm.Kind {
	case progress.KindProgress:
		row.value = pm.Fraction()
		row.completed = pm.Completed
		m.appendLog(pm.Text)
	case progress.KindDone:
		row.value = 1
		row.completed = row.total
		row.finished = true
		m.appendLog(fmt.Sprintf("job %s done", row.label))
	case progress.KindError:
		row.completed = pm.Completed
		row.finished = true
		m.appendLog(fmt.Sprintf("job %s failed: %s", row.label, pm.Reason))
	}
}

// appendLog adds a line, keeping the view pinned unless the user scrolled.
func (m *Model) appendLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	if m.logOffset > 0 {
		m.logOffset = min(m.logOffset+1, m.maxLogOffset())
	}
}

// scrollLogs moves the log window delta lines towards older entries.
func (m *Model) scrollLogs(delta int) {
	m.logOffset = min(max(0, m.logOffset+delta), m.maxLogOffset())
}

func (m Model) maxLogOffset() int {
	return max(0, len(m.logs)-m.logHeight())
}

// Run shows the dashboard while start runs. It returns the run's summary and
// error once both the run and the program have stopped.
func Run(ctx context.Context, cfg config.AppConfig, start RunFunc, version string) (orchestration.RunSummary, error) {
	return run(ctx, cfg, start, version, tea.WithAltScreen())
}

func run(ctx context.Context, cfg config.AppConfig, start RunFunc, version string, opts ...tea.ProgramOption) (orchestration.RunSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, cancel, cfg, version)
	p := tea.NewProgram(model, opts...)
	ref := &programRef{}
	ref.SetProgram(p)

	type outcome struct {
		summary orchestration.RunSummary
		err     error
	}
	results := make(chan outcome, 1)
	go func() {
		summary, err := start(ctx, &TUIProgressReporter{ref: ref})
		results <- outcome{summary: summary, err: err}
		ref.Send(RunCompleteMsg{Summary: summary, Err: err})
	}()

	_, perr := p.Run()
	// Leaving the dashboard before the run ends stops the units.
	cancel()
	res := <-results
	if perr != nil && res.err == nil {
		return res.summary, fmt.Errorf("dashboard: %w", perr)
	}
	return res.summary, res.err
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads process memory and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		snap := mc.Snapshot()
		return MemStatsMsg{
			HeapAlloc:  snap.HeapAlloc,
			NumGC:      snap.NumGC,
			Goroutines: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads host CPU and memory and returns a SysStatsMsg.
func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.SampleContext(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
