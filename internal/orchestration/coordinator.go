package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/index"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/logging"
	"github.com/agbru/headergen/internal/progress"
	"github.com/agbru/headergen/internal/worker"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// reporter stream. A larger buffer reduces the likelihood of blocking units
// when the display is slow to consume messages.
const ProgressBufferMultiplier = 5

// unitBuffer is the capacity of each unit's private channel.
const unitBuffer = 8

// RunConfig is everything a run needs to know.
type RunConfig struct {
	// Quantity is the number of artifacts produced per group.
	Quantity int
	// OutputRoot is the directory holding every group subdirectory.
	OutputRoot string
	// Workers is the number of partitions of the all group.
	Workers int
	Groups  []Group
}

// JobResult is the outcome of one unit.
type JobResult struct {
	Job      job.Job
	Duration time.Duration
	// Files counts artifacts the unit reported as written.
	Files int
	Err   error
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID      string
	Quantity   int
	OutputRoot string
	Groups     []string
	Jobs       []JobResult
	// Files is the total number of artifacts written across all jobs.
	Files   int
	Failed  int
	Elapsed time.Duration
	Err     error
}

// Succeeded reports whether every job finished without error.
func (s RunSummary) Succeeded() bool { return s.Err == nil }

// Coordinator runs the jobs of a RunConfig and joins their outcomes.
type Coordinator struct {
	factory  generator.Factory
	reporter ProgressReporter
	logger   logging.Logger
	recorder Recorder
	unit     UnitFunc
	index    IndexBuilder
	runID    string
	failFast bool
	out      io.Writer
}

// CoordinatorOption configures a Coordinator during construction.
type CoordinatorOption func(*Coordinator)

// WithReporter sets the progress display. Defaults to NullProgressReporter.
func WithReporter(r ProgressReporter) CoordinatorOption {
	return func(c *Coordinator) { c.reporter = r }
}

// WithLogger sets the structured logger. Defaults to logging.NopLogger.
func WithLogger(l logging.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = l }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) CoordinatorOption {
	return func(c *Coordinator) { c.recorder = r }
}

// WithUnit replaces the worker unit, mainly for tests.
func WithUnit(u UnitFunc) CoordinatorOption {
	return func(c *Coordinator) { c.unit = u }
}

// WithIndexBuilder replaces the listing builder.
func WithIndexBuilder(b IndexBuilder) CoordinatorOption {
	return func(c *Coordinator) { c.index = b }
}

// WithRunID tags every log line and the summary with id.
func WithRunID(id string) CoordinatorOption {
	return func(c *Coordinator) { c.runID = id }
}

// WithFailFast makes the first failure cancel the remaining units.
func WithFailFast(enabled bool) CoordinatorOption {
	return func(c *Coordinator) { c.failFast = enabled }
}

// WithOutput sets the writer handed to the progress reporter.
func WithOutput(w io.Writer) CoordinatorOption {
	return func(c *Coordinator) { c.out = w }
}

// NewCoordinator creates a Coordinator producing records with factory.
func NewCoordinator(factory generator.Factory, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		factory:  factory,
		reporter: NullProgressReporter{},
		logger:   logging.NopLogger{},
		recorder: nopRecorder{},
		unit:     worker.Run,
		index:    index.Build,
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every job of cfg concurrently and waits for all of them.
//
// The returned error is the first failure observed; later failures are
// logged and recorded in the summary. Units keep running after a sibling
// fails unless fail-fast is enabled. The index is built only when every
// unit succeeded.
func (c *Coordinator) Run(ctx context.Context, cfg RunConfig) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{
		RunID:      c.runID,
		Quantity:   cfg.Quantity,
		OutputRoot: cfg.OutputRoot,
		Groups:     GroupNames(cfg.Groups),
	}
	if err := ValidateGroups(cfg.Groups); err != nil {
		summary.Err = err
		return summary, err
	}

	jobs := BuildJobs(cfg.Quantity, cfg.Workers, cfg.Groups)
	c.logger.Debug("jobs built", logging.String("run_id", c.runID), logging.String("jobs", describeJobs(jobs)))
	results := make([]JobResult, len(jobs))

	progressChan := make(chan progress.Message, max(1, len(jobs))*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go c.reporter.DisplayProgress(&displayWg, progressChan, jobs, c.out)

	g := &errgroup.Group{}
	unitCtx := ctx
	if c.failFast {
		g, unitCtx = errgroup.WithContext(ctx)
	}
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = c.runJob(unitCtx, i, j, cfg, progressChan)
			return results[i].Err
		})
	}
	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	summary.Jobs = results
	for _, r := range results {
		summary.Files += r.Files
		if r.Err != nil {
			summary.Failed++
		}
	}

	if err == nil {
		if ierr := c.index(cfg.OutputRoot, summary.Groups, cfg.Quantity); ierr != nil {
			err = apperrors.WrapError(ierr, "build index")
		}
	} else if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}

	summary.Elapsed = time.Since(start)
	summary.Err = err
	if err != nil {
		c.logger.Error("run failed", err,
			logging.String("run_id", c.runID),
			logging.Int("failed_jobs", summary.Failed),
			logging.Duration("elapsed", summary.Elapsed))
	} else {
		c.logger.Info("run finished",
			logging.String("run_id", c.runID),
			logging.Int("jobs", len(jobs)),
			logging.Int("files", summary.Files),
			logging.Duration("elapsed", summary.Elapsed))
	}
	return summary, err
}

// runJob spawns one unit and collects its messages until its channel closes.
func (c *Coordinator) runJob(ctx context.Context, idx int, j job.Job, cfg RunConfig, stream chan<- progress.Message) JobResult {
	fields := []logging.Field{
		logging.String("run_id", c.runID),
		logging.String("group", j.Group),
		logging.String("range", j.Range.String()),
	}
	c.logger.Debug("job started", append(fields, logging.String("policy", j.Policy.String()))...)
	c.recorder.JobStarted(j.Group)

	start := time.Now()
	unitOut := make(chan progress.Message, unitBuffer)
	go c.spawn(ctx, job.Payload{Job: j, Quantity: cfg.Quantity, OutputRoot: cfg.OutputRoot}, unitOut)

	var (
		terminal *progress.Message
		files    int
	)
	for msg := range unitOut {
		if terminal != nil {
			continue
		}
		msg.JobIndex = idx
		if msg.Completed > files {
			c.recorder.ArtifactsWritten(j.Group, msg.Completed-files)
			files = msg.Completed
		}
		if msg.Kind != progress.KindProgress {
			terminal = &msg
		}
		stream <- msg
	}

	var err error
	switch {
	case terminal == nil:
		err = apperrors.NewWorkerCrashError(j.Group, j.Range.String())
	case terminal.Kind == progress.KindError:
		err = &apperrors.JobError{Group: j.Group, Range: j.Range.String(), Reason: terminal.Reason}
	}

	res := JobResult{Job: j, Duration: time.Since(start), Files: files, Err: err}
	c.recorder.JobFinished(j.Group, res.Duration, err)
	if err != nil {
		c.logger.Error("job failed", err, append(fields, logging.Int("files", files))...)
	} else {
		c.logger.Debug("job finished", append(fields, logging.Duration("duration", res.Duration))...)
	}
	return res
}

// spawn runs the unit and turns a panic into a crash. Once the unit returns,
// normally or by panicking, its channel is closed if it is not already, so the
// collector sees the end of the stream and reports a missing terminal message.
func (c *Coordinator) spawn(ctx context.Context, payload job.Payload, out chan progress.Message) {
	defer closeUnitChannel(out)
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("worker unit panicked", fmt.Errorf("%v", r),
				logging.String("run_id", c.runID),
				logging.String("job", payload.Job.String()),
				logging.String("stack", string(debug.Stack())))
		}
	}()
	c.unit(ctx, payload, c.factory, out)
}

// closeUnitChannel closes out, tolerating a unit that already closed it.
func closeUnitChannel(out chan progress.Message) {
	defer func() { _ = recover() }()
	close(out)
}
