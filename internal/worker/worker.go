// Package worker implements the unit that produces the artifacts of one job.
//
// A unit owns its generator instances and its slice of the output
// directory. It talks to the coordinator only through the message channel
// it is handed, which it closes on return.
package worker

import (
	"context"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/headergen/internal/artifact"
	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/progress"
)

const tracerName = "github.com/agbru/headergen/internal/worker"

// Run produces every artifact of payload's range and reports on out.
//
// Exactly one terminal message (Done or Error) is sent unless the unit
// panics. Progress messages precede it, in index order. Files written before
// a failure are left in place.
func Run(ctx context.Context, payload job.Payload, factory generator.Factory, out chan<- progress.Message) {
	defer close(out)

	j := payload.Job
	ctx, span := otel.Tracer(tracerName).Start(ctx, "worker.Run")
	span.SetAttributes(
		attribute.String("group", j.Group),
		attribute.String("range", j.Range.String()),
		attribute.String("policy", j.Policy.String()),
	)
	defer span.End()

	written, err := produce(ctx, payload, factory, out)
	span.SetAttributes(attribute.Int("files", written))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		msg := progress.Failed(j.Group, j.Range, err)
		msg.Completed = written
		out <- msg
		return
	}
	out <- progress.Done(j.Group, j.Range)
}

// produce writes the range in index order and returns how many files it
// wrote before stopping.
func produce(ctx context.Context, payload job.Payload, factory generator.Factory, out chan<- progress.Message) (int, error) {
	if err := payload.Validate(); err != nil {
		return 0, err
	}
	j := payload.Job
	dir := artifact.GroupDir(payload.OutputRoot, j.Group)
	if err := artifact.EnsureDir(dir); err != nil {
		return 0, err
	}

	reuse := j.Policy == job.Reuse
	var shared generator.Generator
	if reuse {
		g, err := factory.New(j.Options)
		if err != nil {
			return 0, apperrors.GenerationError{Group: j.Group, Cause: err}
		}
		shared = g
	}

	written := 0
	for i := j.Range.Start; i <= j.Range.End; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		gen := shared
		if !reuse {
			// Recreate always uses the default configuration.
			g, err := factory.New(nil)
			if err != nil {
				return written, apperrors.GenerationError{Group: j.Group, Index: i, Cause: err}
			}
			gen = g
		}

		record, err := gen.Generate()
		if err != nil {
			return written, apperrors.GenerationError{Group: j.Group, Index: i, Cause: err}
		}
		if err := artifact.Write(filepath.Join(dir, artifact.Filename(i, payload.Quantity)), record); err != nil {
			return written, err
		}
		written++

		if progress.ShouldReport(j.Range, i) {
			out <- progress.NewProgress(j.Group, dir, j.Range, written)
		}
	}
	return written, nil
}
