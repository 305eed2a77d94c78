// Package job describes the unit of dispatch: one group, one numeric range,
// one instance-reuse policy.
package job

import (
	"fmt"

	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/partition"
)

// ReusePolicy controls how many generator instances a worker unit builds.
type ReusePolicy int

const (
	// Recreate constructs a fresh default generator for every artifact.
	Recreate ReusePolicy = iota
	// Reuse constructs one generator per Job and calls it repeatedly.
	Reuse
)

// String returns the policy name.
func (p ReusePolicy) String() string {
	switch p {
	case Recreate:
		return "recreate"
	case Reuse:
		return "reuse"
	}
	return fmt.Sprintf("ReusePolicy(%d)", int(p))
}

// Job is one unit of dispatchable work. It is immutable once built and is
// handed by value to the worker unit that owns it.
type Job struct {
	// Group is the output bucket name and subdirectory.
	Group string
	// Options configures the generator; nil selects the default configuration.
	Options *generator.Options
	// Policy selects per-artifact or per-job generator construction.
	Policy ReusePolicy
	// Range is the inclusive span of 1-based artifact indices to produce.
	Range partition.Range
}

// String identifies the job in logs.
func (j Job) String() string {
	return fmt.Sprintf("%s[%s]", j.Group, j.Range)
}

// Payload is everything a worker unit receives from the coordinator.
type Payload struct {
	Job Job
	// Quantity is the full per-group artifact count; it fixes filename width.
	Quantity int
	// OutputRoot is the directory holding every group subdirectory.
	OutputRoot string
}

// Validate checks that the job's range lies within [1, Quantity].
func (p Payload) Validate() error {
	r := p.Job.Range
	if r.Start < 1 || r.End < r.Start || r.End > p.Quantity {
		return fmt.Errorf("job %s: range outside [1, %d]", p.Job, p.Quantity)
	}
	if p.Job.Group == "" {
		return fmt.Errorf("job %s: empty group name", p.Job)
	}
	return nil
}
