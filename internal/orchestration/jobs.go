package orchestration

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agbru/headergen/internal/artifact"
	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/partition"
)

// Group is one output bucket of a run.
type Group struct {
	Name string
	// Options configures the group's generator; nil for the all group.
	Options *generator.Options
}

// GroupsFromPresets returns the all group followed by one group per preset,
// ordered by group name.
func GroupsFromPresets(presets generator.Presets) []Group {
	groups := []Group{{Name: artifact.AllGroup}}
	for _, name := range presets.Names() {
		opts := presets[name]
		groups = append(groups, Group{Name: artifact.GroupName(name), Options: &opts})
	}
	sort.SliceStable(groups[1:], func(i, j int) bool {
		return groups[1+i].Name < groups[1+j].Name
	})
	return groups
}

// ValidateGroups rejects empty, duplicated or path-like group names.
func ValidateGroups(groups []Group) error {
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		switch {
		case g.Name == "" || g.Name == "." || g.Name == "..":
			return apperrors.NewConfigError("invalid group name %q", g.Name)
		case strings.ContainsAny(g.Name, `/\`):
			return apperrors.NewConfigError("group name %q must not contain path separators", g.Name)
		case seen[g.Name]:
			return apperrors.NewConfigError("duplicate group %q", g.Name)
		}
		seen[g.Name] = true
	}
	return nil
}

// BuildJobs expands groups into jobs. The all group is partitioned into one
// Recreate job per range; every other group yields one Reuse job over the
// full range. All-group jobs come first, then the others in group order.
func BuildJobs(quantity, workers int, groups []Group) []job.Job {
	if quantity <= 0 {
		return nil
	}
	var all, rest []job.Job
	for _, g := range groups {
		if g.Name == artifact.AllGroup {
			for _, r := range partition.Partition(quantity, workers) {
				all = append(all, job.Job{Group: g.Name, Policy: job.Recreate, Range: r})
			}
			continue
		}
		rest = append(rest, job.Job{
			Group:   g.Name,
			Options: g.Options,
			Policy:  job.Reuse,
			Range:   partition.Full(quantity),
		})
	}
	return append(all, rest...)
}

// GroupNames returns the names of groups in order.
func GroupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func describeJobs(jobs []job.Job) string {
	parts := make([]string, len(jobs))
	for i, j := range jobs {
		parts[i] = j.String()
	}
	return fmt.Sprintf("%d jobs: %s", len(jobs), strings.Join(parts, ", "))
}
