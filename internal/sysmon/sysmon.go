// Package sysmon samples host-wide CPU and memory usage for the dashboard.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of host resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a snapshot with a background context.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext collects a snapshot. CPU usage is the delta since the
// previous call. Readings that fail are left at zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clamp(pcts[0])
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = clamp(vmem.UsedPercent)
	}
	return s
}

func clamp(v float64) float64 {
	return min(100, max(0, v))
}
