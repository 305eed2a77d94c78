package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Register(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewMemoryCollector().Register(reg)

	if n, err := testutil.GatherAndCount(reg, "headergen_heap_alloc_bytes"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount = %d, %v; want 1 series", n, err)
	}
}
