package partition

import "fmt"

// Range is a contiguous, inclusive interval of 1-based artifact indices.
type Range struct {
	// Start is the first index in the range (>= 1).
	Start int
	// End is the last index in the range (>= Start).
	End int
}

// Full returns the range covering every index of a group of the given size.
func Full(quantity int) Range {
	return Range{Start: 1, End: quantity}
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// String renders the range as "start-end".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Partition computes the ranges assigned to each worker for a quantity of
// work items.
//
// The effective worker count is clamped to [1, quantity] and every range but
// the last holds ceil(quantity/workers) items. Ranges that would start past
// quantity are dropped, so callers must accept fewer ranges than workers.
// A quantity of zero or less yields no ranges.
//
// Parameters:
//   - quantity: The total number of items to produce.
//   - workerCount: The requested number of workers.
//
// Returns:
//   - []Range: The ranges ordered by Start; their union is exactly [1, quantity].
func Partition(quantity, workerCount int) []Range {
	if quantity <= 0 {
		return nil
	}
	workers := min(quantity, max(1, workerCount))
	chunk := (quantity + workers - 1) / workers

	ranges := make([]Range, 0, workers)
	for k := 0; k < workers; k++ {
		start := k*chunk + 1
		if start > quantity {
			break
		}
		ranges = append(ranges, Range{Start: start, End: min(quantity, (k+1)*chunk)})
	}
	return ranges
}
