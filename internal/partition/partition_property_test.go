package partition

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPartitionCoverage_PropertyBased verifies that the ranges cover
// [1, quantity] exactly once each, in order, with no empty range.
func TestPartitionCoverage_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("ranges tile [1, quantity] without gaps or overlap", prop.ForAll(
		func(quantity, workers int) bool {
			ranges := Partition(quantity, workers)
			if quantity == 0 {
				return len(ranges) == 0
			}
			next := 1
			for _, r := range ranges {
				if r.Start != next || r.Len() == 0 {
					return false
				}
				next = r.End + 1
			}
			return next == quantity+1
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 256),
	))

	properties.TestingRun(t)
}

// TestPartitionBoundedness_PropertyBased verifies that no more ranges than
// min(quantity, workerCount) are ever produced and that every range lies
// inside [1, quantity].
func TestPartitionBoundedness_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("len(ranges) <= min(quantity, workerCount)", prop.ForAll(
		func(quantity, workers int) bool {
			ranges := Partition(quantity, workers)
			if len(ranges) > min(quantity, workers) {
				return false
			}
			for _, r := range ranges {
				if r.Start < 1 || r.End > quantity || r.End < r.Start {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 1024),
	))

	properties.TestingRun(t)
}
