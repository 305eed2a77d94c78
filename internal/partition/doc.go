// Package partition splits a quantity of 1-based work items into contiguous,
// inclusive ranges, one per worker unit.
package partition
