// Package artifact owns the output-tree naming scheme and the serialization
// of generated records.
//
// Every name depends only on the group and the (index, quantity) pair, so
// the file a record lands in never depends on which worker unit wrote it.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
)

const (
	// AllGroup is the distinguished group built from default generators.
	AllGroup = "all"
	// IndexFile is the listing written at the root and in every group.
	IndexFile = "index.html"

	filePrefix = "headers-"
	fileExt    = ".json"
	presetTrim = "modern_"
)

// Width returns the number of decimal digits in quantity.
func Width(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return len(strconv.Itoa(quantity))
}

// Filename returns the artifact filename for 1-based index i in a group of
// quantity items, e.g. Filename(1, 50000) == "headers-00001.json".
func Filename(i, quantity int) string {
	return fmt.Sprintf("%s%0*d%s", filePrefix, Width(quantity), i, fileExt)
}

// Filenames lists every artifact filename of a group in index order.
func Filenames(quantity int) []string {
	names := make([]string, 0, max(quantity, 0))
	for i := 1; i <= quantity; i++ {
		names = append(names, Filename(i, quantity))
	}
	return names
}

// GroupName derives the output directory name of a preset: lower-cased,
// with any "modern_" prefix stripped.
func GroupName(preset string) string {
	return strings.TrimPrefix(strings.ToLower(preset), presetTrim)
}

// GroupDir returns the directory holding a group's artifacts.
func GroupDir(root, group string) string {
	return filepath.Join(root, group)
}

// EnsureDir creates dir and its parents. It is idempotent and safe when
// sibling directories are created concurrently.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.WriteError{Path: dir, Cause: err}
	}
	return nil
}

// Write serializes record as JSON into path. Failures are WriteErrors.
func Write(path string, record generator.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.WriteError{Path: path, Cause: fmt.Errorf("encode record: %w", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WriteError{Path: path, Cause: err}
	}
	return nil
}
