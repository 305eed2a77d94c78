package artifact

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/agbru/headergen/internal/errors"
	"github.com/agbru/headergen/internal/generator"
)

func TestFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		i, quantity int
		expected    string
	}{
		{1, 5, "headers-1.json"},
		{5, 5, "headers-5.json"},
		{1, 100, "headers-001.json"},
		{100, 100, "headers-100.json"},
		{1, 50000, "headers-00001.json"},
		{42, 50000, "headers-00042.json"},
		{7, 9, "headers-7.json"},
		{10, 10, "headers-10.json"},
	}
	for _, tt := range tests {
		if got := Filename(tt.i, tt.quantity); got != tt.expected {
			t.Errorf("Filename(%d, %d) = %q, want %q", tt.i, tt.quantity, got, tt.expected)
		}
	}
}

func TestFilenames_UniqueAndOrdered(t *testing.T) {
	t.Parallel()
	names := Filenames(1000)
	if len(names) != 1000 {
		t.Fatalf("len = %d, want 1000", len(names))
	}
	seen := make(map[string]bool)
	for i, n := range names {
		if seen[n] {
			t.Fatalf("duplicate filename %q", n)
		}
		seen[n] = true
		if i > 0 && names[i-1] >= n {
			t.Fatalf("filenames not lexically ordered at %d: %q >= %q", i, names[i-1], n)
		}
	}
	if len(Filenames(0)) != 0 {
		t.Error("Filenames(0) should be empty")
	}
}

func TestGroupName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"MODERN_DESKTOP":       "desktop",
		"MODERN_MACOS_CHROME":  "macos_chrome",
		"CUSTOM":               "custom",
		"Modern_Linux":         "linux",
		"ANCIENT_MODERN_THING": "ancient_modern_thing",
	}
	for in, want := range tests {
		if got := GroupName(in); got != want {
			t.Errorf("GroupName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()
	dir := GroupDir(t.TempDir(), "all")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir should be idempotent: %v", err)
	}

	path := filepath.Join(dir, Filename(3, 5))
	rec := generator.Record{"user-agent": "Mozilla/5.0"}
	if err := Write(path, rec); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back generator.Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back["user-agent"] != "Mozilla/5.0" {
		t.Errorf("round trip lost data: %v", back)
	}
}

func TestWrite_MissingDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "headers-1.json")
	err := Write(path, generator.Record{})
	var writeErr apperrors.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if writeErr.Path != path {
		t.Errorf("Path = %q, want %q", writeErr.Path, path)
	}
}
