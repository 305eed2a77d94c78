package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/headergen/internal/artifact"
	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/generator/mocks"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/partition"
	"github.com/agbru/headergen/internal/progress"
)

// runUnit runs a unit to completion and returns every message it sent.
func runUnit(ctx context.Context, payload job.Payload, factory generator.Factory) []progress.Message {
	out := make(chan progress.Message, 4)
	go Run(ctx, payload, factory, out)
	var msgs []progress.Message
	for m := range out {
		msgs = append(msgs, m)
	}
	return msgs
}

func payloadFor(root, group string, policy job.ReusePolicy, r partition.Range, quantity int) job.Payload {
	return job.Payload{
		Job:        job.Job{Group: group, Policy: policy, Range: r},
		Quantity:   quantity,
		OutputRoot: root,
	}
}

func TestRun_WritesRangeAndReportsDone(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	r := partition.Range{Start: 4, End: 6}

	msgs := runUnit(context.Background(), payloadFor(root, "all", job.Recreate, r, 10), generator.NewDefaultFactory())

	last := msgs[len(msgs)-1]
	if last.Kind != progress.KindDone {
		t.Fatalf("last message = %v, want done (reason %q)", last.Kind, last.Reason)
	}
	for _, m := range msgs[:len(msgs)-1] {
		if m.Kind != progress.KindProgress {
			t.Errorf("unexpected %v before terminal message", m.Kind)
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, "all"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	want := []string{"headers-04.json", "headers-05.json", "headers-06.json"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestRun_ProgressCadence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		r         partition.Range
		completed []int
	}{
		{"single", partition.Range{Start: 1, End: 1}, []int{1}},
		{"short range reports every file", partition.Range{Start: 1, End: 5}, []int{1, 2, 3, 4, 5}},
		{"stride two", partition.Range{Start: 1, End: 40}, []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31, 33, 35, 37, 39, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msgs := runUnit(context.Background(), payloadFor(t.TempDir(), "g", job.Reuse, tt.r, tt.r.End), generator.NewDefaultFactory())
			var completed []int
			for _, m := range msgs {
				if m.Kind == progress.KindProgress {
					completed = append(completed, m.Completed)
					if m.Total != tt.r.Len() {
						t.Errorf("Total = %d, want %d", m.Total, tt.r.Len())
					}
				}
			}
			if len(completed) != len(tt.completed) {
				t.Fatalf("progress completions = %v, want %v", completed, tt.completed)
			}
			for i := range completed {
				if completed[i] != tt.completed[i] {
					t.Fatalf("progress completions = %v, want %v", completed, tt.completed)
				}
			}
		})
	}
}

func TestRun_ProgressText(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	r := partition.Range{Start: 1, End: 5}
	msgs := runUnit(context.Background(), payloadFor(root, "all", job.Recreate, r, 5), generator.NewDefaultFactory())

	want := "Wrote 1/5 files in " + filepath.Join(root, "all") + " (range 1-5)"
	if msgs[0].Text != want {
		t.Errorf("first progress text = %q, want %q", msgs[0].Text, want)
	}
}

func TestRun_RecreateBuildsDefaultInstancePerArtifact(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate().Return(generator.Record{"k": "v"}, nil).Times(3)
	factory := mocks.NewMockFactory(ctrl)
	factory.EXPECT().New(gomock.Nil()).Return(gen, nil).Times(3)

	opts := generator.DefaultOptions()
	payload := payloadFor(t.TempDir(), "all", job.Recreate, partition.Range{Start: 1, End: 3}, 3)
	payload.Job.Options = &opts

	msgs := runUnit(context.Background(), payload, factory)
	if last := msgs[len(msgs)-1]; last.Kind != progress.KindDone {
		t.Fatalf("expected done, got %v (%q)", last.Kind, last.Reason)
	}
}

func TestRun_ReuseBuildsOneInstance(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opts := generator.Options{Browsers: []string{generator.BrowserFirefox}}
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate().Return(generator.Record{"k": "v"}, nil).Times(5)
	factory := mocks.NewMockFactory(ctrl)
	factory.EXPECT().New(&opts).Return(gen, nil).Times(1)

	payload := payloadFor(t.TempDir(), "firefox", job.Reuse, partition.Full(5), 5)
	payload.Job.Options = &opts

	msgs := runUnit(context.Background(), payload, factory)
	if last := msgs[len(msgs)-1]; last.Kind != progress.KindDone {
		t.Fatalf("expected done, got %v (%q)", last.Kind, last.Reason)
	}
}

func TestRun_GenerationFailureStopsAndKeepsWrittenFiles(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gomock.InOrder(
		gen.EXPECT().Generate().Return(generator.Record{"k": "v"}, nil).Times(2),
		gen.EXPECT().Generate().Return(nil, errors.New("generator exploded")),
	)
	factory := mocks.NewMockFactory(ctrl)
	factory.EXPECT().New(gomock.Any()).Return(gen, nil)

	root := t.TempDir()
	msgs := runUnit(context.Background(), payloadFor(root, "desktop", job.Reuse, partition.Full(5), 5), factory)

	last := msgs[len(msgs)-1]
	if last.Kind != progress.KindError {
		t.Fatalf("expected error message, got %v", last.Kind)
	}
	if last.Reason != "generator exploded" {
		t.Errorf("Reason = %q, want verbatim generator error", last.Reason)
	}
	if last.Completed != 2 {
		t.Errorf("Completed = %d, want 2", last.Completed)
	}
	for _, i := range []int{1, 2} {
		if _, err := os.Stat(filepath.Join(root, "desktop", artifact.Filename(i, 5))); err != nil {
			t.Errorf("file %d should remain after failure: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "desktop", artifact.Filename(3, 5))); !os.IsNotExist(err) {
		t.Errorf("file 3 should not exist, stat err = %v", err)
	}
}

func TestRun_ConstructionFailure(t *testing.T) {
	t.Parallel()
	factory := generator.FactoryFunc(func(*generator.Options) (generator.Generator, error) {
		return nil, errors.New("bad options")
	})
	msgs := runUnit(context.Background(), payloadFor(t.TempDir(), "x", job.Reuse, partition.Full(2), 2), factory)
	if len(msgs) != 1 || msgs[0].Kind != progress.KindError || msgs[0].Reason != "bad options" {
		t.Fatalf("messages = %+v, want single error with reason \"bad options\"", msgs)
	}
}

func TestRun_DirectoryFailure(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	msgs := runUnit(context.Background(), payloadFor(blocker, "all", job.Recreate, partition.Full(1), 1), generator.NewDefaultFactory())
	if len(msgs) != 1 || msgs[0].Kind != progress.KindError {
		t.Fatalf("messages = %+v, want a single error", msgs)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msgs := runUnit(ctx, payloadFor(t.TempDir(), "all", job.Recreate, partition.Full(3), 3), generator.NewDefaultFactory())
	last := msgs[len(msgs)-1]
	if last.Kind != progress.KindError || last.Reason != context.Canceled.Error() {
		t.Fatalf("last = %+v, want error with context.Canceled reason", last)
	}
}

func TestRun_InvalidPayload(t *testing.T) {
	t.Parallel()
	msgs := runUnit(context.Background(), payloadFor(t.TempDir(), "all", job.Recreate, partition.Range{Start: 3, End: 9}, 5), generator.NewDefaultFactory())
	if len(msgs) != 1 || msgs[0].Kind != progress.KindError {
		t.Fatalf("messages = %+v, want a single error", msgs)
	}
}
