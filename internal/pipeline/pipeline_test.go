package pipeline

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/clipvibe/internal/clips"
	"github.com/kikiluvv/clipvibe/internal/config"
)

// fakeAnalyzer returns canned results keyed by path and tracks worker
// overlap
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   []string
	clipIDs []string
	active  int
	peak    int
	failOn  map[string]error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, path, clipID string) (*clips.Analysis, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.clipIDs = append(f.clipIDs, clipID)
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.mu.Unlock()

	// Give concurrent workers a window to overlap
	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.active--
	f.mu.Unlock()

	if err := f.failOn[path]; err != nil {
		return nil, err
	}
	return &clips.Analysis{ClipID: "id-" + path, Brightness: 0.5}, nil
}

func TestRunKeepsInputOrder(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 3)

	paths := []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4", "e.mp4"}
	results := runner.Run(context.Background(), paths, nil)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d: expected path %s, got %s", i, paths[i], res.Path)
		}
		if res.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, res.Err)
		}
		if res.Analysis == nil || res.Analysis.ClipID != "id-"+paths[i] {
			t.Errorf("result %d: unexpected analysis %+v", i, res.Analysis)
		}
	}
}

func TestRunGeneratesIDsDownstream(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 2)

	runner.Run(context.Background(), []string{"a.mp4", "b.mp4"}, nil)

	// Batch mode always asks the analyzer to generate the ID
	for i, id := range fake.clipIDs {
		if id != "" {
			t.Errorf("call %d: expected empty clip ID, got %q", i, id)
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	fake := &fakeAnalyzer{
		failOn: map[string]error{"b.mp4": errors.New("decode exploded")},
	}
	runner := New(zerolog.Nop(), fake, 2)

	paths := []string{"a.mp4", "b.mp4", "c.mp4"}
	results := runner.Run(context.Background(), paths, nil)

	if results[1].Err == nil {
		t.Error("expected an error for b.mp4")
	}
	if results[1].Analysis != nil {
		t.Error("expected no analysis for the failed file")
	}
	for _, i := range []int{0, 2} {
		if results[i].Err != nil {
			t.Errorf("result %d: unexpected error %v", i, results[i].Err)
		}
		if results[i].Analysis == nil {
			t.Errorf("result %d: missing analysis", i)
		}
	}
}

func TestRunReportsProgress(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 2)

	type tick struct{ done, total int }
	var ticks []tick
	paths := []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4"}

	runner.Run(context.Background(), paths, func(done, total int) {
		ticks = append(ticks, tick{done, total})
	})

	if len(ticks) != len(paths) {
		t.Fatalf("expected %d progress ticks, got %d", len(paths), len(ticks))
	}
	for i, tk := range ticks {
		if tk.done != i+1 {
			t.Errorf("tick %d: expected done %d, got %d", i, i+1, tk.done)
		}
		if tk.total != len(paths) {
			t.Errorf("tick %d: expected total %d, got %d", i, len(paths), tk.total)
		}
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 2)

	paths := make([]string, 12)
	for i := range paths {
		paths[i] = "clip.mp4"
	}
	runner.Run(context.Background(), paths, nil)

	if fake.peak > 2 {
		t.Errorf("expected at most 2 concurrent analyses, saw %d", fake.peak)
	}
	if len(fake.calls) != len(paths) {
		t.Errorf("expected %d calls, got %d", len(paths), len(fake.calls))
	}
}

func TestRunZeroWorkersStillServes(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 0)

	results := runner.Run(context.Background(), []string{"a.mp4", "b.mp4"}, nil)

	if fake.peak != 1 {
		t.Errorf("expected serialized execution, saw peak %d", fake.peak)
	}
	for i, res := range results {
		if res.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, res.Err)
		}
	}
}

func TestRunEmptyBatch(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 4)

	results := runner.Run(context.Background(), nil, func(done, total int) {
		t.Error("progress should not fire for an empty batch")
	})

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no analyzer calls, got %v", fake.calls)
	}
}

func TestRunCanceledContext(t *testing.T) {
	fake := &fakeAnalyzer{}
	runner := New(zerolog.Nop(), fake, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := []string{"a.mp4", "b.mp4", "c.mp4"}
	results := runner.Run(ctx, paths, nil)

	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d: expected context.Canceled, got %v", i, res.Err)
		}
	}
}

func TestNewFromConfig(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH - install with: brew install ffmpeg")
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	runner, err := NewFromConfig(zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if runner.workers != cfg.Concurrency {
		t.Errorf("expected %d workers, got %d", cfg.Concurrency, runner.workers)
	}
}
