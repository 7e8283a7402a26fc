package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}

	if cfg.Analysis.SampleCap != 20 {
		t.Errorf("default sample cap = %d, want 20", cfg.Analysis.SampleCap)
	}
	if cfg.Analysis.ClusterCount != 5 {
		t.Errorf("default cluster count = %d, want 5", cfg.Analysis.ClusterCount)
	}
	if cfg.FFmpeg.ProbeBudget() != 30*time.Second {
		t.Errorf("default probe budget = %v, want 30s", cfg.FFmpeg.ProbeBudget())
	}
	if cfg.FFmpeg.ExecBudget() != 120*time.Second {
		t.Errorf("default exec budget = %v, want 120s", cfg.FFmpeg.ExecBudget())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("concurrency: 2\nanalysis:\n  sample_cap: 10\n  epsilon: 0.5\nffmpeg:\n  probe_timeout_sec: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Concurrency != 2 {
		t.Errorf("concurrency = %d, want 2", cfg.Concurrency)
	}
	if cfg.Analysis.SampleCap != 10 {
		t.Errorf("sample_cap = %d, want 10", cfg.Analysis.SampleCap)
	}
	if cfg.Analysis.Epsilon != 0.5 {
		t.Errorf("epsilon = %v, want 0.5", cfg.Analysis.Epsilon)
	}
	if cfg.FFmpeg.ProbeBudget() != 5*time.Second {
		t.Errorf("probe budget = %v, want 5s", cfg.FFmpeg.ProbeBudget())
	}

	// Fields absent from the file keep their defaults.
	if cfg.Analysis.ClusterCount != 5 {
		t.Errorf("cluster_count = %d, want default 5", cfg.Analysis.ClusterCount)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := defaultConfig()
	cfg.Analysis.Attempts = 7
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Analysis.Attempts != 7 {
		t.Errorf("attempts = %d, want 7", loaded.Analysis.Attempts)
	}
}

func TestFromContext(t *testing.T) {
	cfg := defaultConfig()
	cfg.Concurrency = 9

	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got.Concurrency != 9 {
		t.Errorf("FromContext returned concurrency %d, want 9", got.Concurrency)
	}

	// Missing config falls back to defaults rather than nil.
	if got := FromContext(context.Background()); got == nil || got.Concurrency != 4 {
		t.Errorf("FromContext fallback = %+v, want defaults", got)
	}
}
