package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/clipvibe/internal/analysis"
	"github.com/kikiluvv/clipvibe/internal/clips"
	"github.com/kikiluvv/clipvibe/internal/config"
	"github.com/kikiluvv/clipvibe/internal/ffmpeg"
	"github.com/kikiluvv/clipvibe/internal/video"
)

// Runner fans a batch of video files out to a bounded pool of analyzer
// workers
type Runner struct {
	logger   zerolog.Logger
	analyzer clips.Analyzer
	workers  int
}

// New creates a runner around an existing analyzer
func New(logger zerolog.Logger, analyzer clips.Analyzer, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		logger:   logger.With().Str("component", "pipeline").Logger(),
		analyzer: analyzer,
		workers:  workers,
	}
}

// NewFromConfig wires the full ffmpeg-backed analysis stack from the
// application config
func NewFromConfig(logger zerolog.Logger, cfg *config.Config) (*Runner, error) {
	exec, err := ffmpeg.New(logger, ffmpeg.Config{
		Threads:      cfg.FFmpeg.Threads,
		ProbeTimeout: cfg.FFmpeg.ProbeBudget(),
		ExecTimeout:  cfg.FFmpeg.ExecBudget(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	decoder := video.NewDecoder(logger, exec)
	analyzer := analysis.New(logger, decoder, analysis.Options{
		SampleCap:    cfg.Analysis.SampleCap,
		ClusterCount: cfg.Analysis.ClusterCount,
		SampleDim:    cfg.Analysis.SampleDim,
		Epsilon:      cfg.Analysis.Epsilon,
		Attempts:     cfg.Analysis.Attempts,
	})

	return New(logger, analyzer, cfg.Concurrency), nil
}

// Run analyzes every path and returns one result per input, in input
// order. Per-file failures land in the matching result and do not abort
// the rest of the batch; clip IDs are generated per file.
func (r *Runner) Run(ctx context.Context, paths []string, onProgress ProgressFunc) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	r.logger.Info().
		Int("files", len(paths)).
		Int("workers", r.workers).
		Msg("starting batch analysis")

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	workers := r.workers
	if workers > len(paths) {
		workers = len(paths)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := paths[idx]
				record, err := r.analyzer.Analyze(ctx, path, "")
				results[idx] = Result{Path: path, Analysis: record, Err: err}

				if err != nil {
					r.logger.Warn().Err(err).Str("input", path).Msg("analysis failed")
				}

				mu.Lock()
				done++
				if onProgress != nil {
					onProgress(done, len(paths))
				}
				mu.Unlock()
			}
		}()
	}

	for idx := range paths {
		// Once the context dies, the remaining inputs report the
		// cancellation instead of waiting on workers
		if ctx.Err() != nil {
			results[idx] = Result{Path: paths[idx], Err: ctx.Err()}
			continue
		}
		select {
		case jobs <- idx:
		case <-ctx.Done():
			results[idx] = Result{Path: paths[idx], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.logger.Info().
		Int("files", len(paths)).
		Int("failed", failed).
		Msg("batch analysis complete")

	return results
}
