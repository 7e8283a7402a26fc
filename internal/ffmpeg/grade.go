package ffmpeg

import (
	"context"
	"fmt"
)

// ApplyFilters re-encodes the video through a -vf filter chain while
// copying the audio stream untouched.
func (e *Executor) ApplyFilters(ctx context.Context, input, output, filterChain string, progressFunc ProgressFunc) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}
	if filterChain == "" {
		return fmt.Errorf("filter chain is required")
	}

	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Str("filters", filterChain).
		Msg("applying filters")

	args := []string{
		"-i", input,
		"-vf", filterChain,
		"-c:a", "copy",
		output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: progressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("filter output")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("filter application failed: %w", err)
	}

	e.logger.Info().Str("output", output).Msg("filters applied")
	return nil
}
