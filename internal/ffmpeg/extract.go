package ffmpeg

import (
	"context"
	"fmt"
)

// ExtractFrame decodes the single frame at the given index into a still
// image file. The select filter counts frames from 0; -vsync 0 keeps the
// frame numbering aligned with the source instead of the output rate.
func (e *Executor) ExtractFrame(ctx context.Context, input, output string, index int) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}
	if index < 0 {
		return fmt.Errorf("frame index cannot be negative")
	}

	e.logger.Debug().
		Str("input", input).
		Int("frame", index).
		Msg("extracting frame")

	args := []string{
		"-i", input,
		"-vf", fmt.Sprintf("select=eq(n\\,%d)", index),
		"-frames:v", "1",
		"-vsync", "0",
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("frame extraction")
		},
	}

	return e.Run(ctx, opts)
}
