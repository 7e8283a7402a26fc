package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kikiluvv/clipvibe/internal/clips"
	"github.com/kikiluvv/clipvibe/internal/video"
	"github.com/kikiluvv/clipvibe/pkg/util"
)

// Analyzer extracts the visual metrics record from single video files
type Analyzer struct {
	logger zerolog.Logger
	opener video.Opener
	opts   Options
}

// New creates an analyzer on top of a video opener
func New(logger zerolog.Logger, opener video.Opener, opts Options) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "analysis").Logger(),
		opener: opener,
		opts:   opts.withDefaults(),
	}
}

// Analyze samples the video and computes brightness, contrast, dominant
// colors and color temperature. Either every metric lands in the result or
// the whole call fails; partial records are never returned.
func (a *Analyzer) Analyze(ctx context.Context, path, clipID string) (*clips.Analysis, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	if clipID == "" {
		clipID = uuid.NewString()
	}

	handle, err := a.opener.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	defer func() {
		if err := handle.Release(); err != nil {
			a.logger.Warn().Err(err).Str("clip", clipID).Msg("failed to release video handle")
		}
	}()

	frames, err := a.sampleFrames(ctx, handle, a.opts.SampleCap)
	if err != nil {
		return nil, err
	}

	brightness, contrast := luminanceStats(frames)

	colors, err := extractPalette(frames, a.opts)
	if err != nil {
		return nil, fmt.Errorf("palette extraction failed: %w", err)
	}

	kelvin := estimateTemperature(frames)

	a.logger.Info().
		Str("clip", clipID).
		Int("frames", len(frames)).
		Float64("brightness", brightness).
		Float64("contrast", contrast).
		Str("dominant", colors[0]).
		Int("kelvin", kelvin).
		Msg("analysis complete")

	return &clips.Analysis{
		ClipID:           clipID,
		Brightness:       brightness,
		Contrast:         contrast,
		DominantColors:   colors,
		ColorTemperature: kelvin,
	}, nil
}
