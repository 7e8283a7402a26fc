package analysis

import (
	"context"
	"image"

	"github.com/kikiluvv/clipvibe/internal/video"
)

// fallbackStride is the index step used when the frame count is unknown.
const fallbackStride = 30

// sampleFrames selects up to limit frames from the handle. With a known
// frame count the indices are evenly spaced across the timeline; otherwise
// the stream is walked in fixed strides until it ends.
func (a *Analyzer) sampleFrames(ctx context.Context, handle video.Handle, limit int) ([]image.Image, error) {
	total := handle.FrameCount()
	frames := make([]image.Image, 0, limit)

	if total > 0 {
		step := total / limit
		if step < 1 {
			step = 1
		}
		for idx := 0; idx < total && len(frames) < limit; idx += step {
			img, err := handle.ReadFrame(ctx, idx)
			if err != nil {
				// Bad frames do not consume a sample slot; later
				// indices still get decoded
				a.logger.Warn().Err(err).Int("frame", idx).Msg("frame decode failed, skipping")
				continue
			}
			frames = append(frames, img)
		}
	} else {
		for idx := 0; len(frames) < limit; idx += fallbackStride {
			img, err := handle.ReadFrame(ctx, idx)
			if err != nil {
				// Length unknown, so a decode failure is the end of
				// the stream
				break
			}
			frames = append(frames, img)
		}
	}

	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	a.logger.Debug().
		Int("sampled", len(frames)).
		Int("total", total).
		Msg("frame sampling complete")

	return frames, nil
}
