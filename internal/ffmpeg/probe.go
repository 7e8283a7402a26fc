package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"github.com/kikiluvv/clipvibe/pkg/util"
)

// Probe extracts structural metadata from a video file
func (e *Executor) Probe(ctx context.Context, filePath string) (*VideoInfo, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}

	probeCtx := ctx
	if e.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, e.probeTimeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	}

	cmd := exec.CommandContext(probeCtx, e.ffprobePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("ffprobe %w", ErrTimeout)
		}
		if probeCtx.Err() == context.Canceled {
			return nil, probeCtx.Err()
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var report probeReport
	if err := json.Unmarshal(output, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return parseProbeReport(filePath, &report)
}

// parseProbeReport normalizes an ffprobe report into VideoInfo. Split from
// Probe so parsing can be exercised without the external tool.
func parseProbeReport(filePath string, report *probeReport) (*VideoInfo, error) {
	// First stream whose type is video wins
	var video *probeStream
	for i := range report.Streams {
		if report.Streams[i].CodecType == "video" {
			video = &report.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%w in %s", ErrNoVideoStream, filePath)
	}

	info := &VideoInfo{
		FilePath: filePath,
		Width:    video.Width,
		Height:   video.Height,
		Codec:    "unknown",
	}

	if video.CodecName != "" {
		info.Codec = video.CodecName
	}

	if video.RFrameRate != "" {
		info.FPS = util.ParseFrameRate(video.RFrameRate)
	}

	info.Duration = extractDuration(video, &report.Format)
	info.FrameCount = estimateFrameCount(video, info.Duration, info.FPS)

	return info, nil
}

// extractDuration walks the fallback chain: stream duration, container
// duration, then the DURATION tag in clock form. Missing or unparseable
// values fall through; exhausting the chain yields 0.0.
func extractDuration(stream *probeStream, format *probeFormat) float64 {
	if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
		return util.Round(d, 3)
	}
	if d, err := strconv.ParseFloat(format.Duration, 64); err == nil {
		return util.Round(d, 3)
	}
	if stream.Tags.Duration != "" {
		if d, err := util.ParseClockTime(stream.Tags.Duration); err == nil {
			return util.Round(d, 3)
		}
	}
	return 0.0
}

// estimateFrameCount prefers the declared nb_frames, falls back to
// duration times fps, and reports 0 when neither is usable.
func estimateFrameCount(stream *probeStream, duration, fps float64) int {
	if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
		return n
	}
	if duration > 0 && fps > 0 {
		return int(math.Round(duration * fps))
	}
	return 0
}

// probeReport matches ffprobe JSON output structure
type probeReport struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
	Tags       struct {
		Duration string `json:"DURATION"`
	} `json:"tags"`
}
