package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/clipvibe/internal/ffmpeg"
)

// Handle is an open decode session over a single video file. A handle is
// owned by one analysis at a time and must be released when done.
type Handle interface {
	// FrameCount reports the number of frames in the video, 0 if unknown.
	FrameCount() int
	// ReadFrame decodes the frame at the given index. Reading past the end
	// of the stream returns an error wrapping io.EOF.
	ReadFrame(ctx context.Context, index int) (image.Image, error)
	// Release frees everything the handle holds. Safe to call once.
	Release() error
}

// Opener opens video files for frame access
type Opener interface {
	Open(ctx context.Context, path string) (Handle, error)
}

// Decoder opens videos through an ffmpeg executor
type Decoder struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
}

// NewDecoder creates a decoder backed by the given executor
func NewDecoder(logger zerolog.Logger, exec *ffmpeg.Executor) *Decoder {
	return &Decoder{
		logger: logger.With().Str("component", "video").Logger(),
		exec:   exec,
	}
}

// Open probes the file and prepares a frame extraction workspace. Probe
// failure means the file is not decodable as video.
func (d *Decoder) Open(ctx context.Context, path string) (Handle, error) {
	info, err := d.exec.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	tempDir, err := os.MkdirTemp("", "clipvibe-frames-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame workspace: %w", err)
	}

	d.logger.Debug().
		Str("path", path).
		Int("frames", info.FrameCount).
		Msg("opened video")

	return &fileHandle{
		exec:       d.exec,
		path:       path,
		frameCount: info.FrameCount,
		tempDir:    tempDir,
	}, nil
}

// fileHandle extracts frames on demand into a private temp directory
type fileHandle struct {
	exec       *ffmpeg.Executor
	path       string
	frameCount int
	tempDir    string
}

func (h *fileHandle) FrameCount() int {
	return h.frameCount
}

func (h *fileHandle) ReadFrame(ctx context.Context, index int) (image.Image, error) {
	framePath := filepath.Join(h.tempDir, fmt.Sprintf("frame_%06d.png", index))

	if err := h.exec.ExtractFrame(ctx, h.path, framePath, index); err != nil {
		return nil, fmt.Errorf("failed to extract frame %d: %w", index, err)
	}

	data, err := os.ReadFile(framePath)
	if err != nil {
		if os.IsNotExist(err) {
			// ffmpeg exits cleanly when the index is past the end of the
			// stream; the missing output file is the only signal.
			return nil, fmt.Errorf("frame %d: %w", index, io.EOF)
		}
		return nil, fmt.Errorf("failed to read frame %d: %w", index, err)
	}
	_ = os.Remove(framePath)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %d: %w", index, err)
	}

	return img, nil
}

func (h *fileHandle) Release() error {
	return os.RemoveAll(h.tempDir)
}
