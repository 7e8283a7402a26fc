package ffmpeg

import "time"

// VideoInfo is the normalized structural metadata for one video file.
// Absent fields take defined defaults rather than failing the probe:
// duration and fps 0, width/height 0, codec "unknown".
type VideoInfo struct {
	FilePath   string  `json:"file_path"`
	Duration   float64 `json:"duration"` // seconds, 3 decimals
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"` // 3 decimals, 0 when unparseable
	Codec      string  `json:"codec"`
	FrameCount int     `json:"frame_count"` // 0 when unknown
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame   int
	FPS     float64
	Bitrate string
	Time    string
	Speed   string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
// Called periodically with progress information as the operation executes.
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default wall-clock budgets for external tool runs
const (
	DefaultProbeTimeout = 30 * time.Second
	DefaultExecTimeout  = 120 * time.Second
)

// Config controls executor behavior
type Config struct {
	Threads      int
	ProbeTimeout time.Duration
	ExecTimeout  time.Duration
}
