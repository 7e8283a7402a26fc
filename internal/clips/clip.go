package clips

import (
	"context"
)

// Analysis holds the visual metrics extracted from one clip. The JSON
// field names are the boundary contract consumed by downstream tooling.
type Analysis struct {
	ClipID           string   `json:"clip_id"`
	Brightness       float64  `json:"brightness"`
	Contrast         float64  `json:"contrast"`
	DominantColors   []string `json:"dominant_colors"`
	ColorTemperature int      `json:"color_temperature"`
}

// Analyzer extracts visual metrics from a video file
type Analyzer interface {
	Analyze(ctx context.Context, path, clipID string) (*Analysis, error)
}
