package video

import (
	"fmt"
	"strings"

	"github.com/kikiluvv/clipvibe/internal/ffmpeg"
)

// PresetNames lists the built-in grading presets in display order
func PresetNames() []string {
	return []string{"warm", "cool", "vivid", "mono", "vintage"}
}

// PresetChain returns the ffmpeg filter chain for a named grading preset
func PresetChain(name string) (string, error) {
	switch name {
	case "warm":
		return ffmpeg.NewFilterBuilder().
			ColorTemperature(4500).
			Eq(0, 1, 1.1, 1).
			Build(), nil
	case "cool":
		return ffmpeg.NewFilterBuilder().
			ColorTemperature(7500).
			Eq(0, 1, 1.05, 1).
			Build(), nil
	case "vivid":
		return ffmpeg.NewFilterBuilder().
			Eq(0, 1.15, 1.4, 1).
			Build(), nil
	case "mono":
		return ffmpeg.NewFilterBuilder().
			Grayscale().
			Eq(0, 1.05, 1, 1).
			Build(), nil
	case "vintage":
		return ffmpeg.NewFilterBuilder().
			Curves("vintage").
			Eq(0.03, 1, 0.85, 1).
			Build(), nil
	default:
		return "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
}
