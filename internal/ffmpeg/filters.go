package ffmpeg

import (
	"fmt"
	"strings"
)

// FilterBuilder helps construct complex ffmpeg filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// Scale adds a scale filter
func (fb *FilterBuilder) Scale(width, height int) *FilterBuilder {
	if width <= 0 || height <= 0 {
		// Return self without adding filter - allows chaining to continue
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("scale=%d:%d", width, height))
	return fb
}

// FPS adds an fps filter
func (fb *FilterBuilder) FPS(fps float64) *FilterBuilder {
	if fps <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fps=%f", fps))
	return fb
}

// Eq adds an eq filter for brightness, contrast, saturation and gamma.
// Neutral values (0, 1, 1, 1) produce no filter.
func (fb *FilterBuilder) Eq(brightness, contrast, saturation, gamma float64) *FilterBuilder {
	if brightness == 0 && contrast == 1 && saturation == 1 && gamma == 1 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("eq=brightness=%g:contrast=%g:saturation=%g:gamma=%g",
		brightness, contrast, saturation, gamma))
	return fb
}

// ColorTemperature adds a colortemperature filter. Kelvin values outside
// ffmpeg's accepted range (1000-40000) are ignored.
func (fb *FilterBuilder) ColorTemperature(kelvin int) *FilterBuilder {
	if kelvin < 1000 || kelvin > 40000 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("colortemperature=temperature=%d", kelvin))
	return fb
}

// Curves adds a curves filter with a named preset
func (fb *FilterBuilder) Curves(preset string) *FilterBuilder {
	if preset == "" {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("curves=preset=%s", preset))
	return fb
}

// Grayscale drops all saturation
func (fb *FilterBuilder) Grayscale() *FilterBuilder {
	fb.filters = append(fb.filters, "hue=s=0")
	return fb
}

// Custom adds a custom filter string
func (fb *FilterBuilder) Custom(filter string) *FilterBuilder {
	if filter == "" {
		return fb
	}
	fb.filters = append(fb.filters, filter)
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}
