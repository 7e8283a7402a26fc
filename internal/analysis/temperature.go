package analysis

import (
	"image"
	"math"
)

// Anchor points for the blue/red ratio to Kelvin interpolation. A neutral
// ratio of 1.0 lands on 5500 K between the anchors.
const (
	ratioAnchorLow   = 0.8
	ratioAnchorHigh  = 1.2
	kelvinAnchorLow  = 3000.0
	kelvinAnchorHigh = 8000.0
	kelvinMin        = 2500
	kelvinMax        = 10000
	kelvinNeutral    = 5500
)

// estimateTemperature maps the batch's mean blue/red balance onto a Kelvin
// value. Frames whose mean red channel is exactly zero are skipped; a batch
// with no usable ratio reports the neutral default.
func estimateTemperature(frames []image.Image) int {
	var ratioSum float64
	usable := 0

	for _, frame := range frames {
		meanRed, meanBlue := channelMeans(frame)
		if meanRed == 0 {
			continue
		}
		ratioSum += meanBlue / meanRed
		usable++
	}

	if usable == 0 {
		return kelvinNeutral
	}

	ratio := ratioSum / float64(usable)

	// Linear interpolation between the anchors, unbounded until the clamp
	kelvin := kelvinAnchorLow + ((ratio-ratioAnchorLow)/(ratioAnchorHigh-ratioAnchorLow))*(kelvinAnchorHigh-kelvinAnchorLow)
	if kelvin < kelvinMin {
		kelvin = kelvinMin
	}
	if kelvin > kelvinMax {
		kelvin = kelvinMax
	}

	return int(math.Round(kelvin))
}

// channelMeans returns the frame-averaged red and blue channel intensities
func channelMeans(img image.Image) (meanRed, meanBlue float64) {
	bounds := img.Bounds()
	var redSum, blueSum float64
	pixels := float64(bounds.Dx() * bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, b, _ := img.At(x, y).RGBA()
			redSum += float64(r >> 8)
			blueSum += float64(b >> 8)
		}
	}

	return redSum / pixels, blueSum / pixels
}
