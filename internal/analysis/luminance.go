package analysis

import (
	"image"
	"math"

	"github.com/kikiluvv/clipvibe/pkg/util"
)

// luminanceStats computes brightness and contrast over a frame batch.
// Brightness is the mean of per-frame mean luma, contrast the mean of
// per-frame luma population standard deviation, both normalized to [0,1]
// and rounded to 4 decimals.
func luminanceStats(frames []image.Image) (brightness, contrast float64) {
	var meanSum, stddevSum float64

	for _, frame := range frames {
		mean, stddev := frameLuminance(frame)
		meanSum += mean / 255.0
		stddevSum += stddev / 255.0
	}

	n := float64(len(frames))
	return util.Round(meanSum/n, 4), util.Round(stddevSum/n, 4)
}

// frameLuminance returns the mean and population standard deviation of
// one frame's luma values.
func frameLuminance(img image.Image) (mean, stddev float64) {
	bounds := img.Bounds()
	var lumSum, lumSqSum float64
	pixels := float64(bounds.Dx() * bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Luminance formula
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			lumSum += lum
			lumSqSum += lum * lum
		}
	}

	mean = lumSum / pixels
	variance := (lumSqSum / pixels) - (mean * mean)
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}
