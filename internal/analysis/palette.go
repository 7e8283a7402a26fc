package analysis

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/nfnt/resize"
)

// extractPalette clusters the batch's pixels into ClusterCount groups and
// returns their centers as hex colors, most populous cluster first.
func extractPalette(frames []image.Image, opts Options) ([]string, error) {
	pool := poolSamples(frames, opts.SampleDim)
	if len(pool) == 0 {
		return nil, fmt.Errorf("no pixel samples pooled")
	}

	// Degenerate pools still produce a K-sized palette: repeat samples
	// round-robin until the clustering routine has enough points
	base := len(pool)
	for i := 0; len(pool) < opts.ClusterCount; i++ {
		pool = append(pool, pool[i%base])
	}

	best, err := clusterPool(pool, opts)
	if err != nil {
		return nil, err
	}

	return rankedHexColors(best), nil
}

// poolSamples downscales every frame and flattens the pixels into one
// normalized RGB sample list.
func poolSamples(frames []image.Image, dim int) clusters.Observations {
	var pool clusters.Observations

	for _, frame := range frames {
		small := resize.Resize(uint(dim), uint(dim), frame, resize.Bilinear)
		bounds := small.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := small.At(x, y).RGBA()
				// Channel order is fixed to R, G, B here; the clustering
				// library expects coordinates in [0,1]
				pool = append(pool, clusters.Coordinates{
					float64(r>>8) / 255.0,
					float64(g>>8) / 255.0,
					float64(b>>8) / 255.0,
				})
			}
		}
	}

	return pool
}

// clusterPool partitions the pool Attempts times and keeps the partition
// with the lowest within-cluster sum of squared distances.
func clusterPool(pool clusters.Observations, opts Options) (clusters.Clusters, error) {
	// The library's delta threshold is the fraction of points allowed to
	// change cluster per iteration; epsilon 1.0 maps to the library
	// default 0.01
	km, err := kmeans.NewWithOptions(opts.Epsilon/100.0, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid clustering options: %w", err)
	}

	var best clusters.Clusters
	bestScore := math.Inf(1)

	for attempt := 0; attempt < opts.Attempts; attempt++ {
		cc, err := km.Partition(pool, opts.ClusterCount)
		if err != nil {
			return nil, fmt.Errorf("clustering failed: %w", err)
		}

		// Partition can settle without a final recenter pass, leaving a
		// center away from its members; recompute so every center is the
		// mean of its observations
		cc.Recenter()

		if score := withinClusterSum(cc); score < bestScore {
			bestScore = score
			best = cc
		}
	}

	return best, nil
}

// withinClusterSum totals each observation's squared distance to its
// cluster center.
func withinClusterSum(cc clusters.Clusters) float64 {
	var sum float64
	for _, c := range cc {
		for _, obs := range c.Observations {
			sum += obs.Distance(c.Center)
		}
	}
	return sum
}

// rankedHexColors orders clusters by population, largest first, and formats
// each center as hex. The slice is built in cluster index order and sorted
// stably, so equal populations keep that order.
func rankedHexColors(cc clusters.Clusters) []string {
	type rankedCluster struct {
		population int
		center     clusters.Coordinates
	}

	order := make([]rankedCluster, 0, len(cc))
	for _, c := range cc {
		order = append(order, rankedCluster{population: len(c.Observations), center: c.Center})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].population > order[j].population
	})

	colors := make([]string, 0, len(order))
	for _, rc := range order {
		colors = append(colors, hexColor(rc.center))
	}
	return colors
}

// hexColor renders a normalized RGB center as an uppercase hex string,
// clamping rounding artifacts into [0,255].
func hexColor(center clusters.Coordinates) string {
	return fmt.Sprintf("#%02X%02X%02X",
		channelByte(center[0]),
		channelByte(center[1]),
		channelByte(center[2]))
}

func channelByte(v float64) int {
	n := int(math.Round(v * 255.0))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
