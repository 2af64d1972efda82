package mesh

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SizerOptions controls PointSize.
type SizerOptions struct {
	Base       float64
	MinSize    float64
	MaxSize    float64
	MaxSamples int

	// Rand is the sampling source. Nil means a time-seeded source, which
	// makes repeated calls on the same input return slightly different
	// sizes; pass a seeded source for deterministic results.
	Rand *rand.Rand
}

// DefaultSizerOptions returns the standard sizing parameters.
func DefaultSizerOptions() SizerOptions {
	return SizerOptions{
		Base:       3,
		MinSize:    0.5,
		MaxSize:    10,
		MaxSamples: 1000,
	}
}

// PointSize estimates a scatter point size for centroid-only rendering,
// inversely related to point density so that both sparse and very dense
// meshes stay legible. It samples up to MaxSamples centroids without
// replacement and averages each sample's distance to its nearest other
// sample (brute force over the sample, an accepted approximation), then
// scales that by the global coordinate range of all centroids.
func PointSize(centroids []mgl64.Vec3, opts SizerOptions) float64 {
	if len(centroids) < 2 {
		return opts.Base
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sample := centroids
	if opts.MaxSamples > 0 && len(centroids) > opts.MaxSamples {
		sample = make([]mgl64.Vec3, opts.MaxSamples)
		for i, idx := range rng.Perm(len(centroids))[:opts.MaxSamples] {
			sample[i] = centroids[idx]
		}
	}

	var sum float64
	for i := range sample {
		min := math.Inf(1)
		for j := range sample {
			if i == j {
				continue
			}
			if d := sample[i].Sub(sample[j]).Len(); d < min {
				min = d
			}
		}
		sum += min
	}
	avgMinDistance := sum / float64(len(sample))

	// Global scalar range over every component of every centroid, not
	// per-axis.
	lo, hi := centroids[0][0], centroids[0][0]
	for _, c := range centroids {
		for _, v := range c {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	relativeDensity := 0.01
	if dataRange := hi - lo; dataRange > 0 {
		relativeDensity = avgMinDistance / dataRange
	}

	size := opts.Base * relativeDensity * 100
	if size < opts.MinSize {
		size = opts.MinSize
	}
	if size > opts.MaxSize {
		size = opts.MaxSize
	}
	return size
}
