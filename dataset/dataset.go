// Package dataset generates synthetic point sets for clustering.
//
// MakeBlobs produces isotropic Gaussian blobs with ground-truth labels,
// the standard fixture for exercising and evaluating centroid-based
// clustering.
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/clustergo"
)

// Options configure blob generation.
type Options struct {
	// CenterBox is the bounding interval for each center coordinate.
	// Default: [-10, 10].
	CenterBox [2]float64

	// Centers, if non-nil, fixes the generating centers (flattened
	// row-major, c*dim values) instead of sampling them from CenterBox.
	Centers []float32
}

// WithCenterBox sets the bounding interval for generated centers.
func WithCenterBox(lo, hi float64) func(*Options) {
	return func(o *Options) {
		o.CenterBox = [2]float64{lo, hi}
	}
}

// WithCenters fixes the generating centers instead of sampling them.
func WithCenters(centers []float32) func(*Options) {
	return func(o *Options) {
		o.Centers = centers
	}
}

// Blobs is a generated dataset with its ground truth.
type Blobs struct {
	// Points holds all generated samples, grouped by blob.
	Points *clustergo.PointSet
	// Labels maps every point index to its generating center.
	Labels []int
	// Centers holds the true generating centers, flattened row-major.
	Centers []float32
}

// MakeBlobs generates n points of dimension dim around c Gaussian
// centers with the given standard deviation. Centers are sampled
// uniformly from the center box. The seed makes generation
// deterministic.
//
// Points are split as evenly as possible across centers, with the
// remainder going to the lowest-indexed ones.
func MakeBlobs(n, dim, c int, stddev float64, seed int64, optFns ...func(*Options)) (*Blobs, error) {
	if n <= 0 || dim <= 0 || c <= 0 {
		return nil, fmt.Errorf("n, dim and centers must be positive, got n=%d dim=%d centers=%d", n, dim, c)
	}
	if c > n {
		return nil, fmt.Errorf("more centers (%d) than points (%d)", c, n)
	}
	if stddev < 0 {
		return nil, fmt.Errorf("stddev must be non-negative, got %g", stddev)
	}

	opts := Options{
		CenterBox: [2]float64{-10, 10},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.CenterBox[1] <= opts.CenterBox[0] {
		return nil, fmt.Errorf("invalid center box [%g, %g]", opts.CenterBox[0], opts.CenterBox[1])
	}

	rng := rand.New(rand.NewSource(seed))

	var centers []float32
	if opts.Centers != nil {
		if len(opts.Centers) != c*dim {
			return nil, fmt.Errorf("expected %d center values, got %d", c*dim, len(opts.Centers))
		}
		centers = append([]float32(nil), opts.Centers...)
	} else {
		centers = make([]float32, c*dim)
		lo, hi := opts.CenterBox[0], opts.CenterBox[1]
		for i := range centers {
			centers[i] = float32(lo + rng.Float64()*(hi-lo))
		}
	}

	data := make([]float32, 0, n*dim)
	labels := make([]int, 0, n)

	per := n / c
	extra := n % c
	for j := 0; j < c; j++ {
		count := per
		if j < extra {
			count++
		}
		center := centers[j*dim : (j+1)*dim]
		for i := 0; i < count; i++ {
			for d := 0; d < dim; d++ {
				data = append(data, center[d]+float32(rng.NormFloat64()*stddev))
			}
			labels = append(labels, j)
		}
	}

	points, err := clustergo.NewPointSet(data, dim)
	if err != nil {
		return nil, err
	}

	return &Blobs{
		Points:  points,
		Labels:  labels,
		Centers: centers,
	}, nil
}
