package kmeans

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/viterin/vek/vek32"

	"github.com/hupe1980/clustergo/distance"
)

// Default convergence tolerances, applied when the caller leaves them zero.
const (
	DefaultAbsTolerance = 1e-8
	DefaultRelTolerance = 1e-5
)

// Config controls a single training run.
type Config struct {
	// K is the number of centroids to train. Must satisfy 0 < K <= N.
	K int

	// MaxIterations bounds the number of assignment/update passes.
	MaxIterations int

	// AbsTolerance and RelTolerance define element-wise convergence:
	// |new - old| <= AbsTolerance + RelTolerance*|old|.
	AbsTolerance float32
	RelTolerance float32

	// Metric selects the distance function for the assignment step.
	Metric distance.Metric

	// Seed, if non-nil, makes centroid initialization deterministic.
	Seed *int64
}

// Outcome is the terminal state of a training run.
type Outcome struct {
	Centroids  []float32 // flattened k*dim
	Labels     []int     // one entry per input vector, in [0, k)
	Iterations int       // update passes that moved at least one centroid
	Converged  bool
	Inertia    float64 // within-cluster sum of squared Euclidean distances
}

// EmptyClusterError indicates a centroid lost all assigned points during
// an update step. The mean of an empty set is undefined, so training
// aborts instead of propagating NaN centroids.
type EmptyClusterError struct {
	Cluster   int
	Iteration int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("cluster %d has no assigned points at iteration %d", e.Cluster, e.Iteration)
}

// Train runs Lloyd's algorithm over vectors (flattened, row-major, n*dim)
// and returns the terminal centroids and labels.
//
// The context is checked once per pass; cancellation aborts with ctx.Err().
func Train(ctx context.Context, vectors []float32, dim int, cfg Config) (*Outcome, error) {
	if dim <= 0 || len(vectors)%dim != 0 {
		return nil, fmt.Errorf("invalid vector layout: len %d, dim %d", len(vectors), dim)
	}
	n := len(vectors) / dim
	if cfg.K <= 0 || cfg.K > n {
		return nil, fmt.Errorf("k %d out of range for %d vectors", cfg.K, n)
	}
	if cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("max iterations must be positive, got %d", cfg.MaxIterations)
	}

	distFunc, err := distance.Provider(cfg.Metric)
	if err != nil {
		return nil, err
	}

	atol := cfg.AbsTolerance
	if atol == 0 {
		atol = DefaultAbsTolerance
	}
	rtol := cfg.RelTolerance
	if rtol == 0 {
		rtol = DefaultRelTolerance
	}

	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	k := cfg.K
	centroids := make([]float32, k*dim)

	// Sample k distinct points as initial centroids.
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		copy(centroids[i*dim:(i+1)*dim], vectors[perm[i]*dim:(perm[i]+1)*dim])
	}

	labels := make([]int, n)
	counts := make([]int, k)
	next := make([]float32, k*dim)

	iterations := 0
	converged := false

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignInto(labels, vectors, dim, centroids, distFunc)

		// Update step: recompute each centroid as the mean of its members.
		for i := range next {
			next[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := labels[i]
			vek32.Add_Inplace(next[c*dim:(c+1)*dim], vectors[i*dim:(i+1)*dim])
			counts[c]++
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				return nil, &EmptyClusterError{Cluster: j, Iteration: iter + 1}
			}
			vek32.MulNumber_Inplace(next[j*dim:(j+1)*dim], 1/float32(counts[j]))
		}

		if allClose(next, centroids, atol, rtol) {
			converged = true
			break
		}

		copy(centroids, next)
		iterations++
	}

	// Final assignment against the terminal centroids, so labels and
	// inertia are exactly reproducible by a later assignment-only pass.
	assignInto(labels, vectors, dim, centroids, distFunc)

	return &Outcome{
		Centroids:  centroids,
		Labels:     labels,
		Iterations: iterations,
		Converged:  converged,
		Inertia:    inertia(vectors, dim, centroids, labels),
	}, nil
}

// Assign labels every vector with its nearest centroid and reports the
// within-cluster sum of squared Euclidean distances.
func Assign(vectors []float32, dim int, centroids []float32, metric distance.Metric) ([]int, float64, error) {
	if dim <= 0 || len(vectors)%dim != 0 || len(centroids)%dim != 0 {
		return nil, 0, fmt.Errorf("invalid vector layout: len %d, centroids %d, dim %d", len(vectors), len(centroids), dim)
	}
	distFunc, err := distance.Provider(metric)
	if err != nil {
		return nil, 0, err
	}

	labels := make([]int, len(vectors)/dim)
	assignInto(labels, vectors, dim, centroids, distFunc)

	return labels, inertia(vectors, dim, centroids, labels), nil
}

// assignInto writes the nearest centroid index for every vector into labels.
// Ties resolve to the lowest centroid index via the first-minimum scan.
func assignInto(labels []int, vectors []float32, dim int, centroids []float32, distFunc distance.Func) {
	n := len(vectors) / dim
	k := len(centroids) / dim

	for i := 0; i < n; i++ {
		vec := vectors[i*dim : (i+1)*dim]
		best := 0
		minDist := float32(math.MaxFloat32)

		for j := 0; j < k; j++ {
			d := distFunc(vec, centroids[j*dim:(j+1)*dim])
			if d < minDist {
				minDist = d
				best = j
			}
		}

		labels[i] = best
	}
}

func inertia(vectors []float32, dim int, centroids []float32, labels []int) float64 {
	var sum float64
	for i, c := range labels {
		sum += float64(distance.SquaredL2(vectors[i*dim:(i+1)*dim], centroids[c*dim:(c+1)*dim]))
	}
	return sum
}

// allClose reports whether a and b are element-wise close:
// |a[i] - b[i]| <= atol + rtol*|b[i]|.
func allClose(a, b []float32, atol, rtol float32) bool {
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		ref := b[i]
		if ref < 0 {
			ref = -ref
		}
		if diff > atol+rtol*ref {
			return false
		}
	}
	return true
}
