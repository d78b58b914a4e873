package clustergo

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Result is the caller-owned outcome of a Fit call.
//
// It does not alias engine state: re-fitting the engine leaves previously
// returned results untouched.
type Result struct {
	// Centroids holds the terminal centroid positions, flattened
	// row-major (NumClusters() * Dim values).
	Centroids []float32

	// Dim is the dimensionality of centroids and training points.
	Dim int

	// Labels maps every training point index to its centroid index.
	Labels []int

	// Iterations counts the update passes that moved at least one
	// centroid before convergence or budget exhaustion.
	Iterations int

	// Converged reports whether centroid movement fell below the
	// configured tolerance within the iteration budget.
	Converged bool

	// Inertia is the within-cluster sum of squared Euclidean distances.
	Inertia float64
}

// NumClusters returns the number of centroids.
func (r *Result) NumClusters() int {
	return len(r.Centroids) / r.Dim
}

// Centroid returns a view of the j-th centroid.
func (r *Result) Centroid(j int) []float32 {
	return r.Centroids[j*r.Dim : (j+1)*r.Dim]
}

// Members returns the set of point indices assigned to cluster j as a
// roaring bitmap.
func (r *Result) Members(j int) *roaring.Bitmap {
	bm := roaring.New()
	for i, c := range r.Labels {
		if c == j {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// ClusterSizes returns the number of points assigned to each cluster.
func (r *Result) ClusterSizes() []int {
	sizes := make([]int, r.NumClusters())
	for _, c := range r.Labels {
		sizes[c]++
	}
	return sizes
}
