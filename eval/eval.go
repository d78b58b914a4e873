// Package eval provides clustering quality metrics.
//
// AdjustedRandIndex scores agreement between two label assignments
// (typically predicted vs ground truth), Silhouette scores cluster
// cohesion vs separation from the data alone, and Inertia is the
// within-cluster sum of squared distances minimized by k-means.
package eval

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/distance"
)

// AdjustedRandIndex computes the chance-adjusted agreement between two
// label assignments over the same points. It is symmetric and invariant
// to label permutations: 1 means identical clusterings, values near 0
// mean agreement no better than chance.
func AdjustedRandIndex(a, b []int) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("label length mismatch: %d vs %d", len(a), len(b))
	}
	n := len(a)
	if n == 0 {
		return 0, fmt.Errorf("empty label assignments")
	}

	// Contingency table and marginals.
	contingency := make(map[[2]int]int)
	rowSums := make(map[int]int)
	colSums := make(map[int]int)
	for i := 0; i < n; i++ {
		contingency[[2]int{a[i], b[i]}]++
		rowSums[a[i]]++
		colSums[b[i]]++
	}

	var sumComb, sumRow, sumCol float64
	for _, v := range contingency {
		sumComb += comb2(v)
	}
	for _, v := range rowSums {
		sumRow += comb2(v)
	}
	for _, v := range colSums {
		sumCol += comb2(v)
	}

	expected := sumRow * sumCol / comb2(n)
	maxIndex := (sumRow + sumCol) / 2

	if maxIndex == expected {
		// Both clusterings are trivial (all singletons or one cluster).
		return 1, nil
	}
	return (sumComb - expected) / (maxIndex - expected), nil
}

func comb2(n int) float64 {
	return float64(n) * float64(n-1) / 2
}

// Silhouette computes the mean silhouette coefficient over all points:
// (b - a) / max(a, b), where a is the mean distance to the point's own
// cluster and b the mean distance to the nearest other cluster.
// Singleton clusters score 0. Requires at least 2 distinct clusters.
//
// Runtime is O(n^2) distance evaluations.
func Silhouette(points *clustergo.PointSet, labels []int, metric distance.Metric) (float64, error) {
	n := points.Len()
	if len(labels) != n {
		return 0, fmt.Errorf("label length %d does not match point count %d", len(labels), n)
	}

	clusterSizes := make(map[int]int)
	for _, c := range labels {
		clusterSizes[c]++
	}
	if len(clusterSizes) < 2 {
		return 0, fmt.Errorf("silhouette requires at least 2 clusters, got %d", len(clusterSizes))
	}

	distFunc, err := distance.Provider(metric)
	if err != nil {
		return 0, err
	}

	scores := make([]float64, n)
	sums := make(map[int]float64, len(clusterSizes))

	for i := 0; i < n; i++ {
		for c := range sums {
			delete(sums, c)
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sums[labels[j]] += float64(distFunc(points.At(i), points.At(j)))
		}

		own := labels[i]
		if clusterSizes[own] == 1 {
			scores[i] = 0
			continue
		}

		a := sums[own] / float64(clusterSizes[own]-1)
		b := 0.0
		first := true
		for c, sum := range sums {
			if c == own {
				continue
			}
			mean := sum / float64(clusterSizes[c])
			if first || mean < b {
				b = mean
				first = false
			}
		}

		max := a
		if b > max {
			max = b
		}
		if max > 0 {
			scores[i] = (b - a) / max
		}
	}

	return stat.Mean(scores, nil), nil
}

// Inertia computes the within-cluster sum of squared Euclidean distances
// between every point and its assigned centroid.
func Inertia(points *clustergo.PointSet, centroids []float32, labels []int) (float64, error) {
	n := points.Len()
	dim := points.Dim()
	if len(labels) != n {
		return 0, fmt.Errorf("label length %d does not match point count %d", len(labels), n)
	}
	if len(centroids)%dim != 0 {
		return 0, fmt.Errorf("centroid length %d is not a multiple of dimension %d", len(centroids), dim)
	}
	k := len(centroids) / dim

	var sum float64
	for i := 0; i < n; i++ {
		c := labels[i]
		if c < 0 || c >= k {
			return 0, fmt.Errorf("label %d out of range [0, %d)", c, k)
		}
		sum += float64(distance.SquaredL2(points.At(i), centroids[c*dim:(c+1)*dim]))
	}
	return sum, nil
}
