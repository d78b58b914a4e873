// Package distance provides vector distance calculations for clustering.
//
// All kernels are backed by github.com/viterin/vek, which dispatches to
// SIMD implementations (AVX2/AVX-512 on x86-64) when available and falls
// back to portable Go otherwise.
//
// # Supported Metrics
//
//   - MetricSquaredL2: Squared Euclidean distance (default)
//   - MetricL2: Euclidean distance
//   - MetricDot: Negated dot product (inner product as a distance)
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
//	fn, err := distance.Provider(distance.MetricL2)
package distance
