package distance

import (
	"fmt"

	"github.com/viterin/vek/vek32"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return vek32.Dot(a, b)
}

// L2 calculates the Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func L2(a, b []float32) float32 {
	return vek32.Distance(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	d := vek32.Distance(a, b)
	return d * d
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricSquaredL2 Metric = iota
	MetricL2
	MetricDot
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricL2:
		return "L2"
	case MetricDot:
		return "Dot"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// MetricByName returns the metric for its stable name.
//
// This is used by self-describing persistence formats that store the
// metric name in their header.
func MetricByName(name string) (Metric, bool) {
	switch name {
	case "SquaredL2":
		return MetricSquaredL2, true
	case "L2":
		return MetricL2, true
	case "Dot":
		return MetricDot, true
	default:
		return 0, false
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricL2:
		return L2, nil
	case MetricDot:
		// Negated so that smaller is closer, matching the other metrics.
		return func(a, b []float32) float32 { return -vek32.Dot(a, b) }, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
