package clustergo

import "fmt"

// PointSet is an ordered, fixed-dimension collection of points stored as
// a flattened row-major float32 slice.
//
// A PointSet is immutable input to Fit and Predict: the engine never
// mutates it, and callers must not mutate it while a run is in progress.
type PointSet struct {
	data []float32
	dim  int
}

// NewPointSet wraps a flattened row-major slice (n*dim values) as a
// PointSet. The slice is used directly, not copied.
func NewPointSet(data []float32, dim int) (*PointSet, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of dimension %d", len(data), dim)
	}
	return &PointSet{data: data, dim: dim}, nil
}

// PointSetFromVectors copies a slice of equal-length vectors into a new
// PointSet.
func PointSetFromVectors(vectors [][]float32) (*PointSet, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors supplied")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("vectors must have at least one dimension")
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
		data = append(data, v...)
	}

	return &PointSet{data: data, dim: dim}, nil
}

// Len returns the number of points.
func (p *PointSet) Len() int { return len(p.data) / p.dim }

// Dim returns the dimensionality of every point.
func (p *PointSet) Dim() int { return p.dim }

// At returns a view of the i-th point. The returned slice aliases the
// underlying storage and must not be mutated.
func (p *PointSet) At(i int) []float32 {
	return p.data[i*p.dim : (i+1)*p.dim]
}

// Data returns the underlying flattened storage.
func (p *PointSet) Data() []float32 { return p.data }
