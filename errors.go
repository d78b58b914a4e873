package clustergo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/internal/kmeans"
)

var (
	// ErrNotFitted is returned by Predict when no successful Fit has
	// completed on the engine.
	ErrNotFitted = errors.New("model is not fitted")
)

// ErrInvalidConfiguration indicates an engine configuration that cannot
// produce a valid clustering (k out of range, non-positive iteration
// budget, negative tolerance).
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfiguration struct {
	Reason string
	cause  error
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *ErrInvalidConfiguration) Unwrap() error { return e.cause }

// ErrDegenerateCluster indicates a centroid lost all assigned points
// during an update step. The mean of an empty point set is undefined, so
// the run fails instead of producing NaN centroids.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDegenerateCluster struct {
	Cluster   int
	Iteration int
	cause     error
}

func (e *ErrDegenerateCluster) Error() string {
	return fmt.Sprintf("degenerate cluster %d at iteration %d", e.Cluster, e.Iteration)
}

func (e *ErrDegenerateCluster) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a point set whose dimensionality differs
// from the fitted model.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ec *kmeans.EmptyClusterError
	if errors.As(err, &ec) {
		return &ErrDegenerateCluster{Cluster: ec.Cluster, Iteration: ec.Iteration, cause: err}
	}

	return err
}
