package clustergo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/internal/kmeans"
)

// Model is the fitted state an engine retains for Predict and
// persistence: the terminal centroids plus the metadata needed to
// interpret them.
type Model struct {
	// Centroids holds the centroid positions, flattened row-major.
	Centroids []float32
	// Dim is the dimensionality of the centroids.
	Dim int
	// Metric is the distance metric the model was trained with.
	Metric distance.Metric
}

// NumClusters returns the number of centroids in the model.
func (m *Model) NumClusters() int { return len(m.Centroids) / m.Dim }

// Engine owns the configuration of a k-means clustering run and, after a
// successful Fit, the fitted model.
//
// An Engine is not safe for concurrent use. Callers needing concurrency
// must serialize access to one engine or use independent engine
// instances per caller.
type Engine struct {
	k             int
	maxIterations int
	absTolerance  float32
	relTolerance  float32
	metric        distance.Metric
	randomSeed    *int64
	restarts      int
	logger        *Logger

	model *Model // nil until a Fit succeeds
}

// Fit trains k centroids on the given point set and returns the outcome.
//
// Centroids are initialized by sampling k distinct points uniformly at
// random (seeded if a seed was configured), then refined by alternating
// assignment and mean-update passes until the centroids stop moving
// within the configured tolerance or the iteration budget is exhausted.
//
// With Restarts(r) > 1, r independently seeded runs execute concurrently
// and the one with the lowest inertia wins.
//
// On any error no engine state is mutated; a previously fitted model
// stays available for Predict.
func (e *Engine) Fit(ctx context.Context, points *PointSet) (*Result, error) {
	if points == nil || points.Len() == 0 {
		err := &ErrInvalidConfiguration{Reason: "empty point set"}
		e.logger.LogFit(ctx, 0, 0, false, 0, err)
		return nil, err
	}
	if e.k > points.Len() {
		err := &ErrInvalidConfiguration{Reason: fmt.Sprintf("k %d exceeds point count %d", e.k, points.Len())}
		e.logger.LogFit(ctx, points.Len(), 0, false, 0, err)
		return nil, err
	}

	outcome, err := e.train(ctx, points)
	if err != nil {
		err = translateError(err)
		e.logger.LogFit(ctx, points.Len(), 0, false, 0, err)
		return nil, err
	}

	e.model = &Model{
		Centroids: append([]float32(nil), outcome.Centroids...),
		Dim:       points.Dim(),
		Metric:    e.metric,
	}

	e.logger.LogFit(ctx, points.Len(), outcome.Iterations, outcome.Converged, outcome.Inertia, nil)

	return &Result{
		Centroids:  outcome.Centroids,
		Dim:        points.Dim(),
		Labels:     outcome.Labels,
		Iterations: outcome.Iterations,
		Converged:  outcome.Converged,
		Inertia:    outcome.Inertia,
	}, nil
}

func (e *Engine) train(ctx context.Context, points *PointSet) (*kmeans.Outcome, error) {
	cfg := kmeans.Config{
		K:             e.k,
		MaxIterations: e.maxIterations,
		AbsTolerance:  e.absTolerance,
		RelTolerance:  e.relTolerance,
		Metric:        e.metric,
		Seed:          e.randomSeed,
	}

	if e.restarts == 1 {
		return kmeans.Train(ctx, points.Data(), points.Dim(), cfg)
	}

	// Derive one deterministic seed per restart. Without a configured
	// seed the base is time-based, matching single-run behavior.
	var base int64
	if e.randomSeed != nil {
		base = *e.randomSeed
	} else {
		base = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}

	outcomes := make([]*kmeans.Outcome, e.restarts)
	degenerate := make([]error, e.restarts)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.restarts; i++ {
		g.Go(func() error {
			runCfg := cfg
			seed := base + int64(i)
			runCfg.Seed = &seed

			out, err := kmeans.Train(gctx, points.Data(), points.Dim(), runCfg)
			if err != nil {
				var ec *kmeans.EmptyClusterError
				if errors.As(err, &ec) {
					// A single unlucky initialization should not sink
					// the whole fit while other restarts can succeed.
					degenerate[i] = err
					return nil
				}
				return err
			}

			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *kmeans.Outcome
	for _, out := range outcomes {
		if out == nil {
			continue
		}
		if best == nil || out.Inertia < best.Inertia {
			best = out
		}
	}
	if best == nil {
		for _, err := range degenerate {
			if err != nil {
				return nil, err
			}
		}
		return nil, fmt.Errorf("no restart produced an outcome")
	}

	return best, nil
}

// Predict assigns every point in the given set to its nearest centroid
// of the fitted model and returns the labels.
//
// Fit must have succeeded at least once; otherwise ErrNotFitted is
// returned.
func (e *Engine) Predict(ctx context.Context, points *PointSet) ([]int, error) {
	if e.model == nil {
		e.logger.LogPredict(ctx, 0, ErrNotFitted)
		return nil, ErrNotFitted
	}
	if points == nil || points.Len() == 0 {
		err := &ErrInvalidConfiguration{Reason: "empty point set"}
		e.logger.LogPredict(ctx, 0, err)
		return nil, err
	}
	if points.Dim() != e.model.Dim {
		err := &ErrDimensionMismatch{Expected: e.model.Dim, Actual: points.Dim()}
		e.logger.LogPredict(ctx, points.Len(), err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, _, err := kmeans.Assign(points.Data(), points.Dim(), e.model.Centroids, e.model.Metric)
	if err != nil {
		e.logger.LogPredict(ctx, points.Len(), err)
		return nil, err
	}

	e.logger.LogPredict(ctx, points.Len(), nil)
	return labels, nil
}

// Model returns the fitted model, or nil if no Fit has succeeded.
//
// The returned model aliases engine state and must be treated as
// read-only.
func (e *Engine) Model() *Model { return e.model }
