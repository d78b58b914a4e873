// Package clustergo provides an embeddable k-means clustering engine for Go.
//
// Clustergo trains centroid models over in-memory point sets using Lloyd's
// algorithm and serves assignment-only queries against the fitted model.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	engine, _ := clustergo.KMeans(3).
//	    SquaredL2().
//	    MaxIterations(300).
//	    RandomSeed(42).
//	    Build()
//
//	result, _ := engine.Fit(ctx, points)
//	fmt.Println(result.Converged, result.Iterations, result.Inertia)
//
//	labels, _ := engine.Predict(ctx, queries)
//
// Fit returns a caller-owned Result holding the terminal centroids, the
// point-to-cluster assignment, the iteration count and the convergence
// flag. The engine retains the fitted model, so Predict can be called any
// number of times until the engine is discarded or re-fit.
//
// # Multi-Restart Fit
//
// Random initialization makes single runs sensitive to the starting
// centroids. Restarts(r) runs r independently seeded fits concurrently
// and keeps the one with the lowest inertia:
//
//	engine, _ := clustergo.KMeans(3).Restarts(10).RandomSeed(42).Build()
//
// # Model Persistence
//
// Fitted models can be saved to and loaded from a blobstore.Store with a
// self-describing snapshot format (codec and compression recorded in the
// header):
//
//	store := blobstore.NewMemoryStore()
//	_ = engine.SaveModel(ctx, store, "model.snap")
//	restored, _ := clustergo.LoadModel(ctx, store, "model.snap")
//
// # Concurrency
//
// An Engine instance is not safe for concurrent Fit/Predict calls.
// Callers needing concurrency must serialize access to one engine or use
// independent engines. Multi-restart fits parallelize internally over
// independent runs and do not change this contract.
package clustergo
