// Package kmeans implements Lloyd's algorithm over flattened float32
// vectors.
//
// It is the training core behind the public Engine. Centroids are
// initialized by sampling distinct data points without replacement,
// refined by alternating assignment and mean-update steps, and checked
// for element-wise convergence against a combined absolute/relative
// tolerance.
package kmeans
