package clustergo_test

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/blobstore"
)

func ExampleKMeans() {
	ctx := context.Background()

	points, err := clustergo.PointSetFromVectors([][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	})
	if err != nil {
		log.Fatal(err)
	}

	engine, err := clustergo.KMeans(2).
		SquaredL2().
		RandomSeed(42).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Fit(ctx, points)
	if err != nil {
		log.Fatal(err)
	}

	sizes := result.ClusterSizes()
	sort.Ints(sizes)

	fmt.Println("clusters:", result.NumClusters())
	fmt.Println("converged:", result.Converged)
	fmt.Println("sizes:", sizes)
	// Output:
	// clusters: 2
	// converged: true
	// sizes: [3 3]
}

func ExampleEngine_Predict() {
	ctx := context.Background()

	points, err := clustergo.PointSetFromVectors([][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	})
	if err != nil {
		log.Fatal(err)
	}

	engine := clustergo.KMeans(2).RandomSeed(42).MustBuild()
	if _, err := engine.Fit(ctx, points); err != nil {
		log.Fatal(err)
	}

	query, err := clustergo.PointSetFromVectors([][]float32{{0.5, 0.5}, {10.5, 10.5}})
	if err != nil {
		log.Fatal(err)
	}

	labels, err := engine.Predict(ctx, query)
	if err != nil {
		log.Fatal(err)
	}

	// The two queries sit in different blobs.
	fmt.Println("distinct:", labels[0] != labels[1])
	// Output:
	// distinct: true
}

func ExampleEngine_SaveModel() {
	ctx := context.Background()

	points, err := clustergo.PointSetFromVectors([][]float32{
		{0, 0}, {0, 1}, {10, 10}, {10, 11},
	})
	if err != nil {
		log.Fatal(err)
	}

	engine := clustergo.KMeans(2).RandomSeed(7).MustBuild()
	if _, err := engine.Fit(ctx, points); err != nil {
		log.Fatal(err)
	}

	store := blobstore.NewMemoryStore()
	if err := engine.SaveModel(ctx, store, "blobs.model",
		clustergo.WithSnapshotCompression(clustergo.CompressionZSTD),
	); err != nil {
		log.Fatal(err)
	}

	loaded, err := clustergo.LoadModel(ctx, store, "blobs.model")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("clusters:", loaded.Model().NumClusters())
	// Output:
	// clusters: 2
}
