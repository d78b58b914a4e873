package clustergo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/codec"
)

func fittedEngine(t *testing.T) (*clustergo.Engine, *clustergo.PointSet) {
	t.Helper()

	points, err := clustergo.PointSetFromVectors([][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	})
	require.NoError(t, err)

	engine := clustergo.KMeans(2).RandomSeed(42).MustBuild()
	_, err = engine.Fit(context.Background(), points)
	require.NoError(t, err)

	return engine, points
}

func TestSnapshot_RoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		optFns []func(*clustergo.SnapshotOptions)
	}{
		{name: "Defaults"},
		{name: "JSON", optFns: []func(*clustergo.SnapshotOptions){
			clustergo.WithSnapshotCodec(codec.JSON{}),
		}},
		{name: "GoJSON", optFns: []func(*clustergo.SnapshotOptions){
			clustergo.WithSnapshotCodec(codec.GoJSON{}),
		}},
		{name: "LZ4", optFns: []func(*clustergo.SnapshotOptions){
			clustergo.WithSnapshotCompression(clustergo.CompressionLZ4),
		}},
		{name: "ZSTD", optFns: []func(*clustergo.SnapshotOptions){
			clustergo.WithSnapshotCompression(clustergo.CompressionZSTD),
		}},
		{name: "JSONWithZSTD", optFns: []func(*clustergo.SnapshotOptions){
			clustergo.WithSnapshotCodec(codec.JSON{}),
			clustergo.WithSnapshotCompression(clustergo.CompressionZSTD),
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			engine, points := fittedEngine(t)
			store := blobstore.NewMemoryStore()

			require.NoError(t, engine.SaveModel(ctx, store, "model", tc.optFns...))

			loaded, err := clustergo.LoadModel(ctx, store, "model")
			require.NoError(t, err)

			model := loaded.Model()
			require.NotNil(t, model)
			assert.Equal(t, engine.Model().Dim, model.Dim)
			assert.Equal(t, engine.Model().Metric, model.Metric)
			assert.Equal(t, engine.Model().Centroids, model.Centroids)

			// A loaded engine predicts exactly like the one that trained.
			want, err := engine.Predict(ctx, points)
			require.NoError(t, err)
			got, err := loaded.Predict(ctx, points)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSnapshot_SaveUnfitted(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	engine := clustergo.KMeans(2).MustBuild()
	err := engine.SaveModel(ctx, store, "model")
	assert.ErrorIs(t, err, clustergo.ErrNotFitted)
}

func TestSnapshot_LoadMissing(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := clustergo.LoadModel(ctx, store, "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestSnapshot_LoadCorrupt(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name string
		raw  []byte
	}{
		{name: "Empty", raw: []byte{}},
		{name: "BadMagic", raw: []byte("XXXXX\x00\x04json{}")},
		{name: "TruncatedHeader", raw: []byte{'C', 'G', 'K', 'M', 1, 0, 40}},
		{name: "UnknownCodec", raw: []byte{'C', 'G', 'K', 'M', 1, 0, 3, 'x', 'm', 'l', '{', '}'}},
		{name: "UnknownCompression", raw: []byte{'C', 'G', 'K', 'M', 1, 9, 4, 'j', 's', 'o', 'n', '{', '}'}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			require.NoError(t, store.Put(ctx, "model", tc.raw))

			_, err := clustergo.LoadModel(ctx, store, "model")
			assert.Error(t, err)
		})
	}
}

func TestSnapshot_LoadMalformedPayload(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	// Valid header and codec, but centroid count disagrees with k*dim.
	payload := []byte(`{"k":2,"dim":2,"metric":"SquaredL2","centroids":[1,2,3]}`)
	raw := append([]byte{'C', 'G', 'K', 'M', 1, 0, 4, 'j', 's', 'o', 'n'}, payload...)
	require.NoError(t, store.Put(ctx, "model", raw))

	_, err := clustergo.LoadModel(ctx, store, "model")
	assert.ErrorContains(t, err, "malformed snapshot")
}
