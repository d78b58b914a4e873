package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBlobs(t *testing.T) {
	blobs, err := MakeBlobs(100, 3, 4, 1.0, 42)
	require.NoError(t, err)

	assert.Equal(t, 100, blobs.Points.Len())
	assert.Equal(t, 3, blobs.Points.Dim())
	assert.Len(t, blobs.Labels, 100)
	assert.Len(t, blobs.Centers, 4*3)

	for _, l := range blobs.Labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 4)
	}
}

func TestMakeBlobs_EvenSplit(t *testing.T) {
	// 10 points across 3 centers: remainder goes to the first one.
	blobs, err := MakeBlobs(10, 2, 3, 1.0, 1)
	require.NoError(t, err)

	counts := make([]int, 3)
	for _, l := range blobs.Labels {
		counts[l]++
	}
	assert.Equal(t, []int{4, 3, 3}, counts)
}

func TestMakeBlobs_Deterministic(t *testing.T) {
	a, err := MakeBlobs(50, 2, 3, 1.0, 7)
	require.NoError(t, err)
	b, err := MakeBlobs(50, 2, 3, 1.0, 7)
	require.NoError(t, err)

	assert.Equal(t, a.Points.Data(), b.Points.Data())
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Centers, b.Centers)

	c, err := MakeBlobs(50, 2, 3, 1.0, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Points.Data(), c.Points.Data())
}

func TestMakeBlobs_CenterBox(t *testing.T) {
	blobs, err := MakeBlobs(30, 2, 3, 0, 3, WithCenterBox(-1, 1))
	require.NoError(t, err)

	// With zero stddev every point equals its center, which must lie
	// inside the box.
	for i := 0; i < blobs.Points.Len(); i++ {
		for _, v := range blobs.Points.At(i) {
			assert.GreaterOrEqual(t, v, float32(-1))
			assert.LessOrEqual(t, v, float32(1))
		}
	}
}

func TestMakeBlobs_ExplicitCenters(t *testing.T) {
	centers := []float32{0, 0, 10, 10}
	blobs, err := MakeBlobs(10, 2, 2, 0, 3, WithCenters(centers))
	require.NoError(t, err)
	assert.Equal(t, centers, blobs.Centers)

	for i := 0; i < blobs.Points.Len(); i++ {
		j := blobs.Labels[i]
		assert.Equal(t, centers[j*2:(j+1)*2], blobs.Points.At(i))
	}
}

func TestMakeBlobs_Validation(t *testing.T) {
	testCases := []struct {
		name string
		fn   func() error
	}{
		{name: "ZeroN", fn: func() error { _, err := MakeBlobs(0, 2, 1, 1, 0); return err }},
		{name: "ZeroDim", fn: func() error { _, err := MakeBlobs(10, 0, 1, 1, 0); return err }},
		{name: "ZeroCenters", fn: func() error { _, err := MakeBlobs(10, 2, 0, 1, 0); return err }},
		{name: "MoreCentersThanPoints", fn: func() error { _, err := MakeBlobs(2, 2, 3, 1, 0); return err }},
		{name: "NegativeStddev", fn: func() error { _, err := MakeBlobs(10, 2, 2, -1, 0); return err }},
		{name: "BadCenterBox", fn: func() error { _, err := MakeBlobs(10, 2, 2, 1, 0, WithCenterBox(1, 1)); return err }},
		{name: "BadCentersLength", fn: func() error {
			_, err := MakeBlobs(10, 2, 2, 1, 0, WithCenters([]float32{1, 2, 3}))
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.fn())
		})
	}
}
