package cable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", StrategyIdentity},
		{StrategyIdentity, StrategyIdentity},
		{StrategyNearest, StrategyNearest},
		{StrategyLinear, StrategyLinear},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			tr, err := TransformByName(tt.name, 48000, 96000, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
		})
	}
}

func TestTransformByName_Errors(t *testing.T) {
	_, err := TransformByName("sinc", 48000, 48000, 2)
	require.ErrorIs(t, err, ErrInvalidConfig)

	tr, err := TransformByName(StrategyLinear, 0, 48000, 2)
	require.ErrorIs(t, err, ErrAudio)
	assert.Nil(t, tr, "no typed-nil transform on error")
}

func TestTransforms_InTripleBuffer(t *testing.T) {
	linear, err := NewLinearTransform(1000, 2000, 1)
	require.NoError(t, err)

	tb := NewTripleRingBuffer(16, WithTransform(linear))
	tb.Process([]float32{0, 1, 0}, nil)
	require.Equal(t, 6, tb.Forward(0))

	out := make([]float32, 16)
	n := tb.Process(nil, out)
	assert.InDeltaSlice(t, []float32{0, 0.5, 1, 0.5, 0, 0}, out[:n], 1e-6)
}

func TestNearestTransform_MaxOutput(t *testing.T) {
	nearest, err := NewNearestTransform(48000, 12000, 1)
	require.NoError(t, err)

	assert.Equal(t, 4, nearest.MaxOutput(16))
	dst := make([]float32, nearest.MaxOutput(8))
	n := nearest.Process(dst, []float32{0, 1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, []float32{0, 4}, dst[:n])
}
