package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-cable/internal/testutil"
)

func TestNewLinearResampler_Validation(t *testing.T) {
	_, err := NewLinearResampler(0, 48000, 2)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewLinearResampler(48000, 48000, 0)
	assert.ErrorIs(t, err, ErrInvalidChannels)
}

func TestLinearResampler_DoublesLength(t *testing.T) {
	r, err := NewLinearResampler(48000, 96000, 2)
	require.NoError(t, err)

	for _, n := range []int{1, 2, 7, 480, 1024} {
		input := testutil.Sine(n, 1000, 48000, 1.0)
		output := r.Process(input)

		require.Len(t, output, 2*n, "input length %d", n)
		testutil.AssertNoNaNOrInf(t, output)
		testutil.AssertAllInRange(t, output, -1, 1)
	}
}

func TestLinearResampler_Interpolates(t *testing.T) {
	r, err := NewLinearResampler(1000, 2000, 1)
	require.NoError(t, err)

	out := r.Process([]float32{0, 1, 0})
	// The last sample has no right neighbour and is held.
	testutil.AssertSamplesInDelta(t, []float32{0, 0.5, 1, 0.5, 0, 0}, out, 1e-6)
}

func TestLinearResampler_Downsample(t *testing.T) {
	r, err := NewLinearResampler(4000, 3000, 1)
	require.NoError(t, err)

	out := r.Process([]float32{0, 1, 2, 3, 4, 5, 6, 7})
	testutil.AssertSamplesInDelta(t,
		[]float32{0, 4.0 / 3, 8.0 / 3, 4, 16.0 / 3, 20.0 / 3}, out, 1e-5)
}

func TestLinearResampler_EqualRatesCopy(t *testing.T) {
	r, err := NewLinearResampler(44100, 44100, 2)
	require.NoError(t, err)

	input := []float32{0.1, -0.2, 0.3}
	out := r.Process(input)
	assert.Equal(t, input, out)

	out[0] = 9
	assert.InDelta(t, 0.1, input[0], 1e-9, "result must not alias input")
}

func TestLinearResampler_ProcessIntoClamps(t *testing.T) {
	r, err := NewLinearResampler(48000, 96000, 1)
	require.NoError(t, err)

	dst := make([]float32, 3)
	assert.Equal(t, 3, r.ProcessInto(dst, []float32{0, 1, 2, 3}))
	testutil.AssertSamplesInDelta(t, []float32{0, 0.5, 1}, dst, 1e-6)
	assert.Equal(t, 8, r.OutputLen(4))
	assert.InDelta(t, 2.0, r.Ratio(), 1e-12)
}

func TestResamplingPoliciesDiffer(t *testing.T) {
	nearest, err := NewProcessor(1000, 2000, 1, F32LE)
	require.NoError(t, err)
	linear, err := NewLinearResampler(1000, 2000, 1)
	require.NoError(t, err)

	input := []float32{0, 1}
	a := make([]float32, 4)
	nearest.Process(input, a)
	b := linear.Process(input)

	assert.Equal(t, []float32{0, 0, 1, 1}, a)
	assert.Equal(t, []float32{0, 0.5, 1, 1}, b)
}

func TestMeasure(t *testing.T) {
	assert.Equal(t, Levels{}, Measure(nil))

	l := Measure([]float32{0.5, -0.75, 0.25, 0})
	assert.InDelta(t, 0.75, l.Peak, 1e-7)
	// sqrt((0.25+0.5625+0.0625)/4)
	assert.InDelta(t, 0.4677071733, l.RMS, 1e-6)

	sine := testutil.Sine(48000, 1000, 48000, 1)
	l = Measure(sine)
	assert.InDelta(t, 1.0, l.Peak, 1e-3)
	assert.InDelta(t, 0.70710678, l.RMS, 1e-3)
}
