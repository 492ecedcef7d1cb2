package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-cable/internal/testutil"
)

func TestNewProcessor_Validation(t *testing.T) {
	_, err := NewProcessor(0, 48000, 2, F32LE)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewProcessor(48000, 0, 2, F32LE)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewProcessor(48000, 48000, 0, F32LE)
	require.ErrorIs(t, err, ErrInvalidChannels)

	_, err = NewProcessor(48000, 48000, 2, Format(12))
	require.ErrorIs(t, err, ErrUnknownFormat)

	p, err := NewProcessor(44100, 48000, 2, S16LE)
	require.NoError(t, err)
	assert.InDelta(t, 48000.0/44100.0, p.ResampleFactor(), 1e-12)
	assert.True(t, p.NeedsResampling())
	assert.Equal(t, uint32(44100), p.InputRate())
	assert.Equal(t, uint32(48000), p.OutputRate())
	assert.Equal(t, uint16(2), p.Channels())
	assert.Equal(t, S16LE, p.Format())
}

func TestProcessor_PassthroughIsExactCopy(t *testing.T) {
	p, err := NewProcessor(48000, 48000, 2, F32LE)
	require.NoError(t, err)
	assert.False(t, p.NeedsResampling())

	input := testutil.Sine(100, 997, 48000, 0.7)

	t.Run("output larger", func(t *testing.T) {
		output := make([]float32, 150)
		n := p.Process(input, output)
		require.Equal(t, 100, n)
		assert.Equal(t, input, output[:n])
		assert.Equal(t, make([]float32, 50), output[n:], "tail untouched")
	})

	t.Run("output smaller", func(t *testing.T) {
		output := make([]float32, 40)
		n := p.Process(input, output)
		require.Equal(t, 40, n)
		assert.Equal(t, input[:40], output)
	})
}

func TestProcessor_NearestSampleUpsample(t *testing.T) {
	p, err := NewProcessor(24000, 48000, 1, F32LE)
	require.NoError(t, err)

	output := make([]float32, 10)
	n := p.Process([]float32{1, 2, 3, 4}, output)

	require.Equal(t, 8, n)
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3, 4, 4}, output[:n])
}

func TestProcessor_NearestSampleDownsample(t *testing.T) {
	p, err := NewProcessor(48000, 12000, 1, F32LE)
	require.NoError(t, err)

	input := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8}
	output := make([]float32, 9)
	n := p.Process(input, output)

	require.Equal(t, 2, n)
	assert.Equal(t, []float32{0, 4}, output[:n])
}

func TestProcessor_ClampsToOutputLength(t *testing.T) {
	p, err := NewProcessor(48000, 96000, 2, F32LE)
	require.NoError(t, err)

	output := make([]float32, 5)
	n := p.Process([]float32{1, 2, 3, 4}, output)
	assert.Equal(t, 5, n)
	assert.Equal(t, []float32{1, 1, 2, 2, 3}, output)
	assert.Equal(t, 8, p.OutputLen(4))
}

func TestProcessor_FormatRoundTrip(t *testing.T) {
	p, err := NewProcessor(48000, 48000, 2, F32LE)
	require.NoError(t, err)

	samples := []float32{1.0, 0.0, -1.0, 0.5}
	data := p.ConvertFormat(samples, S16LE)
	assert.Len(t, data, 8)

	decoded := p.BytesToSamples(data, S16LE)
	testutil.AssertSamplesInDelta(t, samples, decoded, testutil.ToleranceS16LE)
}

func BenchmarkProcessor_Resample(b *testing.B) {
	p, err := NewProcessor(44100, 48000, 2, F32LE)
	require.NoError(b, err)
	input := testutil.Sine(4096, 1000, 44100, 0.5)
	output := make([]float32, p.OutputLen(len(input)))

	b.ReportAllocs()
	for b.Loop() {
		p.Process(input, output)
	}
}
