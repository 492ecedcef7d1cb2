package cable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-cable/internal/testutil"
)

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil)
	assert.Zero(t, a.Samples)
	assert.True(t, math.IsInf(a.PeakDBFS, -1))
}

func TestAnalyze_Silence(t *testing.T) {
	a := Analyze(make([]float32, 64))
	assert.Equal(t, 64, a.Samples)
	assert.Zero(t, a.Peak)
	assert.Zero(t, a.RMS)
	assert.True(t, math.IsInf(a.PeakDBFS, -1))
}

func TestAnalyze_Values(t *testing.T) {
	a := Analyze([]float32{0.5, -1.5, 0.25, 1})

	assert.InDelta(t, 1.5, a.Peak, 1e-9)
	assert.InDelta(t, -1.5, a.Min, 1e-9)
	assert.InDelta(t, 1.0, a.Max, 1e-9)
	assert.InDelta(t, 0.0625, a.Mean, 1e-9)
	assert.Equal(t, 1, a.Clipped)
	assert.InDelta(t, math.Sqrt((0.25+2.25+0.0625+1)/4), a.RMS, 1e-9)
	assert.InDelta(t, 20*math.Log10(1.5), a.PeakDBFS, 1e-9)
}

func TestAnalyze_SingleSample(t *testing.T) {
	a := Analyze([]float32{0.5})
	assert.Zero(t, a.StdDev)
	assert.InDelta(t, 0.5, a.RMS, 1e-9)
}

func TestAnalyze_Sine(t *testing.T) {
	a := Analyze(testutil.Sine(48000, 1000, 48000, 0.5))

	assert.InDelta(t, 0.5, a.Peak, 1e-3)
	assert.InDelta(t, 0.5/math.Sqrt2, a.RMS, 1e-3)
	assert.InDelta(t, 0, a.Mean, 1e-3)
	assert.Zero(t, a.Clipped)
}
