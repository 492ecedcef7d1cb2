// Package testutil provides reusable test helpers for audio cable tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Round-trip tolerances per encoded format.
const (
	ToleranceF32LE = 1e-4
	ToleranceS16LE = 3e-4
	ToleranceS24LE = 1e-4
	ToleranceS32LE = 1e-4
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float32, minVal, maxVal float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertSamplesInDelta verifies element-wise closeness of two equal-length slices.
func AssertSamplesInDelta(t *testing.T, expected, actual []float32, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], delta,
			"sample %d: expected %f, got %f", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// Sine generates n samples of a sine at freq Hz and the given amplitude.
func Sine(n int, freq, sampleRate, amplitude float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

// Ramp generates n samples evenly spaced over [-1, 1].
func Ramp(n int) []float32 {
	out := make([]float32, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = float32(-1 + 2*float64(i)/float64(n-1))
	}
	return out
}
