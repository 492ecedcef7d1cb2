package engine

import (
	"math"

	"github.com/tphakala/go-audio-cable/internal/simdops"
)

// Levels holds the peak and RMS level of a sample block.
type Levels struct {
	Peak float32
	RMS  float32
}

// Measure returns the absolute peak and the RMS of samples. An empty block
// measures as silence.
func Measure(samples []float32) Levels {
	if len(samples) == 0 {
		return Levels{}
	}

	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	energy := simdops.Energy(samples)
	rms := float32(math.Sqrt(float64(energy) / float64(len(samples))))

	return Levels{Peak: peak, RMS: rms}
}
