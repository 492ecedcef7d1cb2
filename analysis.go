package cable

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-audio-cable/internal/simdops"
)

// Analysis summarizes a block of samples. It is meant for offline
// inspection, not for the audio path.
type Analysis struct {
	Samples int
	Peak    float64
	RMS     float64
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64

	// Clipped counts samples outside [-1, 1].
	Clipped int

	// PeakDBFS is 20*log10(Peak); -Inf for silence.
	PeakDBFS float64
}

// Analyze computes level and distribution statistics of samples.
func Analyze(samples []float32) Analysis {
	a := Analysis{Samples: len(samples), PeakDBFS: math.Inf(-1)}
	if len(samples) == 0 {
		return a
	}

	x := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = float64(s)
		if s > 1 || s < -1 {
			a.Clipped++
		}
	}

	a.Min = floats.Min(x)
	a.Max = floats.Max(x)
	a.Peak = math.Max(math.Abs(a.Min), math.Abs(a.Max))
	a.Mean, a.StdDev = stat.MeanStdDev(x, nil)
	a.RMS = math.Sqrt(simdops.Energy(x) / float64(len(x)))
	if a.Peak > 0 {
		a.PeakDBFS = 20 * math.Log10(a.Peak)
	}
	if len(x) == 1 {
		a.StdDev = 0
	}
	return a
}
