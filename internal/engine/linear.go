package engine

import (
	"fmt"
	"math"
)

// LinearResampler converts sample rate by linear interpolation between the
// two nearest source samples. It never extrapolates past the end of its
// input. Like Processor, it treats the block as a flat sample sequence.
type LinearResampler struct {
	inputRate  uint32
	outputRate uint32
	channels   uint16
	ratio      float64
}

// NewLinearResampler creates a resampler. Rates and channel count must be
// positive.
func NewLinearResampler(inputRate, outputRate uint32, channels uint16) (*LinearResampler, error) {
	if inputRate == 0 || outputRate == 0 {
		return nil, fmt.Errorf("%w: input=%d, output=%d", ErrInvalidRate, inputRate, outputRate)
	}
	if channels == 0 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidChannels)
	}

	return &LinearResampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(outputRate) / float64(inputRate),
	}, nil
}

// Process returns floor(len(input)*ratio) resampled samples in a new slice.
// Equal rates return a copy of input.
func (r *LinearResampler) Process(input []float32) []float32 {
	out := make([]float32, r.OutputLen(len(input)))
	r.ProcessInto(out, input)
	return out
}

// ProcessInto writes up to len(dst) resampled samples and returns the count.
func (r *LinearResampler) ProcessInto(dst, input []float32) int {
	if r.inputRate == r.outputRate {
		return copy(dst, input)
	}

	n := r.OutputLen(len(input))
	if n > len(dst) {
		n = len(dst)
	}

	for i := 0; i < n; i++ {
		pos := float64(i) / r.ratio
		src := int(math.Floor(pos))
		frac := float32(pos - float64(src))

		if src+1 < len(input) {
			dst[i] = input[src] + (input[src+1]-input[src])*frac
		} else if src < len(input) {
			dst[i] = input[src]
		}
	}
	return n
}

// OutputLen returns the number of samples produced for n input samples.
func (r *LinearResampler) OutputLen(n int) int {
	if r.inputRate == r.outputRate {
		return n
	}
	return int(math.Floor(float64(n) * r.ratio))
}

// Ratio returns outputRate / inputRate.
func (r *LinearResampler) Ratio() float64 {
	return r.ratio
}

// Channels returns the interleaved channel count.
func (r *LinearResampler) Channels() uint16 {
	return r.channels
}
