// Package engine implements the sample conversion engine: format codec,
// nearest-sample and linear-interpolation rate conversion, and level metering.
package engine

import (
	"fmt"
	"math"
)

// Processor converts sample blocks between rates using nearest/previous
// sample selection and between encoded formats. It is immutable after
// construction and safe for concurrent use.
type Processor struct {
	inputRate  uint32
	outputRate uint32
	channels   uint16
	format     Format

	// resampleFactor is outputRate / inputRate.
	resampleFactor float64
}

// NewProcessor creates a processor. Rates and channel count must be positive.
func NewProcessor(inputRate, outputRate uint32, channels uint16, format Format) (*Processor, error) {
	if inputRate == 0 || outputRate == 0 {
		return nil, fmt.Errorf("%w: input=%d, output=%d", ErrInvalidRate, inputRate, outputRate)
	}
	if channels == 0 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidChannels)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, uint8(format))
	}

	return &Processor{
		inputRate:      inputRate,
		outputRate:     outputRate,
		channels:       channels,
		format:         format,
		resampleFactor: float64(outputRate) / float64(inputRate),
	}, nil
}

// Process converts input into output and returns the number of samples
// written.
//
// Equal rates copy min(len(input), len(output)) samples verbatim. Otherwise
// floor(len(input)*factor) samples (clamped to len(output)) are produced
// with output[i] = input[floor(i/factor)].
func (p *Processor) Process(input, output []float32) int {
	if p.inputRate == p.outputRate {
		return copy(output, input)
	}

	outputLen := int(math.Floor(float64(len(input)) * p.resampleFactor))
	if outputLen > len(output) {
		outputLen = len(output)
	}

	for i := 0; i < outputLen; i++ {
		src := int(math.Floor(float64(i) / p.resampleFactor))
		if src < len(input) {
			output[i] = input[src]
		}
	}
	return outputLen
}

// OutputLen returns how many samples Process produces for n input samples
// given unlimited output space.
func (p *Processor) OutputLen(n int) int {
	if p.inputRate == p.outputRate {
		return n
	}
	return int(math.Floor(float64(n) * p.resampleFactor))
}

// ConvertFormat encodes samples as target.
func (p *Processor) ConvertFormat(input []float32, target Format) []byte {
	return Encode(input, target)
}

// BytesToSamples decodes data encoded as format.
func (p *Processor) BytesToSamples(data []byte, format Format) []float32 {
	return Decode(data, format)
}

// NeedsResampling reports whether the input and output rates differ.
func (p *Processor) NeedsResampling() bool {
	return p.inputRate != p.outputRate
}

// ResampleFactor returns outputRate / inputRate.
func (p *Processor) ResampleFactor() float64 {
	return p.resampleFactor
}

// InputRate returns the source sample rate in Hz.
func (p *Processor) InputRate() uint32 {
	return p.inputRate
}

// OutputRate returns the target sample rate in Hz.
func (p *Processor) OutputRate() uint32 {
	return p.outputRate
}

// Channels returns the interleaved channel count.
func (p *Processor) Channels() uint16 {
	return p.channels
}

// Format returns the native encoded format.
func (p *Processor) Format() Format {
	return p.format
}
