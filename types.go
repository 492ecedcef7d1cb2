package cable

import (
	"fmt"

	"github.com/tphakala/go-audio-cable/internal/engine"
	"github.com/tphakala/go-audio-cable/internal/pipeline"
)

// RingBuffer is a fixed-capacity, lock-free single-producer/single-consumer
// circular buffer with a power-of-two capacity.
type RingBuffer[T any] = pipeline.RingBuffer[T]

// NewRingBuffer creates a ring buffer holding at least capacity samples.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	return pipeline.NewRingBuffer[T](capacity)
}

// TripleRingBuffer stages samples through input, resample and output ring
// buffers. See pipeline.TripleRingBuffer for the staging rules.
type TripleRingBuffer = pipeline.TripleRingBuffer

// BufferStats is a six-field snapshot of a TripleRingBuffer.
type BufferStats = pipeline.BufferStats

// Transform is the step between the input and the resample stage.
type Transform = pipeline.Transform

// TripleOption configures a TripleRingBuffer.
type TripleOption = pipeline.Option

// NewTripleRingBuffer creates a triple buffer with stages of the given size.
func NewTripleRingBuffer(size int, opts ...TripleOption) *TripleRingBuffer {
	return pipeline.NewTripleRingBuffer(size, opts...)
}

// WithTransform installs t between the input and the resample stage.
func WithTransform(t Transform) TripleOption {
	return pipeline.WithTransform(t)
}

// AudioFormat is an encoded little-endian PCM sample format.
type AudioFormat = engine.Format

// Supported formats.
const (
	F32LE = engine.F32LE
	S16LE = engine.S16LE
	S24LE = engine.S24LE
	S32LE = engine.S32LE
)

// ParseFormat parses f32, s16, s24 or s32 (any case, optional "le" suffix).
func ParseFormat(s string) (AudioFormat, error) {
	return engine.ParseFormat(s)
}

// AudioProcessor converts between rates (nearest/previous sample) and
// encoded formats.
type AudioProcessor = engine.Processor

// NewAudioProcessor creates a processor for the given rates, channel count
// and native format.
func NewAudioProcessor(inputRate, outputRate uint32, channels uint16, format AudioFormat) (*AudioProcessor, error) {
	p, err := engine.NewProcessor(inputRate, outputRate, channels, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudio, err)
	}
	return p, nil
}

// Resampler is the standalone linear-interpolation rate converter.
type Resampler = engine.LinearResampler

// NewResampler creates a linear resampler.
func NewResampler(inputRate, outputRate uint32, channels uint16) (*Resampler, error) {
	r, err := engine.NewLinearResampler(inputRate, outputRate, channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudio, err)
	}
	return r, nil
}

// Levels holds the peak and RMS level of a sample block.
type Levels = engine.Levels

// MeasureLevels returns the peak and RMS of samples.
func MeasureLevels(samples []float32) Levels {
	return engine.Measure(samples)
}

// EncodeSamples encodes samples as format.
func EncodeSamples(samples []float32, format AudioFormat) []byte {
	return engine.Encode(samples, format)
}

// DecodeSamples decodes little-endian PCM data encoded as format.
// Trailing partial samples are ignored.
func DecodeSamples(data []byte, format AudioFormat) []float32 {
	return engine.Decode(data, format)
}

// QuantizeSample returns the integer an integer format stores for x.
func QuantizeSample(x float32, format AudioFormat) int32 {
	return engine.Quantize(x, format)
}
