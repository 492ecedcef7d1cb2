// Package pipeline implements the real-time sample transport: a lock-free
// SPSC ring buffer and a three-stage buffer pipeline built from it.
package pipeline

// Transform is the pluggable step invoked between the input and the
// resample stage of a TripleRingBuffer.
type Transform interface {
	// Process writes the transformed form of src into dst and returns the
	// number of samples produced. It must not allocate.
	Process(dst, src []float32) int

	// MaxOutput returns an upper bound of samples produced for n input samples.
	MaxOutput(n int) int

	// Name identifies the transform in logs and statistics.
	Name() string
}

// Passthrough is the identity Transform.
type Passthrough struct{}

// Process copies src into dst.
func (Passthrough) Process(dst, src []float32) int {
	return copy(dst, src)
}

// MaxOutput returns n.
func (Passthrough) MaxOutput(n int) int {
	return n
}

// Name returns "identity".
func (Passthrough) Name() string {
	return TransformIdentity
}

// BufferStats is a snapshot of all three stages taken at call time. The
// snapshot is not atomic across stages.
type BufferStats struct {
	InputAvailable    int
	InputFree         int
	ResampleAvailable int
	ResampleFree      int
	OutputAvailable   int
	OutputFree        int
}

// Option configures a TripleRingBuffer.
type Option func(*TripleRingBuffer)

// WithTransform installs t between the input and the resample stage.
func WithTransform(t Transform) Option {
	return func(tb *TripleRingBuffer) {
		if t != nil {
			tb.transform = t
		}
	}
}

// TripleRingBuffer stages samples through input, resample and output ring
// buffers. The stages share no storage; each keeps its own SPSC discipline.
// Process is not safe for concurrent callers; wrap the value in a mutex when
// it is shared.
type TripleRingBuffer struct {
	input    *RingBuffer[float32]
	resample *RingBuffer[float32]
	output   *RingBuffer[float32]

	transform Transform
	dropped   uint64

	// Pre-allocated so Process and Forward never allocate.
	drain     []float32
	converted []float32
	forward   []float32
}

// NewTripleRingBuffer creates three stages of the given size (rounded up to
// a power of two). The default transform is Passthrough.
func NewTripleRingBuffer(size int, opts ...Option) *TripleRingBuffer {
	tb := &TripleRingBuffer{
		input:     NewRingBuffer[float32](size),
		resample:  NewRingBuffer[float32](size),
		output:    NewRingBuffer[float32](size),
		transform: Passthrough{},
	}
	for _, opt := range opts {
		opt(tb)
	}

	capacity := tb.input.Capacity()
	tb.drain = make([]float32, capacity)
	tb.forward = make([]float32, capacity)
	if _, ok := tb.transform.(Passthrough); !ok {
		tb.converted = make([]float32, tb.transform.MaxOutput(capacity))
	}
	return tb
}

// Process writes input into the input stage, moves what was just written
// through the transform into the resample stage, then drains the output
// stage into output. It returns the number of samples copied to output.
//
// Nothing in Process fills the output stage, so a call usually returns 0
// until Forward (or another producer) moves resample-stage samples there.
func (tb *TripleRingBuffer) Process(input, output []float32) int {
	written := tb.input.Write(input)
	tb.dropped += uint64(len(input) - written)

	if written > 0 {
		n := tb.input.Read(tb.drain[:written])
		staged := tb.drain[:n]
		if tb.converted != nil {
			m := tb.transform.Process(tb.converted, staged)
			staged = tb.converted[:m]
		}
		tb.dropped += uint64(len(staged) - tb.resample.Write(staged))
	}

	return tb.output.Read(output)
}

// Forward moves up to limit samples (all available when limit <= 0) from the
// resample stage into the output stage and returns the count moved. Samples
// that do not fit the output stage stay in the resample stage.
func (tb *TripleRingBuffer) Forward(limit int) int {
	n := tb.resample.Available()
	if free := tb.output.FreeSpace(); n > free {
		n = free
	}
	if limit > 0 && n > limit {
		n = limit
	}
	if n > len(tb.forward) {
		n = len(tb.forward)
	}
	if n == 0 {
		return 0
	}

	n = tb.resample.Read(tb.forward[:n])
	return tb.output.Write(tb.forward[:n])
}

// ClearAll clears each stage independently.
func (tb *TripleRingBuffer) ClearAll() {
	tb.input.Clear()
	tb.resample.Clear()
	tb.output.Clear()
}

// Stats returns the six-field buffer snapshot.
func (tb *TripleRingBuffer) Stats() BufferStats {
	return BufferStats{
		InputAvailable:    tb.input.Available(),
		InputFree:         tb.input.FreeSpace(),
		ResampleAvailable: tb.resample.Available(),
		ResampleFree:      tb.resample.FreeSpace(),
		OutputAvailable:   tb.output.Available(),
		OutputFree:        tb.output.FreeSpace(),
	}
}

// Dropped returns the total number of samples discarded because the input
// or the resample stage was full.
func (tb *TripleRingBuffer) Dropped() uint64 {
	return tb.dropped
}

// Capacity returns the per-stage capacity.
func (tb *TripleRingBuffer) Capacity() int {
	return tb.input.Capacity()
}

// TransformName returns the name of the installed transform.
func (tb *TripleRingBuffer) TransformName() string {
	return tb.transform.Name()
}
