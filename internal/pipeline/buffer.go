package pipeline

import (
	"sync/atomic"
)

// RingBuffer is a fixed-capacity, lock-free single-producer/single-consumer
// circular buffer.
//
// Both cursors increase monotonically and are never wrapped themselves; only
// the storage index (cursor & mask) wraps. Exactly one goroutine may call
// Write and exactly one goroutine may call Read at any time. Go's sync/atomic
// operations are sequentially consistent, which covers the acquire/release
// pairing the protocol needs: the writer publishes writePos after copying
// data in, the reader publishes readPos after copying data out.
//
// Thread assignment:
//   - Write, FreeSpace: producer only
//   - Read, Available: consumer only
//   - Clear: consumer, with no writer racing past the snapshot it takes
type RingBuffer[T any] struct {
	writePos atomic.Uint64
	_pad1    [cacheLinePad]byte
	readPos  atomic.Uint64
	_pad2    [cacheLinePad]byte

	data []T
	mask uint64
}

// NewRingBuffer creates a ring buffer whose capacity is the smallest power
// of two greater than or equal to capacity. A capacity below 1 yields a
// single-slot buffer.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	size := NextPowerOfTwo(capacity)
	return &RingBuffer[T]{
		data: make([]T, size),
		mask: uint64(size - 1),
	}
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n < 1).
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// Write copies min(len(samples), FreeSpace()) samples into the buffer and
// returns how many were stored. Samples that do not fit are dropped; the
// buffer never blocks and never grows.
func (b *RingBuffer[T]) Write(samples []T) int {
	w := b.writePos.Load()
	r := b.readPos.Load()

	free := uint64(len(b.data)) - (w - r)
	n := uint64(len(samples))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	pos := w & b.mask
	// One or two segments depending on wrap-around
	first := uint64(len(b.data)) - pos
	if first >= n {
		copy(b.data[pos:pos+n], samples[:n])
	} else {
		copy(b.data[pos:], samples[:first])
		copy(b.data[:n-first], samples[first:n])
	}

	b.writePos.Store(w + n)
	return int(n)
}

// Read copies up to len(output) buffered samples into output, oldest first,
// and returns the count. A short read means the buffer was starved; it is
// not an error.
func (b *RingBuffer[T]) Read(output []T) int {
	r := b.readPos.Load()
	w := b.writePos.Load()

	available := w - r
	n := uint64(len(output))
	if n > available {
		n = available
	}
	if n == 0 {
		return 0
	}

	pos := r & b.mask
	first := uint64(len(b.data)) - pos
	if first >= n {
		copy(output[:n], b.data[pos:pos+n])
	} else {
		copy(output[:first], b.data[pos:])
		copy(output[first:n], b.data[:n-first])
	}

	b.readPos.Store(r + n)
	return int(n)
}

// Available returns the number of samples ready to be read.
func (b *RingBuffer[T]) Available() int {
	r := b.readPos.Load()
	w := b.writePos.Load()
	return int(w - r)
}

// FreeSpace returns the number of samples that can be written without
// truncation.
func (b *RingBuffer[T]) FreeSpace() int {
	w := b.writePos.Load()
	r := b.readPos.Load()
	return len(b.data) - int(w-r)
}

// Capacity returns the actual (power of two) capacity.
func (b *RingBuffer[T]) Capacity() int {
	return len(b.data)
}

// Clear discards all unread samples by moving the read cursor to the
// current write cursor.
func (b *RingBuffer[T]) Clear() {
	b.readPos.Store(b.writePos.Load())
}
