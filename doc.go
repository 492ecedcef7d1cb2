// Package cable implements a virtual audio cable in pure Go: a real-time
// sample transport between one producer and one consumer, plus the sample
// rate and sample format conversion around it.
//
// # Components
//
//   - RingBuffer: fixed-capacity, power-of-two, lock-free SPSC ring buffer
//   - TripleRingBuffer: input, resample and output stages built from three
//     ring buffers, with a pluggable Transform between input and resample
//   - AudioProcessor: pass-through or nearest-sample rate conversion and
//     F32LE/S16LE/S24LE/S32LE encoding
//   - Resampler: linear-interpolation rate conversion
//   - Cable: session object with start/stop, atomic statistics, a stats
//     monitor and delegation to a platform.Service
//
// # Quick Start
//
//	c, err := cable.New(cable.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := c.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close(ctx)
//
//	n, err := c.ProcessAudio(input, output)
//
// # Buffering
//
// Ring buffer writes never block and never grow storage: samples beyond the
// free space are dropped and the returned count tells the caller how many
// were stored. Reads return fewer samples than requested when the buffer is
// starved. Neither case is an error.
//
// TripleRingBuffer.Process stages input into the resample stage but only
// drains the output stage, which it never fills. Samples reach the output
// stage through Forward, or through ProcessAudio when Config.ForwardOutput
// is set.
//
// # Resampling Strategies
//
// Two rate conversion policies coexist and are selected by name:
// "nearest" (AudioProcessor, output[i] = input[floor(i/factor)]) and
// "linear" (Resampler, interpolation between neighbours). "identity" keeps
// samples unchanged. Neither is a band-limited resampler.
//
// # Thread Safety
//
// RingBuffer supports exactly one writer and one reader goroutine.
// TripleRingBuffer is not safe for concurrent callers; Cable serializes
// access to its buffers with a mutex.
package cable
