package cable

import "fmt"

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate and the cable default.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000
)

// stereoChannels is the channel count of interleaved stereo.
const stereoChannels = 2

// ConvertRate converts a whole block in one call with the named strategy.
// "identity" returns a copy of samples. The block is a flat sample sequence;
// use ConvertInterleaved for multi-channel frames.
func ConvertRate(samples []float32, inputRate, outputRate uint32, channels uint16, strategy string) ([]float32, error) {
	t, err := TransformByName(strategy, inputRate, outputRate, channels)
	if err != nil {
		return nil, err
	}
	if strategy == StrategyIdentity || strategy == "" {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out, nil
	}

	out := make([]float32, t.MaxOutput(len(samples)))
	n := t.Process(out, samples)
	return out[:n], nil
}

// ConvertInterleaved converts interleaved multi-channel audio one channel at
// a time so frames stay aligned. A trailing partial frame is dropped.
func ConvertInterleaved(samples []float32, inputRate, outputRate uint32, channels uint16, strategy string) ([]float32, error) {
	if channels <= 1 {
		return ConvertRate(samples, inputRate, outputRate, channels, strategy)
	}

	planes := Deinterleave(samples, int(channels))
	for i, plane := range planes {
		converted, err := ConvertRate(plane, inputRate, outputRate, 1, strategy)
		if err != nil {
			return nil, err
		}
		planes[i] = converted
	}
	return Interleave(planes), nil
}

// Deinterleave splits interleaved samples into one slice per channel.
// A trailing partial frame is dropped.
func Deinterleave(samples []float32, channels int) [][]float32 {
	if channels < 1 {
		return nil
	}
	frames := len(samples) / channels
	planes := make([][]float32, channels)
	for ch := range planes {
		plane := make([]float32, frames)
		for i := range frames {
			plane[i] = samples[i*channels+ch]
		}
		planes[ch] = plane
	}
	return planes
}

// Interleave merges per-channel slices into frames. The result has as many
// frames as the shortest channel.
func Interleave(planes [][]float32) []float32 {
	if len(planes) == 0 {
		return nil
	}
	frames := len(planes[0])
	for _, p := range planes[1:] {
		frames = min(frames, len(p))
	}

	channels := len(planes)
	out := make([]float32, frames*channels)
	for ch, p := range planes {
		for i := range frames {
			out[i*channels+ch] = p[i]
		}
	}
	return out
}

// Transcode decodes data encoded as from and re-encodes it as to.
func Transcode(data []byte, from, to AudioFormat) ([]byte, error) {
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%w: %w: %s -> %s", ErrAudio, ErrUnknownFormat, from, to)
	}
	return EncodeSamples(DecodeSamples(data, from), to), nil
}

// InterleaveStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, ...]
func InterleaveStereo(left, right []float32) []float32 {
	minLen := min(len(left), len(right))
	result := make([]float32, minLen*stereoChannels)
	for i := range minLen {
		result[i*stereoChannels] = left[i]
		result[i*stereoChannels+1] = right[i]
	}
	return result
}

// DeinterleaveStereo converts interleaved stereo to two mono channels.
// A trailing odd sample is dropped.
func DeinterleaveStereo(interleaved []float32) (left, right []float32) {
	numFrames := len(interleaved) / stereoChannels
	left = make([]float32, numFrames)
	right = make([]float32, numFrames)
	for i := range numFrames {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
