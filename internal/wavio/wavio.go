// Package wavio reads and writes PCM WAV files as normalized float32 samples.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-cable/internal/engine"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

var (
	// ErrInvalidWAV indicates the input is not a readable WAV file.
	ErrInvalidWAV = errors.New("invalid WAV file")

	// ErrUnsupported indicates a WAV encoding or target format this package
	// does not handle.
	ErrUnsupported = errors.New("unsupported WAV format")
)

// Clip is decoded audio: interleaved samples normalized to [-1, 1].
type Clip struct {
	SampleRate uint32
	Channels   uint16
	Format     engine.Format // integer format of the source file
	Samples    []float32
}

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / int(c.Channels)
}

// FormatForBitDepth maps a PCM bit depth to the matching integer format.
func FormatForBitDepth(bits int) (engine.Format, error) {
	switch bits {
	case 16:
		return engine.S16LE, nil
	case 24:
		return engine.S24LE, nil
	case 32:
		return engine.S32LE, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupported, bits)
	}
}

// Read decodes the WAV file at path.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a complete 16, 24 or 32-bit PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format tag %d", ErrUnsupported, decoder.WavAudioFormat)
	}

	format, err := FormatForBitDepth(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	scale := format.Scale()
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}

	return &Clip{
		SampleRate: decoder.SampleRate,
		Channels:   decoder.NumChans,
		Format:     format,
		Samples:    samples,
	}, nil
}

// Write encodes clip as a PCM WAV file in the given integer format.
func Write(path string, clip *Clip, format engine.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, clip, format)
}

// Encode writes clip to w using the codec's quantization for format.
// F32LE is rejected: the encoder writes integer PCM only.
func Encode(w io.WriteSeeker, clip *Clip, format engine.Format) error {
	if !format.IsInteger() {
		return fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	if clip.Channels == 0 || clip.SampleRate == 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupported, clip.SampleRate, clip.Channels)
	}

	data := make([]int, len(clip.Samples))
	for i, s := range clip.Samples {
		data[i] = int(engine.Quantize(s, format))
	}

	encoder := wav.NewEncoder(w, int(clip.SampleRate), format.BitDepth(), int(clip.Channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(clip.Channels),
			SampleRate:  int(clip.SampleRate),
		},
		Data:           data,
		SourceBitDepth: format.BitDepth(),
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return encoder.Close()
}
