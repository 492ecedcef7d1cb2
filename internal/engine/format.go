package engine

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-cable/internal/simdops"
)

// Format is an encoded PCM sample format. All formats are little-endian.
type Format uint8

const (
	// F32LE is 4-byte IEEE-754 float. Encoding keeps the raw bits, unclamped.
	F32LE Format = iota

	// S16LE is 16-bit two's-complement, scale 32767.
	S16LE

	// S24LE is the low 3 bytes of a 32-bit two's-complement integer, scale 8388607.
	S24LE

	// S32LE is 32-bit two's-complement, scale 2147483647.
	S32LE
)

// Formats lists every supported format in declaration order.
var Formats = []Format{F32LE, S16LE, S24LE, S32LE}

var formatNames = [...]string{
	F32LE: "F32LE",
	S16LE: "S16LE",
	S24LE: "S24LE",
	S32LE: "S32LE",
}

// BytesPerSample returns the encoded width (4, 2, 3, 4), or 0 for an
// unknown format.
func (f Format) BytesPerSample() int {
	switch f {
	case F32LE, S32LE:
		return bytesPerSample32
	case S16LE:
		return bytesPerSample16
	case S24LE:
		return bytesPerSample24
	default:
		return 0
	}
}

// BitDepth returns BytesPerSample * 8.
func (f Format) BitDepth() int {
	return f.BytesPerSample() * bitsPerByte
}

// Scale returns the quantization scale. F32LE has scale 1.
func (f Format) Scale() float32 {
	switch f {
	case S16LE:
		return scaleS16
	case S24LE:
		return scaleS24
	case S32LE:
		return scaleS32
	default:
		return 1
	}
}

// IsInteger reports whether f is a fixed-point format.
func (f Format) IsInteger() bool {
	return f == S16LE || f == S24LE || f == S32LE
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	return int(f) < len(formatNames)
}

// Name returns the canonical name, e.g. "S16LE", or "" for an unknown
// format.
func (f Format) Name() string {
	if !f.Valid() {
		return ""
	}
	return formatNames[f]
}

// String returns Name, or "Format(n)" for an unknown format.
func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return f.Name()
}

// ParseFormat accepts f32, s16, s24, s32 in any case, with or without the
// "le" suffix.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "le")
	switch name {
	case "f32":
		return F32LE, nil
	case "s16":
		return S16LE, nil
	case "s24":
		return S24LE, nil
	case "s32":
		return S32LE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Set parses s into f so a *Format can back a command-line flag.
func (f *Format) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type names the flag value type.
func (f *Format) Type() string {
	return "format"
}

// clamp limits x to [-1, 1]. NaN maps to 0 so integer encodings do not
// depend on the platform's float-to-int conversion.
func clamp(x float32) float32 {
	if x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// truncate converts an already scaled sample toward zero. Scaling 1.0 by
// 2147483647 rounds to 2^31 in float32, so S32LE saturates explicitly.
func truncate(v float32, f Format) int32 {
	switch f {
	case S16LE:
		return int32(int16(v))
	case S32LE:
		if v >= s32Overflow {
			return math.MaxInt32
		}
		return int32(v)
	default:
		return int32(v)
	}
}

// Quantize returns the integer an integer format stores for x: clamp to
// [-1, 1], multiply by the scale, truncate. For F32LE it returns the raw
// IEEE-754 bits.
func Quantize(x float32, f Format) int32 {
	if f == F32LE {
		return int32(math.Float32bits(x))
	}
	return truncate(clamp(x)*f.Scale(), f)
}

// AppendEncoded appends the encoding of src to dst and returns the extended
// slice. Integer formats are clamped and scaled in fixed-size blocks.
func AppendEncoded(dst []byte, src []float32, f Format) []byte {
	switch f {
	case F32LE:
		for _, s := range src {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
		}
		return dst
	case S16LE, S24LE, S32LE:
	default:
		return dst
	}

	ops := simdops.For[float32]()
	scale := f.Scale()

	var clamped, scaled [encodeBlock]float32
	for len(src) > 0 {
		n := min(len(src), encodeBlock)
		for i, s := range src[:n] {
			clamped[i] = clamp(s)
		}
		ops.Scale(scaled[:n], clamped[:n], scale)

		for _, v := range scaled[:n] {
			q := truncate(v, f)
			switch f {
			case S16LE:
				dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(q)))
			case S24LE:
				u := uint32(q)
				dst = append(dst, byte(u), byte(u>>8), byte(u>>16))
			case S32LE:
				dst = binary.LittleEndian.AppendUint32(dst, uint32(q))
			}
		}
		src = src[n:]
	}
	return dst
}

// Encode returns the encoding of src in a new slice.
func Encode(src []float32, f Format) []byte {
	return AppendEncoded(make([]byte, 0, len(src)*f.BytesPerSample()), src, f)
}

// DecodeInto decodes whole samples from src into dst and returns the count,
// min(len(dst), len(src)/BytesPerSample). Trailing partial bytes are ignored.
func DecodeInto(dst []float32, src []byte, f Format) int {
	width := f.BytesPerSample()
	if width == 0 {
		return 0
	}
	n := min(len(dst), len(src)/width)

	switch f {
	case F32LE:
		for i := range n {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*width:]))
		}
	case S16LE:
		for i := range n {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(src[i*width:]))) / scaleS16
		}
	case S24LE:
		for i := range n {
			b := src[i*width:]
			// Shift the third byte into the sign position, then back.
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			dst[i] = float32(v) / scaleS24
		}
	case S32LE:
		for i := range n {
			dst[i] = float32(int32(binary.LittleEndian.Uint32(src[i*width:]))) / scaleS32
		}
	}
	return n
}

// Decode decodes src into a new slice of len(src)/BytesPerSample samples.
func Decode(src []byte, f Format) []float32 {
	width := f.BytesPerSample()
	if width == 0 {
		return []float32{}
	}
	dst := make([]float32, len(src)/width)
	DecodeInto(dst, src, f)
	return dst
}
