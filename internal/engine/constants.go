package engine

// Encoded sample widths
const (
	bytesPerSample16 = 2
	bytesPerSample24 = 3
	bytesPerSample32 = 4
	bitsPerByte      = 8
)

// Quantization scales
const (
	scaleS16 float32 = 32767
	scaleS24 float32 = 8388607
	scaleS32 float32 = 2147483647 // rounds to 2^31 in float32

	// s32Overflow is the first scaled value that does not fit int32.
	s32Overflow float32 = 2147483648
)

// encodeBlock is the stack scratch size used while encoding integer formats.
const encodeBlock = 256
