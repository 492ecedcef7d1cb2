package pipeline

// Memory layout
const (
	// cacheLinePad separates the writer and reader cursors onto different
	// 64-byte cache lines (64 - 8 bytes of atomic.Uint64).
	cacheLinePad = 56
)

// Transform names
const (
	TransformIdentity = "identity" // Passthrough
	TransformNearest  = "nearest"  // Nearest/previous-sample rate conversion
	TransformLinear   = "linear"   // Linear-interpolation rate conversion
)
