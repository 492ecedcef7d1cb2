package engine

import "errors"

var (
	// ErrInvalidRate indicates a zero sample rate.
	ErrInvalidRate = errors.New("sample rates must be positive")

	// ErrInvalidChannels indicates a zero channel count.
	ErrInvalidChannels = errors.New("invalid channel count")

	// ErrUnknownFormat indicates a format outside F32LE, S16LE, S24LE, S32LE.
	ErrUnknownFormat = errors.New("unknown sample format")
)
