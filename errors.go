package cable

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-cable/internal/engine"
)

// Error taxonomy. Short reads and writes on buffers are never errors; they
// are reported through returned counts.
var (
	// ErrBuffer is reserved for buffer-level failures.
	ErrBuffer = errors.New("buffer error")

	// ErrAudio indicates an audio processing failure.
	ErrAudio = errors.New("audio processing error")

	// ErrPlatform indicates a failure of the cable session or the host
	// audio service.
	ErrPlatform = errors.New("platform error")

	// ErrIO indicates a file or stream failure.
	ErrIO = errors.New("IO error")

	// ErrOther is the fallback category.
	ErrOther = errors.New("other error")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid cable configuration")

	// ErrUnknownFormat indicates an unrecognized sample format name or value.
	ErrUnknownFormat = engine.ErrUnknownFormat
)

// Session state errors, all in the ErrPlatform category.
var (
	ErrAlreadyRunning = fmt.Errorf("%w: virtual cable is already running", ErrPlatform)
	ErrNotRunning     = fmt.Errorf("%w: virtual cable is not running", ErrPlatform)
	ErrNoPlatform     = fmt.Errorf("%w: no platform audio service configured", ErrPlatform)
)

// platformError places err in the ErrPlatform category unless it already is.
func platformError(op string, err error) error {
	if err == nil || errors.Is(err, ErrPlatform) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPlatform, op, err)
}
