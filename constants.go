package cable

import "time"

// Configuration defaults
const (
	defaultSampleRate = 48000
	defaultChannels   = 2
	defaultBufferSize = 1024
	defaultDeviceName = "Virtual Audio Cable"
)

// Configuration limits
const (
	maxChannels    = 256     // Maximum supported channel count
	maxSampleRate  = 768000  // 16x DAT
	maxBufferSize  = 1 << 24 // Samples per stage
	configFileMode = 0o644
)

// Timing
const (
	millisPerSecond = 1000.0
	percent         = 100.0

	// DefaultMonitorInterval is how often Monitor reports by default.
	DefaultMonitorInterval = time.Second
)

// logEvery thins overrun/underrun logging on the audio path.
const logEvery = 1000
