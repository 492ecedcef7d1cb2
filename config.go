package cable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds virtual cable configuration. The zero value is not valid;
// start from DefaultConfig.
type Config struct {
	// SampleRate is the cable's native sample rate in Hz.
	SampleRate uint32 `yaml:"sample_rate"`

	// Channels is the interleaved channel count.
	Channels uint16 `yaml:"channels"`

	// BufferSize is the per-stage buffer size in samples. It is rounded up
	// to a power of two.
	BufferSize int `yaml:"buffer_size"`

	// Format is the native encoded sample format.
	Format AudioFormat `yaml:"format"`

	// DeviceName is the name the host shows for the cable.
	DeviceName string `yaml:"device_name"`

	// OutputSampleRate is the rate the resample stage converts to.
	// Zero means SampleRate. A different rate requires a converting Strategy.
	OutputSampleRate uint32 `yaml:"output_sample_rate,omitempty"`

	// Strategy selects the resample stage transform: identity, nearest or
	// linear. Empty means identity.
	Strategy string `yaml:"strategy,omitempty"`

	// ForwardOutput makes ProcessAudio move resample-stage samples into the
	// output stage after staging input.
	ForwardOutput bool `yaml:"forward_output,omitempty"`
}

// DefaultConfig returns 48 kHz stereo F32LE with 1024-sample buffers.
func DefaultConfig() Config {
	return Config{
		SampleRate: defaultSampleRate,
		Channels:   defaultChannels,
		BufferSize: defaultBufferSize,
		Format:     F32LE,
		DeviceName: defaultDeviceName,
		Strategy:   StrategyIdentity,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate == 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.SampleRate > maxSampleRate || c.OutputSampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate above %d Hz", ErrInvalidConfig, maxSampleRate)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.BufferSize < 1 || c.BufferSize > maxBufferSize {
		return fmt.Errorf("%w: buffer size must be 1-%d samples", ErrInvalidConfig, maxBufferSize)
	}

	if !c.Format.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownFormat, uint8(c.Format))
	}

	if !validStrategy(c.Strategy) {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}

	if c.OutputRate() != c.SampleRate && (c.Strategy == "" || c.Strategy == StrategyIdentity) {
		return fmt.Errorf("%w: converting %d Hz to %d Hz needs the %q or %q strategy",
			ErrInvalidConfig, c.SampleRate, c.OutputRate(), StrategyNearest, StrategyLinear)
	}

	return nil
}

// OutputRate returns OutputSampleRate, or SampleRate when it is unset.
func (c *Config) OutputRate() uint32 {
	if c.OutputSampleRate == 0 {
		return c.SampleRate
	}
	return c.OutputSampleRate
}

// LatencyMillis returns the latency one full buffer adds at SampleRate.
func (c *Config) LatencyMillis() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(c.BufferSize) * millisPerSecond / float64(c.SampleRate)
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read config: %w", ErrIO, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: encode config: %w", ErrOther, err)
	}

	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("%w: write config: %w", ErrIO, err)
	}
	return nil
}
