package cable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, uint32(48000), cfg.SampleRate)
	assert.Equal(t, uint16(2), cfg.Channels)
	assert.Equal(t, 1024, cfg.BufferSize)
	assert.Equal(t, F32LE, cfg.Format)
	assert.Equal(t, "Virtual Audio Cable", cfg.DeviceName)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.SampleRate, cfg.OutputRate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"sample rate too high", func(c *Config) { c.SampleRate = maxSampleRate + 1 }},
		{"output rate too high", func(c *Config) { c.OutputSampleRate = maxSampleRate + 1 }},
		{"zero channels", func(c *Config) { c.Channels = 0 }},
		{"too many channels", func(c *Config) { c.Channels = maxChannels + 1 }},
		{"zero buffer", func(c *Config) { c.BufferSize = 0 }},
		{"buffer too large", func(c *Config) { c.BufferSize = maxBufferSize + 1 }},
		{"unknown format", func(c *Config) { c.Format = AudioFormat(99) }},
		{"unknown strategy", func(c *Config) { c.Strategy = "sinc" }},
		{"rate change with identity", func(c *Config) { c.OutputSampleRate = 96000 }},
		{"rate change with empty strategy", func(c *Config) {
			c.OutputSampleRate = 96000
			c.Strategy = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_RateChangeNeedsConvertingStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputSampleRate = 96000

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	for _, strategy := range []string{StrategyNearest, StrategyLinear} {
		cfg.Strategy = strategy
		require.NoError(t, cfg.Validate(), strategy)
	}

	// Naming the native rate explicitly is not a conversion.
	cfg.Strategy = StrategyIdentity
	cfg.OutputSampleRate = cfg.SampleRate
	require.NoError(t, cfg.Validate())
}

func TestConfig_LatencyMillis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BufferSize = 480
	assert.InDelta(t, 10.0, cfg.LatencyMillis(), 1e-12)
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cable.yaml")

	cfg := DefaultConfig()
	cfg.SampleRate = 44100
	cfg.Format = S24LE
	cfg.OutputSampleRate = 48000
	cfg.Strategy = StrategyLinear
	cfg.ForwardOutput = true
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels: 1\nformat: s16\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), cfg.Channels)
	assert.Equal(t, S16LE, cfg.Format)
	assert.Equal(t, uint32(48000), cfg.SampleRate)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrIO)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: u8\n"), 0o600))
	_, err = LoadConfig(bad)
	require.ErrorIs(t, err, ErrInvalidConfig)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("sample_rate: 0\n"), 0o600))
	_, err = LoadConfig(invalid)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
