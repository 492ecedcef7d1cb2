package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cable "github.com/tphakala/go-audio-cable"
	"github.com/tphakala/go-audio-cable/internal/logging"
)

const version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:               "vcable",
		Short:             "Virtual audio cable",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a virtual audio cable until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runCable,
	}

	pipeCmd = &cobra.Command{
		Use:   "pipe INPUT.wav OUTPUT",
		Short: "Push a WAV file through a cable and write the result as WAV or raw PCM",
		Long: `Push a WAV file through a cable and write the result as WAV or raw PCM.

The cable runs at the file's sample rate and channel count. With
--output-rate and a converting --strategy (nearest or linear), each channel
is converted on its own cable. OUTPUT ending in .wav gets a WAV file in an
integer format; anything else, or --format f32, gets raw little-endian PCM.

The file is fed in buffer-sized blocks and the converters restart their
phase at every block. For ratios that are not whole numbers (44.1 kHz to
48 kHz) the fractional position is dropped at each block boundary, so block
edges carry small timing errors and the output length is rounded per block.
Use a larger --buffer to make the boundaries rarer.`,
		Args:  cobra.ExactArgs(2),
		RunE:  pipeWAV,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze INPUT.wav",
		Short: "Print level statistics of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeWAV,
	}

	formatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List supported sample formats and SIMD capabilities",
		Args:  cobra.NoArgs,
		RunE:  listFormats,
	}

	configCmd = &cobra.Command{
		Use:   "config [PATH]",
		Short: "Print the effective configuration, or write it to PATH",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	logger = logging.GetLogger()

	logLevel   string
	configPath string

	// flagConfig receives flag values; resolveConfig applies only the flags
	// that were set on top of the defaults or the config file.
	flagConfig = cable.DefaultConfig()

	monitor     bool
	metricsAddr string
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pipeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")

	for _, cmd := range []*cobra.Command{runCmd, pipeCmd, configCmd} {
		addConfigFlags(cmd.Flags())
	}

	runCmd.Flags().BoolVarP(&monitor, "monitor", "m", false, "log statistics every second")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.Uint32VarP(&flagConfig.SampleRate, "sample-rate", "r", flagConfig.SampleRate, "sample rate in Hz")
	fs.Uint16VarP(&flagConfig.Channels, "channels", "c", flagConfig.Channels, "number of channels")
	fs.IntVarP(&flagConfig.BufferSize, "buffer", "b", flagConfig.BufferSize, "buffer size in samples")
	fs.VarP(&flagConfig.Format, "format", "f", "sample format (f32, s16, s24, s32)")
	fs.StringVarP(&flagConfig.DeviceName, "name", "n", flagConfig.DeviceName, "device name")
	fs.Uint32Var(&flagConfig.OutputSampleRate, "output-rate", 0, "resample stage output rate in Hz (0 = sample rate)")
	fs.StringVar(&flagConfig.Strategy, "strategy", flagConfig.Strategy, "resample stage strategy (identity, nearest, linear)")
	fs.BoolVar(&flagConfig.ForwardOutput, "forward", flagConfig.ForwardOutput, "forward resample stage to output on every process call")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	return logging.SetLevel(logger, logLevel)
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (cable.Config, error) {
	cfg := cable.DefaultConfig()
	if configPath != "" {
		loaded, err := cable.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "sample-rate":
			cfg.SampleRate = flagConfig.SampleRate
		case "channels":
			cfg.Channels = flagConfig.Channels
		case "buffer":
			cfg.BufferSize = flagConfig.BufferSize
		case "format":
			cfg.Format = flagConfig.Format
		case "name":
			cfg.DeviceName = flagConfig.DeviceName
		case "output-rate":
			cfg.OutputSampleRate = flagConfig.OutputSampleRate
		case "strategy":
			cfg.Strategy = flagConfig.Strategy
		case "forward":
			cfg.ForwardOutput = flagConfig.ForwardOutput
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func logConfig(cfg cable.Config) {
	logger.Info("Configuration:")
	logger.Infof("  Sample Rate: %d Hz", cfg.SampleRate)
	logger.Infof("  Channels: %d", cfg.Channels)
	logger.Infof("  Buffer Size: %d samples (%.2f ms)", cfg.BufferSize, cfg.LatencyMillis())
	logger.Infof("  Format: %s", cfg.Format)
	logger.Infof("  Device Name: %s", cfg.DeviceName)
	if cfg.OutputRate() != cfg.SampleRate {
		logger.Infof("  Output Rate: %d Hz (%s)", cfg.OutputRate(), cfg.Strategy)
	}
}

func formatStats(s cable.Stats) string {
	return fmt.Sprintf("running=%t, samples=%d, underruns=%d, overruns=%d, latency=%.2fms, cpu=%.1f%%",
		s.Running, s.SamplesProcessed, s.Underruns, s.Overruns, s.LatencyMillis, s.CPUUsage)
}
