package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cable "github.com/tphakala/go-audio-cable"
	"github.com/tphakala/go-audio-cable/internal/wavio"
)

const rawFileMode = 0o644

// pipeAudio moves samples through a running cable in frame-aligned blocks
// small enough that the converted block fits the resample stage, and
// returns everything that came out of the output stage.
func pipeAudio(c *cable.Cable, samples []float32) ([]float32, error) {
	cfg := c.Config()
	buffers := c.Stats().Buffers
	capacity := buffers.InputAvailable + buffers.InputFree

	block := min(cfg.BufferSize, capacity)
	if out := cfg.OutputRate(); out > cfg.SampleRate {
		block = int(uint64(block) * uint64(cfg.SampleRate) / uint64(out))
	}
	ch := int(cfg.Channels)
	block = max(ch, block/ch*ch)

	out := make([]float32, 0, len(samples))
	scratch := make([]float32, capacity)

	for len(samples) > 0 {
		n := min(block, len(samples))
		got, err := c.ProcessAudio(samples[:n], scratch)
		if err != nil {
			return nil, err
		}
		out = append(out, scratch[:got]...)
		samples = samples[n:]
	}

	// Drain what is still staged.
	for {
		c.Forward(0)
		got, err := c.ProcessAudio(nil, scratch)
		if err != nil {
			return nil, err
		}
		if got == 0 {
			break
		}
		out = append(out, scratch[:got]...)
	}
	return out, nil
}

// pipeClip runs clip through cables built from cfg and returns the result at
// the output rate. The rate converters see a flat sample sequence, so a
// multi-channel clip that needs conversion gets one mono cable per channel.
func pipeClip(cfg cable.Config, clip *wavio.Clip, opts ...cable.Option) (*wavio.Clip, error) {
	cfg.SampleRate = clip.SampleRate
	cfg.Channels = clip.Channels
	cfg.ForwardOutput = true

	result := &wavio.Clip{SampleRate: cfg.OutputRate(), Channels: clip.Channels, Format: cfg.Format}

	if clip.Channels == 1 || cfg.OutputRate() == cfg.SampleRate {
		out, err := pipeThrough(cfg, clip.Samples, opts...)
		if err != nil {
			return nil, err
		}
		result.Samples = out
		return result, nil
	}

	mono := cfg
	mono.Channels = 1
	planes := cable.Deinterleave(clip.Samples, int(clip.Channels))
	for i, plane := range planes {
		out, err := pipeThrough(mono, plane, opts...)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		planes[i] = out
	}
	result.Samples = cable.Interleave(planes)
	return result, nil
}

// pipeThrough pushes samples through a fresh cable and closes it.
func pipeThrough(cfg cable.Config, samples []float32, opts ...cable.Option) ([]float32, error) {
	c, err := cable.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		return nil, err
	}

	out, err := pipeAudio(c, samples)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Stats: %s", formatStats(c.Stats()))
	return out, c.Close(ctx)
}

// writeOutput writes a WAV file for ".wav" paths in an integer format and
// raw little-endian PCM otherwise.
func writeOutput(path string, clip *wavio.Clip) error {
	if strings.EqualFold(filepath.Ext(path), ".wav") && clip.Format.IsInteger() {
		if err := wavio.Write(path, clip, clip.Format); err != nil {
			return fmt.Errorf("%w: %w", cable.ErrIO, err)
		}
		return nil
	}

	if err := os.WriteFile(path, cable.EncodeSamples(clip.Samples, clip.Format), rawFileMode); err != nil {
		return fmt.Errorf("%w: %w", cable.ErrIO, err)
	}
	return nil
}

func pipeWAV(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	clip, err := wavio.Read(inPath)
	if err != nil {
		return fmt.Errorf("%w: %w", cable.ErrIO, err)
	}
	logger.Infof("Input: %d Hz, %d channels, %s, %d frames", clip.SampleRate, clip.Channels, clip.Format, clip.Frames())

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") {
		cfg.Format = clip.Format
	}

	result, err := pipeClip(cfg, clip, cable.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := writeOutput(outPath, result); err != nil {
		return err
	}

	logger.Infof("Output: %d Hz, %d channels, %s, %d frames -> %s",
		result.SampleRate, result.Channels, result.Format, result.Frames(), outPath)
	return nil
}
