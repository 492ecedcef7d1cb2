package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cable "github.com/tphakala/go-audio-cable"
	"github.com/tphakala/go-audio-cable/internal/wavio"
)

func analyzeWAV(cmd *cobra.Command, args []string) error {
	clip, err := wavio.Read(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cable.ErrIO, err)
	}

	a := cable.Analyze(clip.Samples)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:      %s\n", args[0])
	fmt.Fprintf(w, "Format:    %d Hz, %d channels, %s\n", clip.SampleRate, clip.Channels, clip.Format)
	fmt.Fprintf(w, "Frames:    %d\n", clip.Frames())
	fmt.Fprintf(w, "Peak:      %.6f (%.2f dBFS)\n", a.Peak, a.PeakDBFS)
	fmt.Fprintf(w, "RMS:       %.6f\n", a.RMS)
	fmt.Fprintf(w, "Mean:      %.6f\n", a.Mean)
	fmt.Fprintf(w, "StdDev:    %.6f\n", a.StdDev)
	fmt.Fprintf(w, "Range:     [%.6f, %.6f]\n", a.Min, a.Max)
	fmt.Fprintf(w, "Clipped:   %d\n", a.Clipped)
	return nil
}
