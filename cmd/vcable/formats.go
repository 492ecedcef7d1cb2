package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tphakala/simd/cpu"
	"gopkg.in/yaml.v3"

	cable "github.com/tphakala/go-audio-cable"
	"github.com/tphakala/go-audio-cable/internal/engine"
)

func listFormats(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	for _, f := range engine.Formats {
		fmt.Fprintf(w, "%-6s %d bytes/sample  scale %.0f\n", f, f.BytesPerSample(), f.Scale())
	}
	fmt.Fprintf(w, "Strategies: %v\n", cable.Strategies)
	fmt.Fprintf(w, "SIMD: %s\n", cpu.Info())
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		logger.Infof("configuration written to %s", args[0])
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
