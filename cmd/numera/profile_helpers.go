package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numera/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent flags.
func (c *cli) setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil
	}

	c.profile, err = prof.Start(prof.Options{CPUPath: cpuProfile, MemPath: memProfile, TracePath: tracePath})
	return err
}

func (c *cli) stopProfiling() {
	if err := c.profile.Stop(); err != nil {
		fmt.Fprintf(c.stderr, "profile: %v\n", err)
	}
}
