package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"numera/internal/config"
)

func newInitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default numera.toml",
		Long: `Write numera.toml with the default settings into [dir] (the current
directory when omitted). An existing numera.toml is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			abs, err := filepath.Abs(target)
			if err != nil {
				return err
			}
			if st, err := os.Stat(abs); err == nil && !st.IsDir() {
				return fmt.Errorf("%q is not a directory", target)
			}
			path, err := config.WriteDefault(abs)
			if err != nil {
				return err
			}
			if !c.quiet {
				fmt.Fprintf(c.stdout, "created %s\n", path)
			}
			return nil
		},
	}
}
