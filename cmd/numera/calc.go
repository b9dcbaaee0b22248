package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"numera/internal/calc"
)

func newCalcCmd(c *cli) *cobra.Command {
	var (
		file  string
		ibase int
		obase int
	)
	cmd := &cobra.Command{
		Use:   "calc [program...]",
		Short: "Evaluate a reverse Polish program",
		Long: `Evaluate a dc-style reverse Polish program over integers and fractions.

Numbers are pushed; operators pop their operands and push the result:
  + - * / % ^  add sub mul div mod pow powmod neg abs inv frac num den gcd cmp
  dup swap drop clear   stack control
  p print               print the top value
  f stack               print the whole stack, top first
  ibase=N obase=N       set the literal and print radix

The program is read from the arguments, from --file, or from stdin.`,
		Example: `  numera calc 2 100 ^ p
  numera calc "1/2 1/3 + p"
  numera calc obase=16 255 p`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ibase") {
				ibase = c.cfg.Radix.Input
			}
			if !cmd.Flags().Changed("obase") {
				obase = c.cfg.Radix.Output
			}

			var program string
			err := c.timer.Time("read", func() error {
				var err error
				program, err = readProgram(c.stdin, file, args)
				return err
			})
			if err != nil {
				return err
			}

			m, err := calc.NewMachine(ibase, obase)
			if err != nil {
				return err
			}
			var lines []string
			evalErr := c.timer.Time("eval", func() error {
				var err error
				lines, err = m.Eval(cmd.Context(), program)
				return err
			})
			for _, line := range lines {
				fmt.Fprintln(c.stdout, line)
			}
			return evalErr
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the program from a file (- for stdin)")
	cmd.Flags().IntVar(&ibase, "ibase", 10, "initial input radix")
	cmd.Flags().IntVar(&obase, "obase", 10, "initial output radix")
	return cmd
}

func readProgram(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file == "-" || (file == "" && len(args) == 0):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data) + "\n" + strings.Join(args, " "), nil
	default:
		return strings.Join(args, " "), nil
	}
}
