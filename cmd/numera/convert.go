package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"numera/internal/bignum"
	"numera/internal/calc"
	"numera/internal/ui"
)

func newConvertCmd(c *cli) *cobra.Command {
	var (
		from int
		to   int
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "convert <number>",
		Short: "Convert an integer or fraction between radices",
		Long: `Convert an integer or fraction n/d from one radix to another.
Radices default to [radix] in numera.toml. With --all the number is printed
in every radix from 2 to 36.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") {
				from = c.cfg.Radix.Input
			}
			if !cmd.Flags().Changed("to") {
				to = c.cfg.Radix.Output
			}

			var value calc.Value
			err := c.timer.Time("parse", func() error {
				v, err := parseNumber(args[0], from)
				value = v
				return err
			})
			if err != nil {
				return err
			}

			if !all {
				text, err := value.Text(to)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, text)
				return nil
			}

			rows := make([]ui.Row, 0, bignum.MaxRadix-bignum.MinRadix+1)
			err = c.timer.Time("render", func() error {
				for radix := bignum.MinRadix; radix <= bignum.MaxRadix; radix++ {
					text, err := value.Text(radix)
					if err != nil {
						return err
					}
					rows = append(rows, ui.Row{Key: strconv.Itoa(radix), Value: text})
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprint(c.stdout, ui.Table(rows, terminalWidth(c.stdout), !color.NoColor))
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 10, "input radix (2-36)")
	cmd.Flags().IntVar(&to, "to", 10, "output radix (2-36)")
	cmd.Flags().BoolVar(&all, "all", false, "print the number in every radix")
	return cmd
}

// parseNumber parses an integer, or a fraction when s contains '/'.
func parseNumber(s string, radix int) (calc.Value, error) {
	if strings.Contains(s, "/") {
		f, err := bignum.ParseFraction(s, radix)
		if err != nil {
			return nil, err
		}
		return calc.Frac(f), nil
	}
	n, err := bignum.ParseInt(s, radix)
	if err != nil {
		return nil, err
	}
	return calc.Int(n), nil
}
