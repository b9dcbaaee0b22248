package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"numera/internal/bignum"
)

var fracOps = map[string]func(x, y bignum.Fraction) (bignum.Fraction, error){
	"+": bignum.FracAdd,
	"-": bignum.FracSub,
	"*": bignum.FracMul,
	"x": bignum.FracMul,
	"/": bignum.FracDiv,
}

func newFracCmd(c *cli) *cobra.Command {
	var float bool
	cmd := &cobra.Command{
		Use:   "frac <a/b> [op <c/d>]",
		Short: "Reduce a fraction or combine two",
		Long: `Reduce a fraction, or apply op (+ - * x /) to two fractions and
print the reduced result. Operands use the [radix].input radix.`,
		Example: `  numera frac 6/8
  numera frac 1/2 + 1/3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected <a/b> or <a/b> <op> <c/d>, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			radix := c.cfg.Radix.Input
			x, err := bignum.ParseFraction(args[0], radix)
			if err != nil {
				return err
			}
			result := x
			if len(args) == 3 {
				op, ok := fracOps[args[1]]
				if !ok {
					return fmt.Errorf("unknown operator %q (expected + - * x /)", args[1])
				}
				y, err := bignum.ParseFraction(args[2], radix)
				if err != nil {
					return err
				}
				if result, err = op(x, y); err != nil {
					return err
				}
			}

			text, err := result.Text(c.cfg.Radix.Output)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, text)
			if float {
				v, err := result.Float64()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "≈ %s\n", strconv.FormatFloat(v, 'g', -1, 64))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&float, "float", false, "also print a floating-point approximation")
	return cmd
}
