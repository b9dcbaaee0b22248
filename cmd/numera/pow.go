package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numera/internal/bignum"
	"numera/internal/cache"
)

func newPowCmd(c *cli) *cobra.Command {
	var (
		mod     string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "pow <base> <exp>",
		Short: "Raise an integer to a power, optionally modulo m",
		Long: `Compute base^exp, or base^exp mod m with --mod. Results are cached
under [cache].dir, so repeating a large power is instant.`,
		Example: `  numera pow 2 1000
  numera pow 4 13 --mod 497`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			radix := c.cfg.Radix.Input
			base, err := bignum.ParseInt(args[0], radix)
			if err != nil {
				return err
			}
			exp, err := bignum.ParseInt(args[1], radix)
			if err != nil {
				return err
			}
			var m bignum.BigInt
			program := base.String() + " " + exp.String() + " ^ p"
			if mod != "" {
				if m, err = bignum.ParseInt(mod, radix); err != nil {
					return err
				}
				program = base.String() + " " + exp.String() + " " + m.String() + " powmod p"
			}

			var store *cache.Cache
			if c.cfg.Cache.Enabled && !noCache {
				if store, err = cache.Open(c.cfg.Cache.Dir); err != nil {
					return err
				}
			}
			obase := c.cfg.Radix.Output
			key := cache.Key(program, 10, obase)

			var payload cache.Payload
			if ok, err := store.Get(key, &payload); err == nil && ok && payload.Err == "" && len(payload.Lines) == 1 {
				fmt.Fprintln(c.stdout, payload.Lines[0])
				return nil
			}

			var result bignum.BigInt
			err = c.timer.Time("pow", func() error {
				var err error
				if mod != "" {
					result, err = bignum.IntPowMod(base, exp, m)
				} else {
					result, err = bignum.IntPow(base, exp)
				}
				return err
			})
			if err != nil {
				return err
			}
			text, err := result.Text(obase)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, text)

			err = store.Put(key, &cache.Payload{
				Program:     program,
				InputRadix:  10,
				OutputRadix: obase,
				Lines:       []string{text},
			})
			if err != nil && !c.quiet {
				fmt.Fprintf(c.stderr, "warning: cache write failed: %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mod, "mod", "", "modulus")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	return cmd
}
