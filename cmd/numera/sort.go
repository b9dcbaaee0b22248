package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"numera/internal/bignum"
	"numera/internal/config"
	"numera/internal/order"
)

func newSortCmd(c *cli) *cobra.Command {
	var (
		unique  bool
		reverse bool
	)
	cmd := &cobra.Command{
		Use:   "sort [numbers...]",
		Short: "Sort integers and fractions numerically",
		Long: `Sort integers and fractions numerically. Numbers come from the arguments
or, when there are none, whitespace-separated from stdin. If any number is a
fraction, all are compared as fractions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := args
			if len(fields) == 0 {
				data, err := io.ReadAll(c.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				fields = strings.Fields(string(data))
			}

			var lines []string
			err := c.timer.Time("sort", func() error {
				var err error
				if anyFraction(fields) {
					lines, err = sortValues(fields, c.cfg.Radix, unique, reverse, bignum.ParseFraction)
				} else {
					lines, err = sortValues(fields, c.cfg.Radix, unique, reverse, bignum.ParseInt)
				}
				return err
			})
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(c.stdout, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "drop duplicate values, keeping the first")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "sort in descending order")
	return cmd
}

func anyFraction(fields []string) bool {
	for _, f := range fields {
		if strings.Contains(f, "/") {
			return true
		}
	}
	return false
}

type sortable[T any] interface {
	order.Key[T]
	Text(radix int) (string, error)
}

func sortValues[T sortable[T]](fields []string, radix config.RadixConfig, unique, reverse bool, parse func(string, int) (T, error)) ([]string, error) {
	vals := make([]T, 0, len(fields))
	for _, f := range fields {
		v, err := parse(f, radix.Input)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if unique {
		vals = order.Unique(vals)
	}
	if reverse {
		order.SortDesc(vals)
	} else {
		order.Sort(vals)
	}

	lines := make([]string, len(vals))
	for i, v := range vals {
		text, err := v.Text(radix.Output)
		if err != nil {
			return nil, err
		}
		lines[i] = text
	}
	return lines, nil
}
