package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"numera/internal/batch"
	"numera/internal/cache"
	"numera/internal/ui"
)

func newBatchCmd(c *cli) *cobra.Command {
	var (
		jobs    int
		uiFlag  string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate one calc program per line in parallel",
		Long: `Evaluate every non-blank line of <file> (- for stdin) as an independent
calc program. Output is printed in input order; failed lines are reported on
stderr. Results are cached unless --no-cache is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := readUIMode(uiFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = c.cfg.Batch.Jobs
			}

			var list []batch.Job
			err = c.timer.Time("read", func() error {
				var err error
				list, err = readJobsFrom(c.stdin, args[0])
				return err
			})
			if err != nil {
				return err
			}

			opts := batch.Options{
				Jobs:        jobs,
				InputRadix:  c.cfg.Radix.Input,
				OutputRadix: c.cfg.Radix.Output,
			}
			if c.cfg.Cache.Enabled && !noCache {
				if opts.Cache, err = cache.Open(c.cfg.Cache.Dir); err != nil {
					return err
				}
			}

			var results []batch.Result
			err = c.timer.Time("eval", func() error {
				var err error
				if shouldUseTUI(mode, c.stdout) {
					results, err = runBatchWithUI(cmd.Context(), "batch "+args[0], list, opts, c.stdout)
				} else {
					results, err = batch.Run(cmd.Context(), list, opts)
				}
				return err
			})
			if err != nil {
				return err
			}

			for _, r := range results {
				for _, line := range r.Lines {
					fmt.Fprintln(c.stdout, line)
				}
				if r.Err != nil {
					printError(c.stderr, fmt.Errorf("%s: %w", r.Label, r.Err))
				}
			}
			ok, failed, cached := batch.Counts(results)
			if !c.quiet {
				fmt.Fprintf(c.stderr, "%d jobs: %d ok, %d failed, %d cached\n", len(results), ok, failed, cached)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel jobs (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	return cmd
}

func readJobsFrom(stdin io.Reader, path string) ([]batch.Job, error) {
	if path == "-" {
		return batch.ReadJobs(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return batch.ReadJobs(f)
}

type batchOutcome struct {
	results []batch.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, jobs []batch.Job, opts batch.Options, out io.Writer) ([]batch.Result, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Events = events
		res, err := batch.Run(ctx, jobs, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	labels := make([]string, len(jobs))
	for i, job := range jobs {
		labels[i] = job.Label
	}
	uiErr := ui.Run(ui.NewProgressModel(title, labels, events), out)
	if uiErr != nil {
		// Keep the workers from blocking on a UI that is gone.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
