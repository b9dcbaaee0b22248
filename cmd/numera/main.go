package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numera/internal/config"
	"numera/internal/observ"
	"numera/internal/prof"
	"numera/internal/trace"
	"numera/internal/version"
)

// cli carries what the persistent pre-run resolves for the subcommands.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg     config.Config
	cfgPath string
	timer   *observ.Timer
	quiet   bool
	timings bool

	tracer  trace.Tracer
	span    *trace.Span
	cleanup func(failed bool)
	profile *prof.Session
}

// main runs the CLI and exits with status 1 when the command fails.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, timer: observ.NewTimer()}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if c.span != nil {
		detail := "ok"
		if err != nil {
			detail = "failed"
		}
		c.span.End(detail)
	}
	if c.timings && c.timer.Len() > 0 {
		fmt.Fprint(stderr, c.timer.Summary())
	}
	if c.cleanup != nil {
		c.cleanup(err != nil)
	}
	c.stopProfiling()
	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "numera",
		Short:         "Arbitrary-precision integer and fraction toolkit",
		Long:          `numera converts, evaluates and sorts arbitrary-precision integers and fractions in any radix from 2 to 36`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.prepare(cmd)
		},
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("config", "", "path to numera.toml (default: search upwards from the working directory)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(
		newConvertCmd(c),
		newCalcCmd(c),
		newFracCmd(c),
		newPowCmd(c),
		newBatchCmd(c),
		newSortCmd(c),
		newInitCmd(c),
		newVersionCmd(c),
	)
	return root
}

// prepare applies the persistent flags and loads the configuration.
func (c *cli) prepare(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	colorMode, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := applyColorMode(colorMode, c.stdout); err != nil {
		return err
	}
	if c.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if c.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfgFlag, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	err = c.timer.Time("config", func() error {
		if cfgFlag != "" {
			cfg, loadErr := config.LoadFile(cfgFlag)
			c.cfg, c.cfgPath = cfg, cfgFlag
			return loadErr
		}
		var loadErr error
		c.cfg, c.cfgPath, loadErr = config.Load(".")
		return loadErr
	})
	if err != nil {
		return err
	}

	if err := c.setupTracing(cmd); err != nil {
		return err
	}
	if err := c.setupProfiling(cmd); err != nil {
		return err
	}
	c.span = trace.Begin(c.tracer, trace.ScopeCommand, "cmd:"+cmd.Name(), 0)
	cmd.SetContext(trace.WithSpan(cmd.Context(), c.span))
	return nil
}

func applyColorMode(mode string, out io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "", "auto":
		f, ok := out.(*os.File)
		color.NoColor = !ok || !isTerminal(f) || os.Getenv("NO_COLOR") != ""
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

var errorLabel = color.New(color.FgRed, color.Bold)

// printError prints err as "error: ..." with the label in red.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("error:"), err)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
