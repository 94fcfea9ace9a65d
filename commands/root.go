package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/penwyp/go-allan-plot/internal/application/adev"
	"github.com/penwyp/go-allan-plot/internal/config"
	"github.com/penwyp/go-allan-plot/internal/data/parser"
	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
	"github.com/penwyp/go-allan-plot/internal/presentation/display"
	"github.com/penwyp/go-allan-plot/internal/util"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	// Input
	inputPath string
	strict    bool

	// Output related
	outputPath string
	terminal   bool
	watch      bool

	// Settings file
	configPath string

	// Logging related
	debug     bool
	logFormat string
	logFile   string

	rootCmd = &cobra.Command{
		Use:   "go-allan-plot -i <file> [flags]",
		Short: "Plot Allan deviation data on a log-log chart",
		Long: `go-allan-plot reads a two-column data file (tau in seconds, Allan deviation)
and shows it on a log-log chart with fixed axes, so charts from different runs
can be compared directly.

Lines starting with '#' are comments. Every other line holds two numbers
separated by whitespace; lines with a different number of fields are skipped
unless --strict is given.

Examples:
  go-allan-plot -i adev.txt                       # Open the chart in a window
  go-allan-plot -i adev.txt -o adev.png           # Save the chart as PNG (svg, pdf also work)
  go-allan-plot -i adev.txt --terminal            # Draw the chart in the terminal
  go-allan-plot -i adev.txt -o adev.svg --watch   # Re-render whenever adev.txt changes
  go-allan-plot inspect -i adev.txt --format csv  # Print the parsed points`,
		Args:    usageArgs(cobra.NoArgs),
		PreRunE: validatePlotFlags,
		RunE:    runPlot,
	}

	// newRenderer is replaced in tests
	newRenderer = display.New
)

// UsageError reports a command line that cannot be run at all. The process
// exits with status 2 for it.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	// Input data
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "",
		"Input data file path (required)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false,
		"Fail on lines that do not have exactly two fields instead of skipping them")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the chart to a file instead of opening a window (png, svg, pdf, ...)")
	rootCmd.Flags().BoolVar(&terminal, "terminal", false,
		"Draw the chart in the terminal instead of opening a window")
	rootCmd.Flags().BoolVar(&watch, "watch", false,
		"Re-render when the input file changes (needs --output or --terminal)")

	// Settings file
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"HCL settings file; flags given on the command line take precedence")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Also write logs to this file (e.g. ~/.go-allan-plot/logs/app.log)")
}

// requireInput runs before any file is touched. An empty value is left
// for the loader to reject.
func requireInput(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("input") {
		return usageErrorf("required flag \"input\" not set")
	}
	return nil
}

func validatePlotFlags(cmd *cobra.Command, args []string) error {
	if err := requireInput(cmd, args); err != nil {
		return err
	}
	if terminal && outputPath != "" {
		return usageErrorf("--output and --terminal cannot be used together")
	}
	return nil
}

// settings is the merged result of flags and the optional settings file.
type settings struct {
	policy   parser.LinePolicy
	output   string
	terminal bool
	chart    chart.Config

	logLevel  string
	logFormat util.LogFormat
	logFile   string
}

// resolveSettings merges the settings file into the flag values. A flag set
// on the command line always wins over the file.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := settings{
		output:    outputPath,
		terminal:  terminal,
		chart:     chart.DefaultConfig(),
		logLevel:  "info",
		logFormat: util.ParseLogFormat(logFormat),
		logFile:   logFile,
	}
	useStrict := strict

	if configPath != "" {
		f, err := config.Load(expandPath(configPath))
		if err != nil {
			return settings{}, err
		}
		flags := cmd.Flags()

		if !flags.Changed("strict") {
			useStrict = config.BoolOr(f.Strict, useStrict)
		}
		// An output choice on the command line replaces the file's choice.
		if !flags.Changed("output") && !flags.Changed("terminal") {
			s.output = config.StringOr(f.Output, s.output)
			s.terminal = config.BoolOr(f.Terminal, s.terminal)
		}
		if f.Width != nil {
			s.chart.Width = vg.Length(*f.Width) * vg.Inch
		}
		if f.Height != nil {
			s.chart.Height = vg.Length(*f.Height) * vg.Inch
		}
		if f.DPI != nil {
			s.chart.DPI = *f.DPI
		}
		if f.Log != nil {
			s.logLevel = config.StringOr(f.Log.Level, s.logLevel)
			if !flags.Changed("log-format") && f.Log.Format != nil {
				s.logFormat = util.ParseLogFormat(*f.Log.Format)
			}
			if !flags.Changed("log-file") {
				s.logFile = config.StringOr(f.Log.File, s.logFile)
			}
		}
	}

	if debug {
		s.logLevel = "debug"
	}
	if useStrict {
		s.policy = parser.PolicyStrict
	}
	return s, nil
}

func (s settings) rendererOptions(stdout io.Writer) display.Options {
	switch {
	case s.terminal:
		return display.Options{Kind: display.KindTerminal, Writer: stdout}
	case s.output != "":
		return display.Options{Kind: display.KindFile, Output: expandPath(s.output)}
	default:
		return display.Options{Kind: display.KindWindow}
	}
}

func setupLogging(s settings) error {
	opts := util.LoggerOptions{
		Level:  s.logLevel,
		Format: s.logFormat,
	}
	if s.logFile != "" {
		opts.File = expandPath(s.logFile)
	}
	if debug {
		opts.Console = os.Stderr
	}
	return util.InitLogger(opts)
}

func runPlot(cmd *cobra.Command, args []string) error {
	// From here on errors are not about the command line.
	cmd.SilenceUsage = true

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(s); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	renderer, err := newRenderer(s.rendererOptions(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	o, err := adev.NewOrchestrator(adev.Config{
		Input:  inputPath,
		Policy: s.policy,
		Chart:  s.chart,
	}, renderer)
	if err != nil {
		return err
	}

	util.LogDebug("Plotting",
		util.F("input", inputPath),
		util.F("policy", s.policy.String()),
		util.F("watch", watch))

	if watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return o.Watch(ctx)
	}
	return o.Run(cmd.Context())
}

func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
