package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/penwyp/go-allan-plot/internal/data/parser"
	"github.com/penwyp/go-allan-plot/internal/presentation/formatter"
	"github.com/penwyp/go-allan-plot/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Inspect command flags
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect -i <file>",
	Short: "Print the data points read from a file",
	Long: `Parses the input file exactly as the chart does and prints the resulting
points, so a data file can be checked without opening a window.`,
	Args:    usageArgs(cobra.NoArgs),
	PreRunE: validateInspectFlags,
	RunE:    runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", formatter.FormatTable,
		"Output format ("+strings.Join(formatter.Formats, ", ")+")")
}

func validateInspectFlags(cmd *cobra.Command, args []string) error {
	if err := requireInput(cmd, args); err != nil {
		return err
	}
	if !slices.Contains(formatter.Formats, inspectFormat) {
		return usageErrorf("invalid format %q: must be one of %s", inspectFormat, strings.Join(formatter.Formats, ", "))
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(s); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	series, err := parser.NewParser(s.policy).ParseFile(inputPath)
	if err != nil {
		return err
	}

	f, err := formatter.New(inspectFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	util.LogDebug("Inspecting data", util.F("input", inputPath), util.F("points", series.Len()))
	return f.Format(formatter.RowsFromSeries(series))
}
