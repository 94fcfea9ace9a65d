package adev

import (
	"github.com/penwyp/go-allan-plot/internal/data/parser"
	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
)

// Config contains the settings of one plotting run
type Config struct {
	// Input data file
	Input string

	// Malformed-line handling
	Policy parser.LinePolicy

	// Figure settings
	Chart chart.Config
}

// Validate fills in chart defaults. The input path is checked when it is
// opened.
func (c *Config) Validate() error {
	def := chart.DefaultConfig()
	if c.Chart.Width <= 0 {
		c.Chart.Width = def.Width
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = def.Height
	}
	if c.Chart.DPI <= 0 {
		c.Chart.DPI = def.DPI
	}
	if c.Chart.MarkerRadius <= 0 {
		c.Chart.MarkerRadius = def.MarkerRadius
	}
	if c.Chart.Dashes == nil {
		c.Chart.Dashes = def.Dashes
	}
	if c.Chart.LineWidth <= 0 {
		c.Chart.LineWidth = def.LineWidth
	}
	if c.Chart.GridWidth <= 0 {
		c.Chart.GridWidth = def.GridWidth
	}
	if c.Chart.Color == nil {
		c.Chart.Color = def.Color
	}
	return nil
}
