package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/penwyp/go-allan-plot/internal/core/model"
	"github.com/penwyp/go-allan-plot/internal/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Title of every chart.
const Title = "Allan Deviation"

// Fixed axis domain. It is never derived from the data so that charts from
// different runs line up.
const (
	XMin = 1e-3
	XMax = 1e2
	YMin = 1e-12
	YMax = 1e-10
)

// DefaultDPI is used when rasterizing for a window.
const DefaultDPI = 96

// Config holds the presentation settings that may vary between runs. The
// domain, ticks and title above do not.
type Config struct {
	Width        vg.Length
	Height       vg.Length
	DPI          int
	MarkerRadius vg.Length
	Dashes       []vg.Length
	LineWidth    vg.Length
	GridWidth    vg.Length
	Color        color.Color
}

// DefaultConfig returns a 10in x 5in figure with a dashed line, circle
// markers and thin solid grid lines.
func DefaultConfig() Config {
	return Config{
		Width:        10 * vg.Inch,
		Height:       5 * vg.Inch,
		DPI:          DefaultDPI,
		MarkerRadius: vg.Points(2.5),
		Dashes:       []vg.Length{vg.Points(6), vg.Points(3)},
		LineWidth:    vg.Points(1.5),
		GridWidth:    vg.Points(0.5),
		Color:        color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	}
}

// Chart is a built figure ready to be rendered.
type Chart struct {
	Plot   *plot.Plot
	Points plotter.XYs
	// Dropped counts points that cannot be placed on a log axis.
	Dropped int
	Config  Config
}

// Build configures a log-log chart of series.
func Build(series model.Series, cfg Config) (*Chart, error) {
	points, dropped := plottable(series)
	if dropped > 0 {
		util.LogWarnf("Left %d non-positive or non-finite point(s) out of the log-log chart", dropped)
	}

	p := plot.New()
	p.Title.Text = Title

	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = XTicks()
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = DecadeTicks{Format: ScientificLabel}

	gridColor := color.Gray{Y: 0xb0}
	p.Add(&Grid{
		Major: draw.LineStyle{Color: gridColor, Width: cfg.GridWidth},
		Minor: draw.LineStyle{Color: gridColor, Width: cfg.GridWidth},
	})

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, fmt.Errorf("failed to create line plotter: %w", err)
	}
	line.LineStyle.Color = cfg.Color
	line.LineStyle.Width = cfg.LineWidth
	line.LineStyle.Dashes = cfg.Dashes
	scatter.GlyphStyle.Color = cfg.Color
	scatter.GlyphStyle.Radius = cfg.MarkerRadius
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, scatter)

	// Add widens the axes to the data; pin them afterwards.
	p.X.Min, p.X.Max = XMin, XMax
	p.Y.Min, p.Y.Max = YMin, YMax

	util.LogDebug("Chart built", util.F("points", len(points)), util.F("dropped", dropped))

	return &Chart{
		Plot:    p,
		Points:  points,
		Dropped: dropped,
		Config:  cfg,
	}, nil
}

// Image rasterizes the chart at the configured size and DPI.
func (c *Chart) Image() image.Image {
	dpi := c.Config.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	canvas := vgimg.NewWith(
		vgimg.UseWH(c.Config.Width, c.Config.Height),
		vgimg.UseDPI(dpi),
	)
	c.Plot.Draw(draw.New(canvas))
	return canvas.Image()
}

// Save writes the chart to path. The extension selects the format
// (png, jpg, svg, pdf, eps, tif).
func (c *Chart) Save(path string) error {
	if err := c.Plot.Save(c.Config.Width, c.Config.Height, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}
	return nil
}

// plottable keeps points that are finite and strictly positive, in order.
func plottable(series model.Series) (plotter.XYs, int) {
	points := make(plotter.XYs, 0, series.Len())
	for i := 0; i < series.Len(); i++ {
		x, y := series.X[i], series.Y[i]
		if !positiveFinite(x) || !positiveFinite(y) {
			continue
		}
		points = append(points, plotter.XY{X: x, Y: y})
	}
	return points, series.Len() - len(points)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
