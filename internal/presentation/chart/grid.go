package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// Grid draws lines across the data area at every tick of both axes, using
// Major for labeled ticks and Minor for unlabeled ones. A nil color turns
// the corresponding lines off.
type Grid struct {
	Major draw.LineStyle
	Minor draw.LineStyle
}

var _ plot.Plotter = (*Grid)(nil)

// Plot implements plot.Plotter.
func (g *Grid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, tk := range plt.X.Tick.Marker.Ticks(plt.X.Min, plt.X.Max) {
		if tk.Value < plt.X.Min || tk.Value > plt.X.Max {
			continue
		}
		style := g.style(tk)
		if style.Color == nil {
			continue
		}
		x := trX(tk.Value)
		c.StrokeLine2(style, x, c.Min.Y, x, c.Max.Y)
	}

	for _, tk := range plt.Y.Tick.Marker.Ticks(plt.Y.Min, plt.Y.Max) {
		if tk.Value < plt.Y.Min || tk.Value > plt.Y.Max {
			continue
		}
		style := g.style(tk)
		if style.Color == nil {
			continue
		}
		y := trY(tk.Value)
		c.StrokeLine2(style, c.Min.X, y, c.Max.X, y)
	}
}

func (g *Grid) style(tk plot.Tick) draw.LineStyle {
	if tk.IsMinor() {
		return g.Minor
	}
	return g.Major
}
