package display

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/penwyp/go-allan-plot/internal/presentation/chart"
	"github.com/penwyp/go-allan-plot/internal/util"
	"golang.org/x/term"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

const (
	defaultTermWidth = 80
	minTermWidth     = 40
	maxTermWidth     = 160

	markerRune     = 'o'
	lineRune       = '.'
	gridColRune    = ':'
	gridRowRune    = '-'
	axisRowRune    = '-'
	axisColRune    = '|'
	axisCornerRune = '+'
)

// TerminalRenderer draws an ASCII version of the chart on a writer.
type TerminalRenderer struct {
	writer io.Writer
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized from the terminal behind w,
// or 80 columns when w is not a terminal.
func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{writer: w}
}

// WithSize fixes the drawing size in cells instead of probing the terminal.
func (r *TerminalRenderer) WithSize(width, height int) *TerminalRenderer {
	r.width = width
	r.height = height
	return r
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(c *chart.Chart) error {
	width, height := r.size()
	lines := drawASCII(c.Plot, c.Points, width, height)
	_, err := io.WriteString(r.writer, strings.Join(lines, "\n")+"\n")
	return err
}

func (r *TerminalRenderer) size() (int, int) {
	width := r.width
	if width <= 0 {
		width = defaultTermWidth
		if f, ok := r.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = w - 1
			}
		}
	}
	if width < minTermWidth {
		width = minTermWidth
	}
	if width > maxTermWidth {
		width = maxTermWidth
	}

	height := r.height
	if height <= 0 {
		height = width / 4
	}
	if height < 8 {
		height = 8
	}
	util.LogDebugf("Terminal chart size %dx%d", width, height)
	return width, height
}

// logAxis maps values on a log axis to cell indices in [0, cells).
type logAxis struct {
	lo, hi float64
	cells  int
	invert bool
}

func newLogAxis(min, max float64, cells int, invert bool) logAxis {
	return logAxis{lo: math.Log10(min), hi: math.Log10(max), cells: cells, invert: invert}
}

func (a logAxis) cell(v float64) (int, bool) {
	if v <= 0 {
		return 0, false
	}
	f := (math.Log10(v) - a.lo) / (a.hi - a.lo)
	if f < 0 || f > 1 || math.IsNaN(f) {
		return 0, false
	}
	i := int(math.Round(f * float64(a.cells-1)))
	if a.invert {
		i = a.cells - 1 - i
	}
	return i, true
}

func majorTicks(ticks []plot.Tick) []plot.Tick {
	majors := make([]plot.Tick, 0, len(ticks))
	for _, tk := range ticks {
		if !tk.IsMinor() {
			majors = append(majors, tk)
		}
	}
	return majors
}

func drawASCII(p *plot.Plot, points plotter.XYs, width, height int) []string {
	yTicks := majorTicks(p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max))
	xTicks := majorTicks(p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max))

	labelWidth := 0
	for _, tk := range yTicks {
		if w := util.GetDisplayWidth(tk.Label); w > labelWidth {
			labelWidth = w
		}
	}

	cols := width - labelWidth - 2
	rows := height
	xAxis := newLogAxis(p.X.Min, p.X.Max, cols, false)
	yAxis := newLogAxis(p.Y.Min, p.Y.Max, rows, true)

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	set := func(row, col int, ch rune) {
		if row >= 0 && row < rows && col >= 0 && col < cols {
			grid[row][col] = ch
		}
	}

	rowLabels := make(map[int]string, len(yTicks))
	for _, tk := range yTicks {
		if row, ok := yAxis.cell(tk.Value); ok {
			rowLabels[row] = tk.Label
			for col := 0; col < cols; col++ {
				set(row, col, gridRowRune)
			}
		}
	}
	for _, tk := range xTicks {
		if col, ok := xAxis.cell(tk.Value); ok {
			for row := 0; row < rows; row++ {
				set(row, col, gridColRune)
			}
		}
	}

	// dashed connecting line, sampled in log space
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		steps := 2 * (cols + rows)
		for s := 0; s <= steps; s++ {
			if s%4 >= 2 {
				continue
			}
			t := float64(s) / float64(steps)
			x := math.Pow(10, math.Log10(a.X)+t*(math.Log10(b.X)-math.Log10(a.X)))
			y := math.Pow(10, math.Log10(a.Y)+t*(math.Log10(b.Y)-math.Log10(a.Y)))
			col, okX := xAxis.cell(x)
			row, okY := yAxis.cell(y)
			if okX && okY {
				set(row, col, lineRune)
			}
		}
	}
	for _, pt := range points {
		col, okX := xAxis.cell(pt.X)
		row, okY := yAxis.cell(pt.Y)
		if okX && okY {
			set(row, col, markerRune)
		}
	}

	lines := make([]string, 0, rows+4)
	lines = append(lines, util.CenterText(p.Title.Text, width))
	for row := 0; row < rows; row++ {
		label := util.PadString(rowLabels[row], labelWidth, false)
		lines = append(lines, fmt.Sprintf("%s %c%s", label, axisColRune, string(grid[row])))
	}
	lines = append(lines, fmt.Sprintf("%s %c%s",
		strings.Repeat(" ", labelWidth), axisCornerRune, strings.Repeat(string(axisRowRune), cols)))
	lines = append(lines, xLabelRow(xTicks, xAxis, labelWidth+2, width))
	return lines
}

// xLabelRow centers each label under its column, dropping labels that
// would overlap the previous one.
func xLabelRow(ticks []plot.Tick, axis logAxis, offset, width int) string {
	row := []rune(strings.Repeat(" ", width))
	end := -1
	for _, tk := range ticks {
		col, ok := axis.cell(tk.Value)
		if !ok {
			continue
		}
		label := []rune(tk.Label)
		start := offset + col - util.GetDisplayWidth(tk.Label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > width {
			start = width - len(label)
		}
		if start <= end {
			continue
		}
		copy(row[start:], label)
		end = start + len(label)
	}
	return strings.TrimRight(string(row), " ")
}
