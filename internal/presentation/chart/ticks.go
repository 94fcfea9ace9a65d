package chart

import (
	"math"

	"github.com/penwyp/go-allan-plot/internal/util"
	"gonum.org/v1/plot"
)

// Fixed x-axis ticks and their labels.
var (
	XTickValues = []float64{0.001, 0.01, 0.1, 1, 10, 100}
	XTickLabels = []string{"0.001s", "0.01s", "0.1s", "1s", "10s", "100s"}
)

// relative slack when comparing generated tick values against axis bounds
const tickTolerance = 1e-9

// DecadeTicks places a labeled tick at every power of ten inside the range
// and unlabeled minor ticks at 2..9 times each power.
type DecadeTicks struct {
	Format func(v float64) string
}

var _ plot.Ticker = DecadeTicks{}

// Ticks implements plot.Ticker.
func (t DecadeTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= 0 || min > max {
		return nil
	}

	format := t.Format
	if format == nil {
		format = util.FormatValue
	}

	var ticks []plot.Tick
	lo := int(math.Floor(math.Log10(min)))
	hi := int(math.Ceil(math.Log10(max)))
	for e := lo; e <= hi; e++ {
		decade := math.Pow10(e)
		if inRange(decade, min, max) {
			ticks = append(ticks, plot.Tick{Value: decade, Label: format(decade)})
		}
		for k := 2; k <= 9; k++ {
			v := float64(k) * decade
			if inRange(v, min, max) {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	return ticks
}

// ScientificLabel formats decades as "1E-12".
func ScientificLabel(v float64) string {
	return util.FormatScientific(v, 0)
}

// XTicks returns the fixed labeled x ticks plus unlabeled minor ticks
// between XMin and XMax.
func XTicks() plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, len(XTickValues)*9)
	for i, v := range XTickValues {
		ticks = append(ticks, plot.Tick{Value: v, Label: XTickLabels[i]})
	}
	for _, tk := range (DecadeTicks{}).Ticks(XMin, XMax) {
		if tk.IsMinor() {
			ticks = append(ticks, tk)
		}
	}
	return plot.ConstantTicks(ticks)
}

func inRange(v, min, max float64) bool {
	return v >= min*(1-tickTolerance) && v <= max*(1+tickTolerance)
}
