package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-allan-plot/internal/util"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// Format writes a header and one record per point. Values keep full
// precision so the output can be fed back to the plotter.
func (f *CSVFormatter) Format(rows []SeriesRow) error {
	w := csv.NewWriter(f.w)

	if err := w.Write([]string{"index", "tau", "deviation"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Index),
			util.FormatValue(row.Tau),
			util.FormatValue(row.Deviation),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
