package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-allan-plot/internal/core/model"
)

// SeriesRow is one data point as shown by the inspect command.
type SeriesRow struct {
	Index     int     `json:"index"`
	Tau       float64 `json:"tau"`
	Deviation float64 `json:"deviation"`
}

// RowsFromSeries numbers the points of s from 1 in file order.
func RowsFromSeries(s model.Series) []SeriesRow {
	rows := make([]SeriesRow, 0, s.Len())
	for i, p := range s.Points() {
		rows = append(rows, SeriesRow{Index: i + 1, Tau: p.X, Deviation: p.Y})
	}
	return rows
}

// Formatter writes rows in one output format.
type Formatter interface {
	Format(rows []SeriesRow) error
}

// Output format names accepted by New.
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

// Formats lists the names accepted by New.
var Formats = []string{FormatTable, FormatJSON, FormatCSV, FormatSummary}

// New returns the formatter for format writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatSummary:
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
