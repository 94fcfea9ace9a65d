package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-allan-plot/internal/util"
)

// SummaryFormatter writes a short report about a series.
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Summary holds the figures reported by SummaryFormatter.
type Summary struct {
	Points    int
	MinTau    float64
	MaxTau    float64
	MinDev    SeriesRow
	MaxDev    SeriesRow
	Ascending bool // tau strictly increases in file order
}

// Summarize computes the summary of rows. It returns false for no rows.
func Summarize(rows []SeriesRow) (Summary, bool) {
	if len(rows) == 0 {
		return Summary{}, false
	}

	s := Summary{
		Points:    len(rows),
		MinTau:    rows[0].Tau,
		MaxTau:    rows[0].Tau,
		MinDev:    rows[0],
		MaxDev:    rows[0],
		Ascending: true,
	}
	for i, row := range rows[1:] {
		if row.Tau < s.MinTau {
			s.MinTau = row.Tau
		}
		if row.Tau > s.MaxTau {
			s.MaxTau = row.Tau
		}
		if row.Deviation < s.MinDev.Deviation {
			s.MinDev = row
		}
		if row.Deviation > s.MaxDev.Deviation {
			s.MaxDev = row
		}
		if row.Tau <= rows[i].Tau {
			s.Ascending = false
		}
	}
	return s, true
}

// Format writes the summary report.
func (f *SummaryFormatter) Format(rows []SeriesRow) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Allan Deviation Data Summary")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	s, ok := Summarize(rows)
	if !ok {
		fmt.Fprintln(&b, "No data to summarize")
	} else {
		fmt.Fprintf(&b, "Points:            %d\n", s.Points)
		fmt.Fprintf(&b, "Tau Range:         %s to %s\n", util.FormatSeconds(s.MinTau), util.FormatSeconds(s.MaxTau))
		fmt.Fprintf(&b, "Minimum Deviation: %s at %s\n",
			util.FormatScientific(s.MinDev.Deviation, 3), util.FormatSeconds(s.MinDev.Tau))
		fmt.Fprintf(&b, "Maximum Deviation: %s at %s\n",
			util.FormatScientific(s.MaxDev.Deviation, 3), util.FormatSeconds(s.MaxDev.Tau))
		if !s.Ascending {
			fmt.Fprintln(&b, "Note: tau values are not in ascending order")
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(f.w, b.String())
	return err
}
