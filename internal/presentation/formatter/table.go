package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-allan-plot/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w:       w,
		headers: []string{"#", "Tau", "Allan Deviation"},
	}
}

func (f *TableFormatter) Format(rows []SeriesRow) error {
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{
			fmt.Sprintf("%d", row.Index),
			util.FormatSeconds(row.Tau),
			util.FormatScientific(row.Deviation, 3),
		})
	}
	widths := f.calculateColumnWidths(body)

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, values := range body {
		f.writeRow(&b, values, widths)
	}
	if len(body) > 0 {
		f.writeBorder(&b, widths, "middle")
	}
	f.writeRow(&b, []string{"Total", fmt.Sprintf("%d points", len(rows)), ""}, widths)
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(f.w, b.String())
	return err
}

// calculateColumnWidths determines the display width of each column
func (f *TableFormatter) calculateColumnWidths(body [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	// "Total" and "N points" share the footer row
	footer := []string{"Total", fmt.Sprintf("%d points", len(body))}
	for i, value := range footer {
		if w := util.GetDisplayWidth(value); w > widths[i] {
			widths[i] = w
		}
	}
	for _, values := range body {
		for i, value := range values {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeBorder writes table borders (top, middle, bottom)
func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// writeRow writes one row; the index column is left-aligned, numbers right-aligned
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		b.WriteString(" ")
		b.WriteString(util.PadString(value, widths[i], i == 0))
		b.WriteString(" │")
	}
	b.WriteString("\n")
}
