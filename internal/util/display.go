package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// GetDisplayWidth calculates the actual display width of a string
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces to the given display width.
func PadString(s string, width int, leftAlign bool) string {
	actual := GetDisplayWidth(s)
	if actual >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	text = runewidth.Truncate(text, width, "")
	padding := (width - GetDisplayWidth(text)) / 2
	return PadString(strings.Repeat(" ", padding)+text, width, true)
}
