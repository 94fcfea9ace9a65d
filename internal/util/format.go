package util

import (
	"fmt"
	"strconv"
)

// FormatSeconds renders an interval as the shortest decimal followed by "s",
// e.g. 0.001 -> "0.001s", 100 -> "100s".
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

// FormatScientific renders v in upper-case scientific notation with the
// given number of fractional digits, e.g. (1e-12, 0) -> "1E-12".
func FormatScientific(v float64, digits int) string {
	return fmt.Sprintf("%.*E", digits, v)
}

// FormatValue renders a data value without losing precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
