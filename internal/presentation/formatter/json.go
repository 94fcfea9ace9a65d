package formatter

import (
	"io"
	"math"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(rows []SeriesRow) error {
	if rows == nil {
		rows = []SeriesRow{}
	}
	data, err := sonic.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.w.Write(append(data, '\n'))
	return err
}

// MarshalJSON writes NaN and ±Inf as null, which JSON has no number for.
func (r SeriesRow) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Index     int      `json:"index"`
		Tau       *float64 `json:"tau"`
		Deviation *float64 `json:"deviation"`
	}{
		Index:     r.Index,
		Tau:       finite(r.Tau),
		Deviation: finite(r.Deviation),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
