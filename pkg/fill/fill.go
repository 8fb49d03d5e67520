// Package fill provides strategies for replacing missing values in a column.
// Strategies are looked up by name so that an ordered list of names from
// configuration can be turned into a Chain.
package fill

import (
	"github.com/go-gota/gota/series"
)

// Strategy replaces missing values in a single column.
type Strategy interface {
	// Fill returns the column with missing values replaced and the number
	// of cells that were filled. The column length never changes.
	Fill(s series.Series) (series.Series, int, error)

	// Name returns the strategy name for logging/debugging.
	Name() string
}

// values returns the column values with nil for missing cells.
func values(s series.Series) []interface{} {
	out := make([]interface{}, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = e.Val()
	}
	return out
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// numeric returns the non-missing values of s as floats.
func numeric(s series.Series) []float64 {
	out := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if !e.IsNA() {
			out = append(out, e.Float())
		}
	}
	return out
}

// withValue fills every missing cell of s with v, converting the column
// to t first.
func withValue(s series.Series, v interface{}, t series.Type) (series.Series, int) {
	vals := values(s)
	filled := 0
	for i, cur := range vals {
		if cur == nil {
			vals[i] = v
			filled++
		}
	}
	return series.New(vals, t, s.Name), filled
}
