package fill

import (
	"github.com/go-gota/gota/series"
)

// Interpolate fills missing numeric cells by linear interpolation between
// the nearest valid neighbours. Trailing gaps hold the last valid value;
// leading gaps have no left anchor and stay missing.
type Interpolate struct{}

// NewInterpolate creates a linear interpolation strategy.
func NewInterpolate() *Interpolate {
	return &Interpolate{}
}

// Fill interpolates missing cells. The resulting column is float.
func (p *Interpolate) Fill(s series.Series) (series.Series, int, error) {
	if !isNumeric(s.Type()) || !s.HasNaN() {
		return s, 0, nil
	}

	vals := make([]interface{}, s.Len())
	prev := -1
	var prevVal float64
	filled := 0

	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		cur := e.Float()
		vals[i] = cur
		if prev >= 0 && i-prev > 1 {
			step := (cur - prevVal) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				vals[j] = prevVal + step*float64(j-prev)
				filled++
			}
		}
		prev, prevVal = i, cur
	}

	if prev >= 0 {
		for j := prev + 1; j < len(vals); j++ {
			vals[j] = prevVal
			filled++
		}
	}

	if filled == 0 {
		return s, 0, nil
	}
	return series.New(vals, series.Float, s.Name), filled, nil
}

// Name returns the strategy name.
func (p *Interpolate) Name() string {
	return "interpolate"
}
