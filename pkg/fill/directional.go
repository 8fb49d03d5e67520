package fill

import (
	"github.com/go-gota/gota/series"
)

// ForwardFill propagates the last valid value forward over missing cells.
// Leading missing cells have no predecessor and stay missing.
type ForwardFill struct{}

// NewForwardFill creates a forward-fill strategy.
func NewForwardFill() *ForwardFill {
	return &ForwardFill{}
}

// Fill carries each valid value down until the next valid value.
func (f *ForwardFill) Fill(s series.Series) (series.Series, int, error) {
	if !s.HasNaN() {
		return s, 0, nil
	}
	vals := values(s)
	filled := 0
	var last interface{}
	for i, v := range vals {
		if v != nil {
			last = v
			continue
		}
		if last != nil {
			vals[i] = last
			filled++
		}
	}
	return series.New(vals, s.Type(), s.Name), filled, nil
}

// Name returns the strategy name.
func (f *ForwardFill) Name() string {
	return "ffill"
}

// BackwardFill propagates the next valid value backward over missing cells.
// Trailing missing cells have no successor and stay missing.
type BackwardFill struct{}

// NewBackwardFill creates a backward-fill strategy.
func NewBackwardFill() *BackwardFill {
	return &BackwardFill{}
}

// Fill carries each valid value up until the previous valid value.
func (f *BackwardFill) Fill(s series.Series) (series.Series, int, error) {
	if !s.HasNaN() {
		return s, 0, nil
	}
	vals := values(s)
	filled := 0
	var next interface{}
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != nil {
			next = vals[i]
			continue
		}
		if next != nil {
			vals[i] = next
			filled++
		}
	}
	return series.New(vals, s.Type(), s.Name), filled, nil
}

// Name returns the strategy name.
func (f *BackwardFill) Name() string {
	return "bfill"
}
