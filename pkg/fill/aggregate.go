package fill

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/series"
)

// Mean fills missing numeric cells with the column mean.
// Non-numeric columns and columns without any valid value pass through.
type Mean struct{}

// NewMean creates a mean-fill strategy.
func NewMean() *Mean {
	return &Mean{}
}

// Fill replaces missing cells with the mean of the valid cells.
// The resulting column is float.
func (m *Mean) Fill(s series.Series) (series.Series, int, error) {
	if !isNumeric(s.Type()) || !s.HasNaN() {
		return s, 0, nil
	}
	nums := numeric(s)
	if len(nums) == 0 {
		return s, 0, nil
	}
	out, n := withValue(s, series.Floats(nums).Mean(), series.Float)
	return out, n, nil
}

// Name returns the strategy name.
func (m *Mean) Name() string {
	return "mean"
}

// Median fills missing numeric cells with the column median.
type Median struct{}

// NewMedian creates a median-fill strategy.
func NewMedian() *Median {
	return &Median{}
}

// Fill replaces missing cells with the median of the valid cells.
// The resulting column is float.
func (m *Median) Fill(s series.Series) (series.Series, int, error) {
	if !isNumeric(s.Type()) || !s.HasNaN() {
		return s, 0, nil
	}
	nums := numeric(s)
	if len(nums) == 0 {
		return s, 0, nil
	}
	out, n := withValue(s, series.Floats(nums).Median(), series.Float)
	return out, n, nil
}

// Name returns the strategy name.
func (m *Median) Name() string {
	return "median"
}

// Mode fills missing cells with the most frequent valid value.
// Ties go to the value that sorts first. Works for every column type.
type Mode struct{}

// NewMode creates a mode-fill strategy.
func NewMode() *Mode {
	return &Mode{}
}

// Fill replaces missing cells with the column mode.
func (m *Mode) Fill(s series.Series) (series.Series, int, error) {
	if !s.HasNaN() {
		return s, 0, nil
	}

	type candidate struct {
		value interface{}
		count int
	}
	byKey := make(map[string]*candidate)
	for _, v := range values(s) {
		if v == nil {
			continue
		}
		key := fmt.Sprint(v)
		if c, ok := byKey[key]; ok {
			c.count++
		} else {
			byKey[key] = &candidate{value: v, count: 1}
		}
	}
	if len(byKey) == 0 {
		return s, 0, nil
	}

	candidates := make([]*candidate, 0, len(byKey))
	for _, c := range byKey {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return less(candidates[i].value, candidates[j].value)
	})

	out, n := withValue(s, candidates[0].value, s.Type())
	return out, n, nil
}

// Name returns the strategy name.
func (m *Mode) Name() string {
	return "mode"
}

// less orders two values of the same column type.
func less(a, b interface{}) bool {
	switch av := a.(type) {
	case int:
		return av < b.(int)
	case float64:
		return av < b.(float64)
	case bool:
		return !av && b.(bool)
	case string:
		return av < b.(string)
	default:
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
}
