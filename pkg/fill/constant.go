package fill

import (
	"fmt"

	"github.com/go-gota/gota/series"
	"github.com/spf13/cast"
)

// Constant fills missing cells with a fixed value coerced to the column type.
type Constant struct {
	value string
}

// NewConstant creates a constant-fill strategy.
func NewConstant(value string) *Constant {
	return &Constant{value: value}
}

// Fill replaces missing cells with the constant.
// It fails if the constant cannot be represented in the column type.
func (c *Constant) Fill(s series.Series) (series.Series, int, error) {
	if !s.HasNaN() {
		return s, 0, nil
	}
	v, err := c.coerce(s.Type())
	if err != nil {
		return s, 0, fmt.Errorf("column %q: %w", s.Name, err)
	}
	out, n := withValue(s, v, s.Type())
	return out, n, nil
}

func (c *Constant) coerce(t series.Type) (interface{}, error) {
	switch t {
	case series.Int:
		return cast.ToIntE(c.value)
	case series.Float:
		return cast.ToFloat64E(c.value)
	case series.Bool:
		return cast.ToBoolE(c.value)
	default:
		return c.value, nil
	}
}

// Name returns the strategy name including its value.
func (c *Constant) Name() string {
	return "constant:" + c.value
}
