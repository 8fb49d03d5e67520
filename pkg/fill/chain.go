package fill

import (
	"strings"

	"github.com/go-gota/gota/series"
)

// Chain applies multiple strategies in sequence.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a strategy that applies the given strategies in order.
//
// Example:
//
//	chain := fill.NewChain(
//	    fill.NewForwardFill(),
//	    fill.NewBackwardFill(),
//	)
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
	}
}

// Fill applies all strategies in sequence and sums the filled cells.
func (c *Chain) Fill(s series.Series) (series.Series, int, error) {
	total := 0
	for _, strategy := range c.strategies {
		var n int
		var err error
		s, n, err = strategy.Fill(s)
		if err != nil {
			return s, total, err
		}
		total += n
	}
	return s, total, nil
}

// Strategies returns the chained strategies in order.
func (c *Chain) Strategies() []Strategy {
	out := make([]Strategy, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Name returns the names of all chained strategies.
func (c *Chain) Name() string {
	names := make([]string, len(c.strategies))
	for i, strategy := range c.strategies {
		names[i] = strategy.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
