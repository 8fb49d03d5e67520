package fill

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Factory creates a strategy from the argument following ':' in its name.
// The argument is empty when none was given.
type Factory func(arg string) (Strategy, error)

// ErrUnknownStrategy is returned when a fill method name is not registered.
var ErrUnknownStrategy = errors.New("unknown fill strategy")

// DefaultMethods is the fill order used when none is configured.
var DefaultMethods = []string{"ffill", "bfill"}

var registry = map[string]Factory{}

var aliases = map[string]string{
	"forward-fill":  "ffill",
	"pad":           "ffill",
	"backward-fill": "bfill",
	"backfill":      "bfill",
	"linear":        "interpolate",
}

func init() {
	Register("ffill", noArg(func() Strategy { return NewForwardFill() }))
	Register("bfill", noArg(func() Strategy { return NewBackwardFill() }))
	Register("mean", noArg(func() Strategy { return NewMean() }))
	Register("median", noArg(func() Strategy { return NewMedian() }))
	Register("mode", noArg(func() Strategy { return NewMode() }))
	Register("interpolate", noArg(func() Strategy { return NewInterpolate() }))
	Register("constant", func(arg string) (Strategy, error) {
		if arg == "" {
			return nil, errors.New("constant requires a value, e.g. constant:0")
		}
		return NewConstant(arg), nil
	})
}

func noArg(build func() Strategy) Factory {
	return func(arg string) (Strategy, error) {
		if arg != "" {
			return nil, fmt.Errorf("takes no argument, got %q", arg)
		}
		return build(), nil
	}
}

// Register adds a custom strategy factory.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Available returns the registered strategy names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse resolves a method name such as "ffill", "forward-fill" or
// "constant:0" into a strategy.
func Parse(method string) (Strategy, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(method), ":")
	name = strings.ToLower(name)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, method, strings.Join(Available(), ", "))
	}
	s, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("fill strategy %q: %w", method, err)
	}
	return s, nil
}

// ParseAll resolves an ordered list of method names into a chain.
func ParseAll(methods []string) (*Chain, error) {
	strategies := make([]Strategy, 0, len(methods))
	for _, m := range methods {
		s, err := Parse(m)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return NewChain(strategies...), nil
}
