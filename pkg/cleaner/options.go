package cleaner

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/datacleaner/pkg/fill"
	"github.com/jmylchreest/datacleaner/pkg/frame"
)

// Default thresholds.
const (
	DefaultDropThresh   = 3
	DefaultNanColThresh = 0.9
	DefaultHeadRows     = 5
)

// Config holds the cleaning parameters.
type Config struct {
	// DropThresh removes rows with DropThresh or more missing values.
	DropThresh int `json:"drop_thresh" yaml:"drop_thresh" mapstructure:"drop_thresh" validate:"min=1"`

	// FillMethods are applied in order to every column.
	// Nil means fill.DefaultMethods; an empty, non-nil slice disables filling.
	FillMethods []string `json:"fill_methods" yaml:"fill_methods" mapstructure:"fill_methods"`

	// NanColThresh drops columns whose missing fraction is greater than this.
	NanColThresh float64 `json:"nan_col_thresh" yaml:"nan_col_thresh" mapstructure:"nan_col_thresh" validate:"gte=0,lte=1"`

	// HeadRows is the number of rows shown in the summary.
	HeadRows int `json:"head_rows" yaml:"head_rows" mapstructure:"head_rows" validate:"gte=0"`

	// LoadOptions are passed to the CSV loader.
	LoadOptions []frame.LoadOption `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns the default cleaning parameters.
func DefaultConfig() Config {
	return Config{
		DropThresh:   DefaultDropThresh,
		NanColThresh: DefaultNanColThresh,
		HeadRows:     DefaultHeadRows,
	}
}

// Methods returns the effective fill methods.
func (c Config) Methods() []string {
	if c.FillMethods == nil {
		return append([]string(nil), fill.DefaultMethods...)
	}
	return c.FillMethods
}

var validate = validator.New()

// Validate checks the configuration and resolves the fill methods.
func (c Config) Validate() (*fill.Chain, error) {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		errs := make([]error, 0, len(verrs))
		for _, e := range verrs {
			errs = append(errs, fmt.Errorf("%s: %s", e.Field(), formatValidationError(e)))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	chain, err := fill.ParseAll(c.Methods())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return chain, nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// Option configures a DataCleaner.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithDropThresh sets the per-row missing value threshold.
func WithDropThresh(n int) Option {
	return func(c *Config) {
		c.DropThresh = n
	}
}

// WithFillMethods sets the fill methods, applied in order.
func WithFillMethods(methods ...string) Option {
	return func(c *Config) {
		c.FillMethods = append([]string{}, methods...)
	}
}

// WithNanColThresh sets the per-column missing fraction threshold.
func WithNanColThresh(t float64) Option {
	return func(c *Config) {
		c.NanColThresh = t
	}
}

// WithHeadRows sets how many rows the summary shows.
func WithHeadRows(n int) Option {
	return func(c *Config) {
		c.HeadRows = n
	}
}

// WithLoadOptions adds options for reading the CSV file.
func WithLoadOptions(opts ...frame.LoadOption) Option {
	return func(c *Config) {
		c.LoadOptions = append(c.LoadOptions, opts...)
	}
}
