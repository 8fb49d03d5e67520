// Package schema describes the expected columns of a CSV file.
// A schema fixes column types at load time instead of relying on type
// detection, and can check a loaded frame against its expectations.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/series"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/datacleaner/pkg/frame"
)

// Column type names accepted in schema files.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeString = "string"
	TypeBool   = "bool"
)

// Column describes one expected column.
type Column struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Type        string `json:"type" yaml:"type" validate:"required,oneof=int float string bool"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Schema is an ordered set of expected columns.
type Schema struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []Column `json:"columns" yaml:"columns" validate:"required,min=1,dive"`
}

// ValidationError describes a schema or frame that does not match.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New()

// FromFile loads a schema from a JSON or YAML file.
func FromFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return Schema{}, fmt.Errorf("unsupported schema file format: %s", ext)
	}
}

// FromJSON parses and validates a JSON schema.
func FromJSON(data []byte) (Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("failed to parse JSON schema: %w", err)
	}
	return s, s.Validate()
}

// FromYAML parses and validates a YAML schema.
func FromYAML(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	return s, s.Validate()
}

// Validate checks the schema definition itself.
func (s Schema) Validate() error {
	var errs []error
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			errs = append(errs, ValidationError{
				Field:   e.Namespace(),
				Message: formatValidationError(e),
			})
		}
	}

	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name != "" && seen[c.Name] {
			errs = append(errs, ValidationError{Field: c.Name, Message: "duplicate column"})
		}
		seen[c.Name] = true
	}
	return errors.Join(errs...)
}

// Types returns the column types keyed by column name.
func (s Schema) Types() map[string]series.Type {
	types := make(map[string]series.Type, len(s.Columns))
	for _, c := range s.Columns {
		types[c.Name] = seriesType(c.Type)
	}
	return types
}

// LoadOption returns a frame load option applying the schema's types.
func (s Schema) LoadOption() frame.LoadOption {
	return frame.WithColumnTypes(s.Types())
}

// Check compares a loaded frame against the schema.
// Missing required columns and type mismatches are reported; extra
// columns are allowed.
func (s Schema) Check(f *frame.Frame) []ValidationError {
	var errs []ValidationError
	for _, c := range s.Columns {
		col, ok := f.Column(c.Name)
		if !ok {
			if c.Required {
				errs = append(errs, ValidationError{Field: c.Name, Message: "required column is missing"})
			}
			continue
		}
		if want := seriesType(c.Type); col.Type() != want {
			errs = append(errs, ValidationError{
				Field:   c.Name,
				Message: fmt.Sprintf("expected %s, got %s", want, col.Type()),
			})
		}
	}
	return errs
}

func seriesType(name string) series.Type {
	switch name {
	case TypeInt:
		return series.Int
	case TypeFloat:
		return series.Float
	case TypeBool:
		return series.Bool
	default:
		return series.String
	}
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
