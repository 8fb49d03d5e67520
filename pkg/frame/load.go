package frame

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultNaNValues are the cell values read as missing.
var DefaultNaNValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"}

// LoadOption configures CSV parsing.
type LoadOption func(*loadConfig)

type loadConfig struct {
	delimiter  rune
	lazyQuotes bool
	nanValues  []string
	types      map[string]series.Type
}

func defaultLoadConfig() *loadConfig {
	return &loadConfig{
		delimiter: ',',
		nanValues: DefaultNaNValues,
	}
}

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(r rune) LoadOption {
	return func(c *loadConfig) {
		c.delimiter = r
	}
}

// WithLazyQuotes tolerates bare quotes inside unquoted fields.
func WithLazyQuotes(enabled bool) LoadOption {
	return func(c *loadConfig) {
		c.lazyQuotes = enabled
	}
}

// WithNaNValues replaces the set of cell values read as missing.
func WithNaNValues(values []string) LoadOption {
	return func(c *loadConfig) {
		c.nanValues = values
	}
}

// WithColumnTypes fixes the type of the named columns instead of detecting it.
func WithColumnTypes(types map[string]series.Type) LoadOption {
	return func(c *loadConfig) {
		c.types = types
	}
}

// Load reads a CSV file with a header row into a frame.
func Load(path string, opts ...LoadOption) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PathError{Op: "load", Path: path, Kind: ErrFileNotFound, Err: err}
		}
		return nil, &PathError{Op: "load", Path: path, Kind: ErrIO, Err: err}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Kind: ErrIO, Err: err}
	}
	return decode("load", path, data, opts)
}

// Read parses CSV content from r into a frame.
func Read(r io.Reader, opts ...LoadOption) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &PathError{Op: "read", Path: "-", Kind: ErrIO, Err: err}
	}
	return decode("read", "-", data, opts)
}

func decode(op, path string, data []byte, opts []LoadOption) (*Frame, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &PathError{Op: op, Path: path, Kind: ErrEmptyData}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = cfg.delimiter
	reader.LazyQuotes = cfg.lazyQuotes
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: err}
	}
	if len(records) == 0 {
		return nil, &PathError{Op: op, Path: path, Kind: ErrEmptyData}
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: err}
	}

	// gota refuses a header without data rows; that is a valid 0-row table.
	if len(records) == 1 {
		return headerOnly(op, path, records[0], cfg)
	}

	loadOpts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(cfg.nanValues),
	}
	if len(cfg.types) > 0 {
		if err := checkTypedCells(records, cfg); err != nil {
			return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: err}
		}
		loadOpts = append(loadOpts, dataframe.WithTypes(cfg.types))
	}

	df := dataframe.LoadRecords(records, loadOpts...)
	if df.Err != nil {
		return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: df.Err}
	}

	f, err := fromDataFrame(df)
	if err != nil {
		return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: err}
	}
	return f, nil
}

// checkHeader rejects repeated column names, which gota would rename.
func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// checkTypedCells verifies every non-missing cell of a column with a fixed
// type parses as that type. gota would store such cells as missing.
func checkTypedCells(records [][]string, cfg *loadConfig) error {
	missing := map[string]bool{"NaN": true}
	for _, v := range cfg.nanValues {
		missing[v] = true
	}

	for c, name := range records[0] {
		t, ok := cfg.types[name]
		if !ok {
			continue
		}
		for r, record := range records[1:] {
			cell := record[c]
			if missing[cell] {
				continue
			}
			if !parsesAs(cell, t) {
				return fmt.Errorf("column %q row %d: cannot parse %q as %s", name, r+1, cell, t)
			}
		}
	}
	return nil
}

func parsesAs(s string, t series.Type) bool {
	var err error
	switch t {
	case series.Int:
		_, err = strconv.Atoi(s)
	case series.Float:
		_, err = strconv.ParseFloat(s, 64)
	case series.Bool:
		switch strings.ToLower(s) {
		case "true", "t", "1", "false", "f", "0":
		default:
			err = strconv.ErrSyntax
		}
	}
	return err == nil
}

func headerOnly(op, path string, header []string, cfg *loadConfig) (*Frame, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		t, ok := cfg.types[name]
		if !ok {
			t = series.String
		}
		cols[i] = series.New([]string{}, t, name)
	}
	f, err := New(cols...)
	if err != nil {
		return nil, &PathError{Op: op, Path: path, Kind: ErrParse, Err: err}
	}
	return f, nil
}
