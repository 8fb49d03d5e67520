// Package cleaner loads a CSV file and cleans it.
//
// A DataCleaner owns one table. Cleaning drops rows and columns with too
// many missing values, fills the remaining gaps and removes duplicate rows.
// Optional steps label-encode categorical columns and standardize numeric
// ones. Every step replaces the table only when it succeeds.
//
// Basic usage:
//
//	dc, err := cleaner.New("data.csv", cleaner.WithDropThresh(2))
//	if err != nil {
//		return err
//	}
//	if err := dc.CleanData(); err != nil {
//		return err
//	}
//	return dc.Save("data_cleaned.csv")
package cleaner

import (
	"errors"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/datacleaner/internal/logger"
	"github.com/jmylchreest/datacleaner/pkg/fill"
	"github.com/jmylchreest/datacleaner/pkg/frame"
	"github.com/jmylchreest/datacleaner/pkg/preprocess"
)

// DataCleaner holds a loaded table and applies cleaning steps to it.
type DataCleaner struct {
	path   string
	config Config
	chain  *fill.Chain

	df            *frame.Frame
	originalShape frame.Shape
	missingAtLoad int

	stats         *Stats
	encoders      map[string]*preprocess.LabelEncoder
	scaler        *preprocess.StandardScaler
	scaledColumns []string
}

// New loads the CSV file at path.
// Load failures are logged and returned; they match frame.ErrFileNotFound,
// frame.ErrEmptyData, frame.ErrParse or frame.ErrIO.
func New(path string, opts ...Option) (*DataCleaner, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	chain, err := cfg.Validate()
	if err != nil {
		logger.Error("invalid cleaner configuration", "error", err)
		return nil, err
	}

	log := logger.ForFile("load", path)
	df, err := frame.Load(path, cfg.LoadOptions...)
	if err != nil {
		switch {
		case errors.Is(err, frame.ErrFileNotFound):
			log.Error("file not found", "error", err)
		case errors.Is(err, frame.ErrEmptyData):
			log.Error("no data: the file is empty", "error", err)
		case errors.Is(err, frame.ErrParse):
			log.Error("parsing error: the file could not be parsed", "error", err)
		default:
			log.Error("an error occurred while loading the file", "error", err)
		}
		return nil, err
	}

	attrs := []any{"shape", df.Shape().String()}
	if info, err := os.Stat(path); err == nil {
		attrs = append(attrs, "size", humanize.Bytes(uint64(info.Size())))
	}
	log.Info("data loaded successfully", attrs...)

	return newCleaner(path, cfg, chain, df), nil
}

// FromFrame wraps an already loaded frame.
// Load options in the configuration are ignored.
func FromFrame(df *frame.Frame, opts ...Option) (*DataCleaner, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	chain, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return newCleaner("", cfg, chain, df), nil
}

func newCleaner(path string, cfg Config, chain *fill.Chain, df *frame.Frame) *DataCleaner {
	return &DataCleaner{
		path:          path,
		config:        cfg,
		chain:         chain,
		df:            df,
		originalShape: df.Shape(),
		missingAtLoad: df.MissingCount(),
		encoders:      make(map[string]*preprocess.LabelEncoder),
	}
}

// Frame returns the current table.
func (c *DataCleaner) Frame() *frame.Frame {
	return c.df
}

// Path returns the file the table was loaded from, or "" for FromFrame.
func (c *DataCleaner) Path() string {
	return c.path
}

// Config returns the cleaning parameters.
func (c *DataCleaner) Config() Config {
	return c.config
}

// OriginalShape returns the shape at load time.
func (c *DataCleaner) OriginalShape() frame.Shape {
	return c.originalShape
}

// MissingAtLoad returns the number of missing cells at load time.
func (c *DataCleaner) MissingAtLoad() int {
	return c.missingAtLoad
}

// Stats returns the statistics of the last successful CleanData call,
// or nil if it has not run.
func (c *DataCleaner) Stats() *Stats {
	return c.stats
}

// LabelEncoders returns the fitted encoder of each encoded column.
func (c *DataCleaner) LabelEncoders() map[string]*preprocess.LabelEncoder {
	out := make(map[string]*preprocess.LabelEncoder, len(c.encoders))
	for k, v := range c.encoders {
		out[k] = v
	}
	return out
}

// Scaler returns the fitted scaler and the columns it was fitted on,
// or nil if ScaleData has not scaled anything.
func (c *DataCleaner) Scaler() (*preprocess.StandardScaler, []string) {
	return c.scaler, append([]string(nil), c.scaledColumns...)
}

// Save writes the current table to path as CSV.
func (c *DataCleaner) Save(path string) error {
	log := logger.ForFile("save", path)
	if err := c.df.Save(path); err != nil {
		log.Error("an error occurred while saving the file", "error", err)
		return err
	}
	log.Info("cleaned data saved successfully", "shape", c.df.Shape().String())
	return nil
}
