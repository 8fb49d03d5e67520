package cleaner

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/jmylchreest/datacleaner/internal/logger"
	"github.com/jmylchreest/datacleaner/pkg/preprocess"
)

// EncodeData label-encodes every string column.
// Codes follow the sorted order of the distinct values; missing cells stay
// missing. Encoded columns become int columns.
func (c *DataCleaner) EncodeData() error {
	df := c.df
	encoders := make(map[string]*preprocess.LabelEncoder)

	for _, col := range c.df.Columns() {
		if col.Type() != series.String {
			continue
		}
		encoded, le, err := encodeColumn(col)
		if err == nil {
			df, err = df.WithColumn(encoded)
		}
		if err != nil {
			err = &StageError{Stage: "encode", Err: fmt.Errorf("column %q: %w", col.Name, err)}
			logger.Error("an error occurred during encoding", "column", col.Name, "error", err)
			return err
		}
		encoders[col.Name] = le
		logger.Debug("encoded column", "column", col.Name, "classes", len(le.Classes()))
	}

	c.df = df
	for name, le := range encoders {
		c.encoders[name] = le
	}
	logger.Info("categorical data encoded successfully", "columns", len(encoders))
	return nil
}

func encodeColumn(col series.Series) (series.Series, *preprocess.LabelEncoder, error) {
	labels := make([]string, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if e := col.Elem(i); !e.IsNA() {
			labels = append(labels, e.String())
		}
	}

	le := preprocess.NewLabelEncoder()
	codes, err := le.FitTransform(labels)
	if err != nil {
		return series.Series{}, nil, err
	}

	vals := make([]interface{}, col.Len())
	next := 0
	for i := range vals {
		if col.Elem(i).IsNA() {
			continue
		}
		vals[i] = codes[next]
		next++
	}
	return series.New(vals, series.Int, col.Name), le, nil
}

// ScaleData standardizes every numeric column to zero mean and unit
// variance. Missing cells are ignored when fitting and stay missing.
// Scaled columns become float columns. A table with no rows or no numeric
// columns is left unchanged.
func (c *DataCleaner) ScaleData() error {
	var cols []series.Series
	for _, col := range c.df.Columns() {
		if t := col.Type(); t == series.Int || t == series.Float {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 || c.df.Nrow() == 0 {
		logger.Info("no numeric data to scale", "shape", c.df.Shape().String())
		return nil
	}

	scaler := preprocess.NewStandardScaler()
	scaled, err := scaler.FitTransform(toMatrix(cols, c.df.Nrow()))
	if err != nil {
		err = &StageError{Stage: "scale", Err: err}
		logger.Error("an error occurred during scaling", "error", err)
		return err
	}

	df := c.df
	names := make([]string, len(cols))
	for j, col := range cols {
		names[j] = col.Name
		if df, err = df.WithColumn(floatColumn(col.Name, mat.Col(nil, j, scaled))); err != nil {
			err = &StageError{Stage: "scale", Err: fmt.Errorf("column %q: %w", col.Name, err)}
			logger.Error("an error occurred during scaling", "column", col.Name, "error", err)
			return err
		}
	}

	c.df = df
	c.scaler = scaler
	c.scaledColumns = names
	logger.Info("numerical data scaled successfully", "columns", len(names))
	return nil
}

// toMatrix lays columns out as a rows x len(cols) matrix, NaN for missing.
func toMatrix(cols []series.Series, rows int) *mat.Dense {
	X := mat.NewDense(rows, len(cols), nil)
	for j, col := range cols {
		for i := 0; i < rows; i++ {
			v := math.NaN()
			if e := col.Elem(i); !e.IsNA() {
				v = e.Float()
			}
			X.Set(i, j, v)
		}
	}
	return X
}

// floatColumn builds a float series, treating NaN as missing.
func floatColumn(name string, values []float64) series.Series {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			vals[i] = v
		}
	}
	return series.New(vals, series.Float, name)
}
