package preprocess

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler transforms each column to zero mean and unit variance.
// NaN cells are ignored while fitting and stay NaN when transformed.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

var _ Transformer = (*StandardScaler)(nil)

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes the per-column mean and population standard deviation.
// Columns with zero variance, or without any valid value, get a scale of 1.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.New("cannot fit scaler on empty matrix")
	}

	s.mean = make([]float64, cols)
	s.scale = make([]float64, cols)
	for j := 0; j < cols; j++ {
		valid := make([]float64, 0, rows)
		for _, v := range mat.Col(nil, j, X) {
			if !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
		if len(valid) == 0 {
			s.scale[j] = 1
			continue
		}
		mean, std := stat.PopMeanStdDev(valid, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.mean[j] = mean
		s.scale[j] = std
	}
	return nil
}

// Transform scales X with the fitted parameters.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply(X, func(v, mean, scale float64) float64 {
		return (v - mean) / scale
	})
}

// FitTransform fits the scaler on X and returns X scaled.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform undoes Transform.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply(X, func(v, mean, scale float64) float64 {
		return v*scale + mean
	})
}

func (s *StandardScaler) apply(X mat.Matrix, fn func(v, mean, scale float64) float64) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(s.mean) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.mean), cols)
	}
	if rows == 0 {
		return nil, errors.New("cannot scale empty matrix")
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, fn(X.At(i, j), s.mean[j], s.scale[j]))
		}
	}
	return out, nil
}

// IsFitted reports whether Fit has been called.
func (s *StandardScaler) IsFitted() bool {
	return s.mean != nil
}

// Mean returns the fitted per-column means.
func (s *StandardScaler) Mean() []float64 {
	return append([]float64(nil), s.mean...)
}

// Scale returns the fitted per-column scale factors.
func (s *StandardScaler) Scale() []float64 {
	return append([]float64(nil), s.scale...)
}
