// Package preprocess provides fitted transforms for preparing table columns
// for modelling: label encoding of categories and standard scaling of
// numeric features.
package preprocess

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned when a transform is used before Fit.
var ErrNotFitted = errors.New("transformer is not fitted")

// Transformer is a fitted matrix transform.
type Transformer interface {
	// Fit learns the parameters needed for the transform.
	Fit(X mat.Matrix) error

	// Transform applies the learned transform.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit and Transform on the same data.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
