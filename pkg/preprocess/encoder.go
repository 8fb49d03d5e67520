package preprocess

import (
	"fmt"
	"sort"
)

// LabelEncoder maps each distinct category to an integer in [0, k).
// Classes are sorted, so a given set of labels always encodes the same way.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates an unfitted encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit learns the distinct labels.
func (le *LabelEncoder) Fit(labels []string) {
	seen := make(map[string]bool, len(labels))
	classes := make([]string, 0)
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)

	le.classes = classes
	le.index = make(map[string]int, len(classes))
	for i, c := range classes {
		le.index[c] = i
	}
}

// Transform encodes labels seen during Fit.
func (le *LabelEncoder) Transform(labels []string) ([]int, error) {
	if !le.IsFitted() {
		return nil, ErrNotFitted
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		code, ok := le.index[l]
		if !ok {
			return nil, fmt.Errorf("unknown label: %q", l)
		}
		out[i] = code
	}
	return out, nil
}

// FitTransform fits on labels and returns their codes.
func (le *LabelEncoder) FitTransform(labels []string) ([]int, error) {
	le.Fit(labels)
	return le.Transform(labels)
}

// InverseTransform maps codes back to labels.
func (le *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	if !le.IsFitted() {
		return nil, ErrNotFitted
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(le.classes) {
			return nil, fmt.Errorf("unknown code: %d", c)
		}
		out[i] = le.classes[c]
	}
	return out, nil
}

// Classes returns the fitted labels; a label's code is its index.
func (le *LabelEncoder) Classes() []string {
	return append([]string(nil), le.classes...)
}

// IsFitted reports whether Fit has been called.
func (le *LabelEncoder) IsFitted() bool {
	return le.index != nil
}
