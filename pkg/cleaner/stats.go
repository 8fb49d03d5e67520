package cleaner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmylchreest/datacleaner/pkg/frame"
)

// Stats captures what the last CleanData call did.
type Stats struct {
	InputShape  frame.Shape `json:"input_shape" yaml:"input_shape"`
	OutputShape frame.Shape `json:"output_shape" yaml:"output_shape"`

	// Row and column removals
	EmptyRowsDropped  int      `json:"empty_rows_dropped" yaml:"empty_rows_dropped"`
	ColumnsDropped    []string `json:"columns_dropped" yaml:"columns_dropped"`
	SparseRowsDropped int      `json:"sparse_rows_dropped" yaml:"sparse_rows_dropped"`
	DuplicatesDropped int      `json:"duplicates_dropped" yaml:"duplicates_dropped"`

	// Cells filled per fill method
	CellsFilled map[string]int `json:"cells_filled" yaml:"cells_filled"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		CellsFilled: make(map[string]int),
	}
}

// RowsDropped returns the total number of rows removed.
func (s *Stats) RowsDropped() int {
	return s.EmptyRowsDropped + s.SparseRowsDropped + s.DuplicatesDropped
}

// TotalFilled returns the sum of all filled cells.
func (s *Stats) TotalFilled() int {
	total := 0
	for _, n := range s.CellsFilled {
		total += n
	}
	return total
}

// RecordFill records cells filled by a method.
func (s *Stats) RecordFill(method string, n int) {
	s.CellsFilled[method] += n
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Shape: %s -> %s\n", s.InputShape, s.OutputShape))
	sb.WriteString(fmt.Sprintf("Rows dropped: %d (empty %d, sparse %d, duplicate %d)\n",
		s.RowsDropped(), s.EmptyRowsDropped, s.SparseRowsDropped, s.DuplicatesDropped))

	if len(s.ColumnsDropped) > 0 {
		sb.WriteString(fmt.Sprintf("Columns dropped: %s\n", strings.Join(s.ColumnsDropped, ", ")))
	}

	if len(s.CellsFilled) > 0 {
		methods := make([]string, 0, len(s.CellsFilled))
		for m := range s.CellsFilled {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		parts := make([]string, 0, len(methods))
		for _, m := range methods {
			parts = append(parts, fmt.Sprintf("%s=%d", m, s.CellsFilled[m]))
		}
		sb.WriteString(fmt.Sprintf("Cells filled: %d (%s)\n", s.TotalFilled(), strings.Join(parts, ", ")))
	}

	sb.WriteString(fmt.Sprintf("Duration: %v\n", s.Duration))
	return sb.String()
}
