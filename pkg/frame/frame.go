// Package frame provides the in-memory table the cleaner operates on.
//
// A Frame is an ordered list of named gota series sharing one row count.
// Unlike a gota DataFrame it may legally hold zero columns or zero rows,
// which the cleaning rules can produce.
package frame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Shape is the (rows, columns) size of a frame.
type Shape struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

// String formats the shape as "(rows, columns)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Columns)
}

// Frame is a two-dimensional labeled table.
// Frames are treated as values: operations return a new Frame.
type Frame struct {
	columns []series.Series
	nrows   int
}

// New creates a frame from the given columns.
// All columns must have the same length and distinct names.
func New(columns ...series.Series) (*Frame, error) {
	f := &Frame{columns: make([]series.Series, 0, len(columns))}
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		if col.Err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, col.Err)
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column name: %q", col.Name)
		}
		seen[col.Name] = true
		if i == 0 {
			f.nrows = col.Len()
		} else if col.Len() != f.nrows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), f.nrows)
		}
		f.columns = append(f.columns, col)
	}
	return f, nil
}

// Empty returns a frame with no columns and the given row count.
func Empty(rows int) *Frame {
	return &Frame{nrows: rows}
}

func fromDataFrame(df dataframe.DataFrame) (*Frame, error) {
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		cols = append(cols, df.Col(name))
	}
	f, err := New(cols...)
	if err != nil {
		return nil, err
	}
	f.nrows = df.Nrow()
	return f, nil
}

// Shape returns the frame dimensions.
func (f *Frame) Shape() Shape {
	return Shape{Rows: f.nrows, Columns: len(f.columns)}
}

// Nrow returns the number of rows.
func (f *Frame) Nrow() int { return f.nrows }

// Ncol returns the number of columns.
func (f *Frame) Ncol() int { return len(f.columns) }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Types returns the column types in order.
func (f *Frame) Types() []series.Type {
	types := make([]series.Type, len(f.columns))
	for i, col := range f.columns {
		types[i] = col.Type()
	}
	return types
}

// Columns returns the frame's columns in order.
func (f *Frame) Columns() []series.Series {
	out := make([]series.Series, len(f.columns))
	copy(out, f.columns)
	return out
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (series.Series, bool) {
	for _, col := range f.columns {
		if col.Name == name {
			return col, true
		}
	}
	return series.Series{}, false
}

// WithColumn returns a frame where the column named s.Name is replaced by s.
// The replacement may change the column type but not its length.
func (f *Frame) WithColumn(s series.Series) (*Frame, error) {
	if s.Err != nil {
		return nil, fmt.Errorf("column %q: %w", s.Name, s.Err)
	}
	if s.Len() != f.nrows {
		return nil, fmt.Errorf("column %q has %d rows, want %d", s.Name, s.Len(), f.nrows)
	}
	out := &Frame{columns: f.Columns(), nrows: f.nrows}
	for i, col := range out.columns {
		if col.Name == s.Name {
			out.columns[i] = s
			return out, nil
		}
	}
	return nil, fmt.Errorf("unknown column: %q", s.Name)
}

// KeepColumns returns a frame holding only the named columns, in frame order.
func (f *Frame) KeepColumns(names []string) *Frame {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := &Frame{nrows: f.nrows}
	for _, col := range f.columns {
		if keep[col.Name] {
			out.columns = append(out.columns, col)
		}
	}
	return out
}

// Subset returns a frame holding the given rows, in the given order.
func (f *Frame) Subset(rows []int) (*Frame, error) {
	for _, r := range rows {
		if r < 0 || r >= f.nrows {
			return nil, fmt.Errorf("row index %d out of range [0,%d)", r, f.nrows)
		}
	}
	out := &Frame{columns: make([]series.Series, len(f.columns)), nrows: len(rows)}
	for i, col := range f.columns {
		vals := make([]interface{}, len(rows))
		for j, r := range rows {
			vals[j] = col.Elem(r).Val()
		}
		out.columns[i] = series.New(vals, col.Type(), col.Name)
	}
	return out, nil
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n > f.nrows {
		n = f.nrows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	out, _ := f.Subset(rows)
	return out
}

// IsMissing reports whether the cell at row r of column c is missing.
func (f *Frame) IsMissing(r, c int) bool {
	return f.columns[c].Elem(r).IsNA()
}

// MissingCount returns the number of missing cells in the frame.
func (f *Frame) MissingCount() int {
	total := 0
	for _, n := range f.ColumnMissingCounts() {
		total += n
	}
	return total
}

// ColumnMissingCounts returns the missing-cell count of each column.
func (f *Frame) ColumnMissingCounts() []int {
	counts := make([]int, len(f.columns))
	for c, col := range f.columns {
		for _, na := range col.IsNaN() {
			if na {
				counts[c]++
			}
		}
	}
	return counts
}

// RowMissingCounts returns the missing-cell count of each row.
func (f *Frame) RowMissingCounts() []int {
	counts := make([]int, f.nrows)
	for _, col := range f.columns {
		for r, na := range col.IsNaN() {
			if na {
				counts[r]++
			}
		}
	}
	return counts
}

// RowKey returns a string identifying the values of row r.
// Two rows have equal keys exactly when all their cells are equal,
// counting missing as equal to missing.
//
// Values are quoted, so a missing cell (written as a bare NA) or a value
// containing the separator cannot collide with another row.
func (f *Frame) RowKey(r int) string {
	var sb strings.Builder
	for c, col := range f.columns {
		if c > 0 {
			sb.WriteByte(',')
		}
		e := col.Elem(r)
		if e.IsNA() {
			sb.WriteString("NA")
			continue
		}
		sb.WriteString(strconv.Quote(cellString(e)))
	}
	return sb.String()
}

// Records returns the header row followed by every data row.
// Missing cells are written as naRep.
func (f *Frame) Records(naRep string) [][]string {
	records := make([][]string, 0, f.nrows+1)
	records = append(records, f.Names())
	for r := 0; r < f.nrows; r++ {
		row := make([]string, len(f.columns))
		for c, col := range f.columns {
			e := col.Elem(r)
			if e.IsNA() {
				row[c] = naRep
			} else {
				row[c] = cellString(e)
			}
		}
		records = append(records, row)
	}
	return records
}

// String renders the frame with gota's table printer.
func (f *Frame) String() string {
	if len(f.columns) == 0 {
		return fmt.Sprintf("[%dx0] DataFrame\n", f.nrows)
	}
	return dataframe.New(f.columns...).String()
}

func cellString(e series.Element) string {
	switch v := e.Val().(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return e.String()
	}
}
