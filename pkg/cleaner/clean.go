package cleaner

import (
	"time"

	"github.com/jmylchreest/datacleaner/internal/logger"
	"github.com/jmylchreest/datacleaner/pkg/frame"
)

type step struct {
	name  string
	apply func(df *frame.Frame, stats *Stats) (*frame.Frame, error)
}

// CleanData runs the cleaning pipeline:
//
//  1. drop rows where every value is missing
//  2. drop columns whose missing fraction exceeds NanColThresh
//  3. drop rows with DropThresh or more missing values
//  4. fill missing values with each fill method in order
//  5. drop duplicate rows, keeping the first occurrence
//
// On failure the table is left unchanged and a *StageError is returned.
func (c *DataCleaner) CleanData() error {
	start := time.Now()
	stats := NewStats()
	stats.InputShape = c.df.Shape()

	steps := []step{
		{"drop_empty_rows", c.dropEmptyRows},
		{"drop_sparse_columns", c.dropSparseColumns},
		{"drop_sparse_rows", c.dropSparseRows},
		{"fill_missing", c.fillMissing},
		{"drop_duplicates", c.dropDuplicates},
	}

	df := c.df
	for _, s := range steps {
		next, err := s.apply(df, stats)
		if err != nil {
			err = &StageError{Stage: s.name, Err: err}
			logger.Error("an error occurred during data cleaning", "stage", s.name, "error", err)
			return err
		}
		df = next
	}

	stats.OutputShape = df.Shape()
	stats.Duration = time.Since(start)
	c.df = df
	c.stats = stats

	logger.Info("data cleaning completed successfully",
		"shape", df.Shape().String(),
		"rows_dropped", stats.RowsDropped(),
		"columns_dropped", len(stats.ColumnsDropped),
		"cells_filled", stats.TotalFilled(),
		"duration", stats.Duration)
	return nil
}

func (c *DataCleaner) dropEmptyRows(df *frame.Frame, stats *Stats) (*frame.Frame, error) {
	ncol := df.Ncol()
	out, err := keepRows(df, func(missing int) bool { return ncol > 0 && missing < ncol })
	if err != nil {
		return nil, err
	}
	stats.EmptyRowsDropped = df.Nrow() - out.Nrow()
	logger.Debug("dropped rows where all values are missing",
		"dropped", stats.EmptyRowsDropped, "shape", out.Shape().String())
	return out, nil
}

// A column is kept when its non-missing count reaches int((1-t)*rows).
// With no rows left every column is dropped.
func (c *DataCleaner) dropSparseColumns(df *frame.Frame, stats *Stats) (*frame.Frame, error) {
	n := df.Nrow()
	minPresent := int((1 - c.config.NanColThresh) * float64(n))

	keep := make([]string, 0, df.Ncol())
	names := df.Names()
	for i, missing := range df.ColumnMissingCounts() {
		if n > 0 && n-missing >= minPresent {
			keep = append(keep, names[i])
		} else {
			stats.ColumnsDropped = append(stats.ColumnsDropped, names[i])
		}
	}

	out := df.KeepColumns(keep)
	logger.Debug("dropped columns with too many missing values",
		"threshold", c.config.NanColThresh,
		"dropped", stats.ColumnsDropped,
		"shape", out.Shape().String())
	return out, nil
}

func (c *DataCleaner) dropSparseRows(df *frame.Frame, stats *Stats) (*frame.Frame, error) {
	limit := c.config.DropThresh - 1
	out, err := keepRows(df, func(missing int) bool { return missing <= limit })
	if err != nil {
		return nil, err
	}
	stats.SparseRowsDropped = df.Nrow() - out.Nrow()
	logger.Debug("dropped rows with too many missing values",
		"threshold", c.config.DropThresh,
		"dropped", stats.SparseRowsDropped,
		"shape", out.Shape().String())
	return out, nil
}

func (c *DataCleaner) fillMissing(df *frame.Frame, stats *Stats) (*frame.Frame, error) {
	for _, strategy := range c.chain.Strategies() {
		for _, col := range df.Columns() {
			filled, n, err := strategy.Fill(col)
			if err != nil {
				return nil, err
			}
			if n == 0 && filled.Type() == col.Type() {
				continue
			}
			if df, err = df.WithColumn(filled); err != nil {
				return nil, err
			}
			stats.RecordFill(strategy.Name(), n)
		}
		logger.Debug("filled missing values",
			"method", strategy.Name(),
			"filled", stats.CellsFilled[strategy.Name()],
			"remaining", df.MissingCount())
	}
	return df, nil
}

func (c *DataCleaner) dropDuplicates(df *frame.Frame, stats *Stats) (*frame.Frame, error) {
	seen := make(map[string]bool, df.Nrow())
	rows := make([]int, 0, df.Nrow())
	for r := 0; r < df.Nrow(); r++ {
		key := df.RowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, r)
	}

	out, err := df.Subset(rows)
	if err != nil {
		return nil, err
	}
	stats.DuplicatesDropped = df.Nrow() - out.Nrow()
	logger.Debug("dropped duplicate rows",
		"dropped", stats.DuplicatesDropped, "shape", out.Shape().String())
	return out, nil
}

// keepRows returns the rows whose missing-cell count satisfies keep.
func keepRows(df *frame.Frame, keep func(missing int) bool) (*frame.Frame, error) {
	counts := df.RowMissingCounts()
	rows := make([]int, 0, len(counts))
	for r, missing := range counts {
		if keep(missing) {
			rows = append(rows, r)
		}
	}
	return df.Subset(rows)
}
