package cleaner

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/jmylchreest/datacleaner/internal/logger"
	"github.com/jmylchreest/datacleaner/pkg/fill"
	"github.com/jmylchreest/datacleaner/pkg/frame"
)

const tolerance = 1e-9

// captureLogs routes log output to a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	logger.Init(logger.Options{Output: buf, Debug: true})
	t.Cleanup(func() { logger.Init(logger.Options{}) })
	return buf
}

func fromCSV(t *testing.T, data string, opts ...Option) *DataCleaner {
	t.Helper()
	df, err := frame.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	dc, err := FromFrame(df, opts...)
	if err != nil {
		t.Fatalf("FromFrame() error = %v", err)
	}
	return dc
}

// --- Construction Tests ---

func TestNew_LoadsFile(t *testing.T) {
	dc, err := New(filepath.Join("testdata", "missing.csv"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := dc.OriginalShape(); got != (frame.Shape{Rows: 5, Columns: 4}) {
		t.Errorf("OriginalShape() = %v, want (5, 4)", got)
	}
	if got := dc.MissingAtLoad(); got != 12 {
		t.Errorf("MissingAtLoad() = %d, want 12", got)
	}
	if dc.Stats() != nil {
		t.Error("Stats() should be nil before CleanData")
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DropThresh != 3 {
		t.Errorf("DropThresh = %d, want 3", cfg.DropThresh)
	}
	if cfg.NanColThresh != 0.9 {
		t.Errorf("NanColThresh = %v, want 0.9", cfg.NanColThresh)
	}
	methods := cfg.Methods()
	if len(methods) != 2 || methods[0] != "ffill" || methods[1] != "bfill" {
		t.Errorf("Methods() = %v, want [ffill bfill]", methods)
	}
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing_file", filepath.Join("testdata", "nope.csv"), frame.ErrFileNotFound},
		{"empty_file", filepath.Join("testdata", "empty.csv"), frame.ErrEmptyData},
		{"ragged_rows", filepath.Join("testdata", "ragged.csv"), frame.ErrParse},
		{"directory", dir, frame.ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			dc, err := New(tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if dc != nil {
				t.Error("New() returned a cleaner on error")
			}
			out := logs.String()
			if !strings.Contains(out, "level=ERROR") {
				t.Errorf("expected error log, got %q", out)
			}
			if !strings.Contains(out, tt.path) {
				t.Errorf("expected log to name %q, got %q", tt.path, out)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	path := filepath.Join("testdata", "missing.csv")
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero_drop_thresh", WithDropThresh(0), ErrInvalidConfig},
		{"col_thresh_above_one", WithNanColThresh(1.5), ErrInvalidConfig},
		{"col_thresh_negative", WithNanColThresh(-0.1), ErrInvalidConfig},
		{"unknown_fill", WithFillMethods("ffill", "bogus"), fill.ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			_, err := New(path, tt.opt)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWithConfig(t *testing.T) {
	cfg := Config{DropThresh: 1, NanColThresh: 0.5, FillMethods: []string{"mean"}, HeadRows: 2}
	dc := fromCSV(t, "a\n1\n", WithConfig(cfg))
	if got := dc.Config(); got.DropThresh != 1 || got.NanColThresh != 0.5 || got.HeadRows != 2 {
		t.Errorf("Config() = %+v", got)
	}
}

// --- CleanData Tests ---

func TestCleanData_Scenario(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "missing.csv"), WithDropThresh(2), WithNanColThresh(0.6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}

	df := dc.Frame()
	if got := df.Shape(); got != (frame.Shape{Rows: 3, Columns: 3}) {
		t.Fatalf("Shape() = %v, want (3, 3)", got)
	}
	names := df.Names()
	if strings.Join(names, ",") != "A,B,C" {
		t.Errorf("Names() = %v, want [A B C]", names)
	}
	if got := df.MissingCount(); got != 0 {
		t.Errorf("MissingCount() = %d, want 0", got)
	}

	want := [][]string{{"A", "B", "C"}, {"1", "4", "1"}, {"4", "4", "1"}, {"4", "5", "5"}}
	got := df.Records("")
	for i := range want {
		if strings.Join(got[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}

	stats := dc.Stats()
	if len(stats.ColumnsDropped) != 1 || stats.ColumnsDropped[0] != "D" {
		t.Errorf("ColumnsDropped = %v, want [D]", stats.ColumnsDropped)
	}
	if stats.SparseRowsDropped != 2 {
		t.Errorf("SparseRowsDropped = %d, want 2", stats.SparseRowsDropped)
	}
	if stats.TotalFilled() != 3 {
		t.Errorf("TotalFilled() = %d, want 3", stats.TotalFilled())
	}

	// The original shape never changes.
	if got := dc.OriginalShape(); got != (frame.Shape{Rows: 5, Columns: 4}) {
		t.Errorf("OriginalShape() = %v, want (5, 4)", got)
	}
}

func TestCleanData_Properties(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		dropThresh int
		colThresh  float64
		methods    []string
	}{
		{"defaults", "a,b,c\n1,,3\n,,\n4,5,\n,,9\n", 3, 0.9, nil},
		{"strict_rows", "a,b,c\n1,,3\n,2,\n4,5,6\n", 1, 0.9, []string{}},
		{"strict_cols", "a,b,c\n1,,3\n2,,\n4,5,6\n5,,6\n", 3, 0.2, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			opts := []Option{WithDropThresh(tt.dropThresh), WithNanColThresh(tt.colThresh)}
			if tt.methods != nil {
				opts = append(opts, WithFillMethods(tt.methods...))
			}
			dc := fromCSV(t, tt.data, opts...)
			before := dc.Frame().Shape()
			if err := dc.CleanData(); err != nil {
				t.Fatalf("CleanData() error = %v", err)
			}
			df := dc.Frame()

			if df.Nrow() > before.Rows || df.Ncol() > before.Columns {
				t.Errorf("shape grew from %v to %v", before, df.Shape())
			}
			for r, missing := range df.RowMissingCounts() {
				if missing >= tt.dropThresh {
					t.Errorf("row %d has %d missing, threshold %d", r, missing, tt.dropThresh)
				}
			}
			seen := map[string]bool{}
			for r := 0; r < df.Nrow(); r++ {
				key := df.RowKey(r)
				if seen[key] {
					t.Errorf("row %d is a duplicate", r)
				}
				seen[key] = true
			}
		})
	}
}

func TestCleanData_DropsEmptyRows(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\n,\n1,2\n,\n", WithFillMethods())
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	if got := dc.Frame().Shape(); got != (frame.Shape{Rows: 1, Columns: 2}) {
		t.Errorf("Shape() = %v, want (1, 2)", got)
	}
	if got := dc.Stats().EmptyRowsDropped; got != 2 {
		t.Errorf("EmptyRowsDropped = %d, want 2", got)
	}
}

func TestCleanData_DropsDuplicates(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\n1,x\n2,y\n1,x\n2,y\n3,z\n")
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	got := dc.Frame().Records("")
	want := []string{"1,x", "2,y", "3,z"}
	if len(got) != len(want)+1 {
		t.Fatalf("got %d rows, want %d", len(got)-1, len(want))
	}
	for i, row := range want {
		if strings.Join(got[i+1], ",") != row {
			t.Errorf("row %d = %v, want %s", i, got[i+1], row)
		}
	}
	if dc.Stats().DuplicatesDropped != 2 {
		t.Errorf("DuplicatesDropped = %d, want 2", dc.Stats().DuplicatesDropped)
	}
}

func TestCleanData_KeepsRowsThatOnlyLookAlike(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\n\"x\x1fy\",z\nx,\"y\x1fz\"\n")
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	if got := dc.Frame().Nrow(); got != 2 {
		t.Errorf("Nrow() = %d, want 2", got)
	}
	if dc.Stats().DuplicatesDropped != 0 {
		t.Errorf("DuplicatesDropped = %d, want 0", dc.Stats().DuplicatesDropped)
	}
}

func TestCleanData_DuplicatesWithMissing(t *testing.T) {
	captureLogs(t)
	// Without fills, rows that are missing in the same place are equal.
	dc := fromCSV(t, "a,b\n1,\n1,\n2,3\n", WithFillMethods())
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	if got := dc.Frame().Nrow(); got != 2 {
		t.Errorf("Nrow() = %d, want 2", got)
	}
}

func TestCleanData_NoFillMethods(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\n1,\n2,3\n", WithFillMethods())
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	if got := dc.Frame().MissingCount(); got != 1 {
		t.Errorf("MissingCount() = %d, want 1", got)
	}
}

func TestCleanData_FillMethodOrder(t *testing.T) {
	tests := []struct {
		name    string
		methods []string
		want    string
	}{
		{"ffill_then_bfill", []string{"ffill", "bfill"}, "1,1,3"},
		{"bfill_then_ffill", []string{"bfill", "ffill"}, "1,3,3"},
		{"constant", []string{"constant:0"}, "1,0,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			dc := fromCSV(t, "a,b\n1,x\n,y\n3,z\n", WithFillMethods(tt.methods...))
			if err := dc.CleanData(); err != nil {
				t.Fatalf("CleanData() error = %v", err)
			}
			col, _ := dc.Frame().Column("a")
			vals := make([]string, col.Len())
			for i := range vals {
				vals[i] = col.Elem(i).String()
			}
			if got := strings.Join(vals, ","); got != tt.want {
				t.Errorf("a = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCleanData_FillErrorLeavesTableUnchanged(t *testing.T) {
	logs := captureLogs(t)
	dc := fromCSV(t, "a,b\n1,x\n,y\n3,z\n", WithFillMethods("constant:abc"))
	before := dc.Frame()

	err := dc.CleanData()
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("CleanData() error = %v, want ErrProcessing", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != "fill_missing" {
		t.Errorf("expected fill_missing StageError, got %v", err)
	}
	if dc.Frame() != before {
		t.Error("table changed after failed clean")
	}
	if dc.Stats() != nil {
		t.Error("Stats() set after failed clean")
	}
	if !strings.Contains(logs.String(), "stage=fill_missing") {
		t.Errorf("expected stage in log, got %q", logs.String())
	}
}

func TestCleanData_HeaderOnly(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b,c\n")
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	if got := dc.Frame().Shape(); got != (frame.Shape{Rows: 0, Columns: 0}) {
		t.Errorf("Shape() = %v, want (0, 0)", got)
	}
}

func TestCleanData_Idempotent(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "missing.csv"), WithDropThresh(2), WithNanColThresh(0.6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}
	first := dc.Frame().Records("")
	if err := dc.CleanData(); err != nil {
		t.Fatalf("second CleanData() error = %v", err)
	}
	second := dc.Frame().Records("")
	if len(first) != len(second) {
		t.Fatalf("second clean changed row count: %d -> %d", len(first), len(second))
	}
}

// --- Encode / Scale Tests ---

func TestEncodeData(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "encode.csv"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.EncodeData(); err != nil {
		t.Fatalf("EncodeData() error = %v", err)
	}

	df := dc.Frame()
	if got := df.Ncol(); got != 3 {
		t.Errorf("Ncol() = %d, want 3", got)
	}

	city, _ := df.Column("city")
	if city.Type() != series.Int {
		t.Fatalf("city type = %v, want int", city.Type())
	}
	want := []int{1, 0, 1}
	for i, w := range want {
		got, err := city.Elem(i).Int()
		if err != nil || got != w {
			t.Errorf("city[%d] = %v, want %d", i, city.Elem(i), w)
		}
	}
	if !city.Elem(3).IsNA() {
		t.Errorf("city[3] = %v, want missing", city.Elem(3))
	}

	encoders := dc.LabelEncoders()
	if len(encoders) != 2 {
		t.Fatalf("LabelEncoders() has %d entries, want 2", len(encoders))
	}
	labels, err := encoders["city"].InverseTransform([]int{0, 1})
	if err != nil || labels[0] != "london" || labels[1] != "paris" {
		t.Errorf("InverseTransform() = %v, %v", labels, err)
	}

	age, _ := df.Column("age")
	if age.Type() != series.Int {
		t.Errorf("age type = %v, want int (untouched)", age.Type())
	}
}

func TestScaleData(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "encode.csv"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.ScaleData(); err != nil {
		t.Fatalf("ScaleData() error = %v", err)
	}

	scaler, cols := dc.Scaler()
	if scaler == nil || len(cols) != 1 || cols[0] != "age" {
		t.Fatalf("Scaler() = %v, %v; want fitted on [age]", scaler, cols)
	}
	if got := scaler.Mean()[0]; math.Abs(got-40) > tolerance {
		t.Errorf("Mean() = %v, want 40", got)
	}

	age, _ := dc.Frame().Column("age")
	if age.Type() != series.Float {
		t.Fatalf("age type = %v, want float", age.Type())
	}
	if !age.Elem(2).IsNA() {
		t.Errorf("age[2] = %v, want missing", age.Elem(2))
	}
	var vals []float64
	for i := 0; i < age.Len(); i++ {
		if e := age.Elem(i); !e.IsNA() {
			vals = append(vals, e.Float())
		}
	}
	mean, std := stat.PopMeanStdDev(vals, nil)
	if math.Abs(mean) > tolerance || math.Abs(std-1) > tolerance {
		t.Errorf("scaled age mean = %v, std = %v; want 0, 1", mean, std)
	}

	name, _ := dc.Frame().Column("name")
	if name.Type() != series.String {
		t.Errorf("name type = %v, want string (untouched)", name.Type())
	}
}

func TestEncodeThenScale(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "encode.csv"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.EncodeData(); err != nil {
		t.Fatalf("EncodeData() error = %v", err)
	}
	if err := dc.ScaleData(); err != nil {
		t.Fatalf("ScaleData() error = %v", err)
	}
	_, cols := dc.Scaler()
	if len(cols) != 3 {
		t.Errorf("scaled columns = %v, want all 3", cols)
	}
}

func TestScaleData_NoNumericColumns(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\nx,y\nz,w\n")
	if err := dc.ScaleData(); err != nil {
		t.Fatalf("ScaleData() error = %v", err)
	}
	if scaler, _ := dc.Scaler(); scaler != nil {
		t.Error("expected no scaler for a table without numeric columns")
	}
}

func TestScaleData_NoRows(t *testing.T) {
	captureLogs(t)
	dc := fromCSV(t, "a,b\n")
	if err := dc.ScaleData(); err != nil {
		t.Fatalf("ScaleData() error = %v", err)
	}
}

// --- Save Tests ---

func TestSave_RoundTrip(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "missing.csv"), WithDropThresh(2), WithNanColThresh(0.6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := dc.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := frame.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Shape() != dc.Frame().Shape() {
		t.Errorf("reloaded shape = %v, want %v", loaded.Shape(), dc.Frame().Shape())
	}
}

func TestSave_InvalidPath(t *testing.T) {
	logs := captureLogs(t)
	dc := fromCSV(t, "a\n1\n")
	path := filepath.Join(t.TempDir(), "missing", "out.csv")

	err := dc.Save(path)
	if !errors.Is(err, frame.ErrIO) {
		t.Fatalf("Save() error = %v, want ErrIO", err)
	}
	if !strings.Contains(logs.String(), "op=save") {
		t.Errorf("expected save op in log, got %q", logs.String())
	}
}

// --- Summary Tests ---

func TestSummary(t *testing.T) {
	captureLogs(t)
	dc, err := New(filepath.Join("testdata", "missing.csv"), WithDropThresh(2), WithNanColThresh(0.6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := dc.CleanData(); err != nil {
		t.Fatalf("CleanData() error = %v", err)
	}

	s := dc.Summary()
	if s.MissingBefore != 12 || s.MissingAfter != 0 {
		t.Errorf("missing = %d -> %d, want 12 -> 0", s.MissingBefore, s.MissingAfter)
	}
	if s.OriginalShape != (frame.Shape{Rows: 5, Columns: 4}) {
		t.Errorf("OriginalShape = %v", s.OriginalShape)
	}
	if len(s.Types) != 3 || s.Types[0].Name != "A" {
		t.Errorf("Types = %v", s.Types)
	}
	if len(s.Head) != 4 {
		t.Errorf("Head has %d rows, want header + 3", len(s.Head))
	}
	if s.Stats == nil {
		t.Error("Stats should be set after CleanData")
	}

	var buf bytes.Buffer
	if err := dc.Summarize(&buf); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Data Summary:",
		"Original shape: (5, 4)",
		"Cleaned shape: (3, 3)",
		"Missing values before cleaning:\n12\n",
		"Missing values after cleaning:\n0\n",
		"Data types:",
		"Data head:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_HeadRows(t *testing.T) {
	dc := fromCSV(t, "a\n1\n2\n3\n4\n", WithHeadRows(2))
	if got := len(dc.Summary().Head); got != 3 {
		t.Errorf("Head has %d rows, want header + 2", got)
	}
}

func TestStats_String(t *testing.T) {
	s := NewStats()
	s.InputShape = frame.Shape{Rows: 5, Columns: 4}
	s.OutputShape = frame.Shape{Rows: 3, Columns: 3}
	s.SparseRowsDropped = 2
	s.ColumnsDropped = []string{"D"}
	s.RecordFill("ffill", 3)
	s.RecordFill("bfill", 1)

	out := s.String()
	for _, want := range []string{"(5, 4) -> (3, 3)", "Rows dropped: 2", "Columns dropped: D", "Cells filled: 4 (bfill=1, ffill=3)"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
