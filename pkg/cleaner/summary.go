package cleaner

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/datacleaner/pkg/frame"
)

// ColumnType pairs a column with its type name.
type ColumnType struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Summary describes the table before and after cleaning.
type Summary struct {
	Source        string       `json:"source,omitempty" yaml:"source,omitempty"`
	OriginalShape frame.Shape  `json:"original_shape" yaml:"original_shape"`
	CleanedShape  frame.Shape  `json:"cleaned_shape" yaml:"cleaned_shape"`
	MissingBefore int          `json:"missing_before" yaml:"missing_before"`
	MissingAfter  int          `json:"missing_after" yaml:"missing_after"`
	Types         []ColumnType `json:"types" yaml:"types"`
	// Head holds the header row followed by the first rows, missing as "NaN".
	Head [][]string `json:"head" yaml:"head"`
	// Stats is set once CleanData has run.
	Stats *Stats `json:"stats,omitempty" yaml:"stats,omitempty"`

	head *frame.Frame
}

// Summary captures the current state of the table.
func (c *DataCleaner) Summary() Summary {
	names := c.df.Names()
	types := c.df.Types()
	cols := make([]ColumnType, len(names))
	for i := range names {
		cols[i] = ColumnType{Name: names[i], Type: string(types[i])}
	}

	head := c.df.Head(c.config.HeadRows)
	return Summary{
		Source:        c.path,
		OriginalShape: c.originalShape,
		CleanedShape:  c.df.Shape(),
		MissingBefore: c.missingAtLoad,
		MissingAfter:  c.df.MissingCount(),
		Types:         cols,
		Head:          head.Records("NaN"),
		Stats:         c.stats,
		head:          head,
	}
}

// Summarize writes the text summary to w.
func (c *DataCleaner) Summarize(w io.Writer) error {
	_, err := io.WriteString(w, c.Summary().String())
	return err
}

// String renders the summary as text.
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString("Data Summary:\n")
	if s.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", s.Source))
	}
	sb.WriteString(fmt.Sprintf("Original shape: %s\n", s.OriginalShape))
	sb.WriteString(fmt.Sprintf("Cleaned shape: %s\n", s.CleanedShape))

	sb.WriteString("\nMissing values before cleaning:\n")
	sb.WriteString(fmt.Sprintf("%d\n", s.MissingBefore))
	sb.WriteString("\nMissing values after cleaning:\n")
	sb.WriteString(fmt.Sprintf("%d\n", s.MissingAfter))

	sb.WriteString("\nData types:\n")
	width := 0
	for _, t := range s.Types {
		width = max(width, len(t.Name))
	}
	for _, t := range s.Types {
		sb.WriteString(fmt.Sprintf("%-*s    %s\n", width, t.Name, t.Type))
	}

	sb.WriteString("\nData head:\n")
	if s.head != nil {
		sb.WriteString(s.head.String())
	} else {
		for _, row := range s.Head {
			sb.WriteString(strings.Join(row, ","))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
