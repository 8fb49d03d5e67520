package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextWriter writes each item's String form, separated by a blank line.
// Items that are not fmt.Stringer are printed with %v.
type TextWriter struct {
	w       *bufio.Writer
	written int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single item.
func (w *TextWriter) Write(data any) error {
	var text string
	if s, ok := data.(fmt.Stringer); ok {
		text = s.String()
	} else {
		text = fmt.Sprintf("%v", data)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if w.written > 0 {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(text); err != nil {
		return err
	}
	w.written++
	return w.w.Flush()
}

// WriteAll writes multiple items.
func (w *TextWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
