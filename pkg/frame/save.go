package frame

import (
	"encoding/csv"
	"io"
	"os"
)

// Write writes the frame as CSV with a header row and no index column.
// Missing cells are written as empty fields.
func (f *Frame) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(f.Records("")); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes the frame to a CSV file, replacing any existing file.
func (f *Frame) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &PathError{Op: "save", Path: path, Kind: ErrIO, Err: err}
	}

	if err := f.Write(file); err != nil {
		_ = file.Close()
		return &PathError{Op: "save", Path: path, Kind: ErrIO, Err: err}
	}
	if err := file.Close(); err != nil {
		return &PathError{Op: "save", Path: path, Kind: ErrIO, Err: err}
	}
	return nil
}
