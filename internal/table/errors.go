package table

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by operations that need at least one data row.
var ErrEmptyInput = errors.New("no data rows")

// FileOpenError indicates the input file could not be opened for reading.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("unable to open file %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

// FileWriteError indicates an export destination could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write to file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// ColumnNotFoundError is returned when a column name does not match any header.
type ColumnNotFoundError struct{ Name string }

func (e *ColumnNotFoundError) Error() string { return "column not found: " + e.Name }

// NumericParseError reports a cell that is not a valid floating-point number.
type NumericParseError struct {
	Column string
	Line   int // 1-based data row number; 0 if unknown
	Value  string
	Err    error
}

func (e *NumericParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid number %q in column %s (row %d)", e.Value, e.Column, e.Line)
	}
	return fmt.Sprintf("invalid number %q in column %s", e.Value, e.Column)
}

func (e *NumericParseError) Unwrap() error { return e.Err }

// IndexOutOfRangeError is returned by Row.Field for a position past the last field.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("field index %d out of range (row has %d fields)", e.Index, e.Len)
}
