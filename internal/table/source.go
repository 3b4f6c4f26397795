package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Options controls how a Source splits lines.
type Options struct {
	// Delimiter between fields. If empty, Delimiter (",") is used.
	Delimiter string
}

// DefaultOptions returns the comma-delimited configuration.
func DefaultOptions() Options {
	return Options{Delimiter: Delimiter}
}

// Source owns an open data file and its parsed header. It yields rows one at a
// time and can be rewound with Reset for another full scan.
//
// A Source is not safe for concurrent use.
type Source struct {
	path    string
	delim   string
	file    *os.File
	zr      *lz4.Reader // non-nil for .lz4 inputs
	br      *bufio.Reader
	headers []string
	line    int
	done    bool
}

// Open opens path and reads its first line as the header. Paths ending in
// .lz4 are decompressed transparently.
func Open(path string) (*Source, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions is Open with an explicit delimiter.
func OpenWithOptions(path string, opt Options) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	delim := opt.Delimiter
	if delim == "" {
		delim = Delimiter
	}
	s := &Source{path: path, delim: delim, file: f}
	if strings.HasSuffix(strings.ToLower(path), ".lz4") {
		s.zr = lz4.NewReader(f)
		s.br = bufio.NewReader(s.zr)
	} else {
		s.br = bufio.NewReader(f)
	}
	header, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	s.headers = parseRow(header, delim)
	return s, nil
}

// Headers returns a copy of the column names in file order.
func (s *Source) Headers() []string {
	out := make([]string, len(s.headers))
	copy(out, s.headers)
	return out
}

// Line returns the 1-based number of the last data row returned by Next.
func (s *Source) Line() int { return s.line }

// Next returns the next data row, or io.EOF once the file is exhausted.
// A blank line yields an empty Row; scanners treat it as the end of data.
func (s *Source) Next() (Row, error) {
	if s.done {
		return nil, io.EOF
	}
	line, err := s.readLine()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read row %d: %w", s.line+1, err)
		}
		s.done = true
		if line == "" {
			return nil, io.EOF
		}
	}
	s.line++
	return parseRow(line, s.delim), nil
}

// Reset rewinds to the first data row. The header line is read again and
// discarded.
func (s *Source) Reset() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %s: %w", s.path, err)
	}
	if s.zr != nil {
		s.zr.Reset(s.file)
		s.br.Reset(s.zr)
	} else {
		s.br.Reset(s.file)
	}
	s.line = 0
	s.done = false
	if _, err := s.readLine(); err != nil {
		if errors.Is(err, io.EOF) {
			s.done = true
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}

// readLine returns the next line without its terminator. A final line with
// no newline is returned together with io.EOF.
func (s *Source) readLine() (string, error) {
	line, err := s.br.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	return line, err
}
