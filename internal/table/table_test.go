package table

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pierrec/lz4/v4"
)

const scores = "name,score\na,10\nb,20\na,30\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func readAll(t *testing.T, s *Source) []Row {
	t.Helper()
	var rows []Row
	for {
		r, err := s.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		rows = append(rows, r)
	}
}

func TestParseRow(t *testing.T) {
	cases := []struct {
		in   string
		want Row
	}{
		{"", Row{}},
		{"a", Row{"a"}},
		{"a,b,c", Row{"a", "b", "c"}},
		{" a , b", Row{" a ", " b"}},
		{"a,,b", Row{"a", "", "b"}},
		{"a,b\r", Row{"a", "b"}},
	}
	for _, tc := range cases {
		got := ParseRow(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseRow(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
		if got.Len() != len(tc.want) {
			t.Fatalf("Len(%q) = %d", tc.in, got.Len())
		}
	}
}

func TestRowFieldOutOfRange(t *testing.T) {
	r := ParseRow("x,y")
	if v, err := r.Field(1); err != nil || v != "y" {
		t.Fatalf("Field(1) = %q, %v", v, err)
	}
	_, err := r.Field(2)
	var oor *IndexOutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected IndexOutOfRangeError, got %v", err)
	}
	if oor.Index != 2 || oor.Len != 2 {
		t.Fatalf("unexpected error fields: %+v", oor)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	var fe *FileOpenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FileOpenError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestSourceHeadersAndRows(t *testing.T) {
	s, err := Open(writeFile(t, "s.csv", scores))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	h := s.Headers()
	if !reflect.DeepEqual(h, []string{"name", "score"}) {
		t.Fatalf("headers = %v", h)
	}
	h[0] = "mutated"
	if s.Headers()[0] != "name" {
		t.Fatalf("Headers must return a copy")
	}

	rows := readAll(t, s)
	want := []Row{{"a", "10"}, {"b", "20"}, {"a", "30"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	if s.Line() != 3 {
		t.Fatalf("Line() = %d, want 3", s.Line())
	}
	if _, err := s.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after exhaustion, got %v", err)
	}
}

func TestSourceResetRepeatsScan(t *testing.T) {
	s, err := Open(writeFile(t, "s.csv", "a,b\n1,2\n3,4")) // no trailing newline
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	first := readAll(t, s)
	for i := 0; i < 3; i++ {
		if err := s.Reset(); err != nil {
			t.Fatalf("reset: %v", err)
		}
		again := readAll(t, s)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("scan %d = %v, want %v", i, again, first)
		}
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(first))
	}
}

func TestSourceHeaderOnlyAndEmpty(t *testing.T) {
	for _, content := range []string{"", "a,b", "a,b\n"} {
		s, err := Open(writeFile(t, "h.csv", content))
		if err != nil {
			t.Fatalf("open %q: %v", content, err)
		}
		if rows := readAll(t, s); len(rows) != 0 {
			t.Fatalf("%q: expected no rows, got %v", content, rows)
		}
		if err := s.Reset(); err != nil {
			t.Fatalf("reset %q: %v", content, err)
		}
		if rows := readAll(t, s); len(rows) != 0 {
			t.Fatalf("%q after reset: expected no rows, got %v", content, rows)
		}
		s.Close()
	}
}

func TestSourceLZ4(t *testing.T) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write([]byte(scores)); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	s, err := Open(writeFile(t, "s.csv.lz4", buf.String()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if h := s.Headers(); !reflect.DeepEqual(h, []string{"name", "score"}) {
		t.Fatalf("headers = %v", h)
	}
	first := readAll(t, s)
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if again := readAll(t, s); !reflect.DeepEqual(first, again) || len(first) != 3 {
		t.Fatalf("lz4 rescan mismatch: %v vs %v", first, again)
	}
}

func TestSourceCustomDelimiter(t *testing.T) {
	s, err := OpenWithOptions(writeFile(t, "s.tsv", "a\tb\n1\t2\n"), Options{Delimiter: "\t"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	rows := readAll(t, s)
	if !reflect.DeepEqual(rows, []Row{{"1", "2"}}) {
		t.Fatalf("rows = %v", rows)
	}
}
