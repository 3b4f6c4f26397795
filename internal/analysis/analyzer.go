// Package analysis runs filter, group, extrema, sort and export operations
// over a rescannable table source. Every operation rewinds the source and
// performs one full pass; the first bad row aborts the operation.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/csvtool/internal/table"
)

// Scanner is a rewindable row source. *table.Source implements it.
type Scanner interface {
	Headers() []string
	Next() (table.Row, error)
	Reset() error
}

// Options controls analyzer behavior.
type Options struct {
	// SortWorkers bounds sort parallelism; 0 means GOMAXPROCS.
	SortWorkers int
	// ParallelSortMinRows is the row count at which sorting fans out across
	// workers. 0 disables parallel sorting.
	ParallelSortMinRows int
	// Compress writes lz4-framed exports regardless of the output extension.
	Compress bool
	// Logger receives debug diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns reasonable defaults for interactive use.
func DefaultOptions() Options {
	return Options{ParallelSortMinRows: 50000}
}

// Analyzer exposes analytical operations over a Scanner. The caller owns the
// scanner and must keep it open while the analyzer is in use.
type Analyzer struct {
	src     Scanner
	headers []string
	opt     Options
	log     *slog.Logger
}

// GroupMean is the average of one group's values.
type GroupMean struct {
	Key   string
	Mean  float64
	Count int
}

// New wraps src. The header is copied once at construction; repeated column
// names are logged as a warning and resolve to their first occurrence.
func New(src Scanner, opt Options) *Analyzer {
	lg := opt.Logger
	if lg == nil {
		lg = slog.Default()
	}
	a := &Analyzer{src: src, headers: src.Headers(), opt: opt, log: lg}
	seen := make(map[string]int, len(a.headers))
	for i, h := range a.headers {
		first, dup := seen[h]
		if !dup {
			seen[h] = i
			continue
		}
		if first >= 0 {
			lg.Warn("duplicate column", "name", h, "using_index", first)
			seen[h] = -1
		}
	}
	return a
}

// Headers returns a copy of the column names.
func (a *Analyzer) Headers() []string {
	out := make([]string, len(a.headers))
	copy(out, a.headers)
	return out
}

// ColumnIndex resolves a column name with a case-sensitive match. The first
// occurrence wins when names repeat.
func (a *Analyzer) ColumnIndex(name string) (int, error) {
	for i, h := range a.headers {
		if h == name {
			return i, nil
		}
	}
	return -1, &table.ColumnNotFoundError{Name: name}
}

// Filter returns the rows matching pred, in scan order.
func (a *Analyzer) Filter(pred Predicate) ([]table.Row, error) {
	var out []table.Row
	err := a.scan(func(line int, row table.Row) error {
		ok, err := pred.Match(row)
		if err != nil {
			return withLine(err, line)
		}
		if ok {
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.log.Debug("filter complete", "matched", len(out))
	return out, nil
}

// GroupAverage buckets rows by the text of groupCol and averages valueCol per
// bucket. Results are ordered by key.
func (a *Analyzer) GroupAverage(groupCol, valueCol string) ([]GroupMean, error) {
	gi, err := a.ColumnIndex(groupCol)
	if err != nil {
		return nil, err
	}
	vi, err := a.ColumnIndex(valueCol)
	if err != nil {
		return nil, err
	}
	type acc struct {
		sum float64
		n   int
	}
	groups := map[string]*acc{}
	err = a.scan(func(line int, row table.Row) error {
		key, err := row.Field(gi)
		if err != nil {
			return err
		}
		v, err := parseNumber(row, vi, valueCol, line)
		if err != nil {
			return err
		}
		g := groups[key]
		if g == nil {
			g = &acc{}
			groups[key] = g
		}
		g.sum += v
		g.n++
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]GroupMean, 0, len(groups))
	for k, g := range groups {
		out = append(out, GroupMean{Key: k, Mean: g.sum / float64(g.n), Count: g.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	a.log.Debug("group average complete", "groups", len(out))
	return out, nil
}

// Extrema returns the largest and smallest value of column. It fails with
// ErrEmptyInput when the source has no data rows.
func (a *Analyzer) Extrema(column string) (maxVal, minVal float64, err error) {
	ci, err := a.ColumnIndex(column)
	if err != nil {
		return 0, 0, err
	}
	first := true
	err = a.scan(func(line int, row table.Row) error {
		v, err := parseNumber(row, ci, column, line)
		if err != nil {
			return err
		}
		if first {
			maxVal, minVal = v, v
			first = false
			return nil
		}
		if v > maxVal {
			maxVal = v
		}
		if v < minVal {
			minVal = v
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if first {
		return 0, 0, fmt.Errorf("extrema of %s: %w", column, table.ErrEmptyInput)
	}
	return maxVal, minVal, nil
}

// SortByColumn loads every row and orders them by the numeric value of
// column, ascending unless descending is set. Ties keep no particular order.
func (a *Analyzer) SortByColumn(column string, descending bool) ([]table.Row, error) {
	ci, err := a.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	var items []keyedRow
	err = a.scan(func(line int, row table.Row) error {
		v, err := parseNumber(row, ci, column, line)
		if err != nil {
			return err
		}
		items = append(items, keyedRow{key: v, row: row})
		return nil
	})
	if err != nil {
		return nil, err
	}
	items, err = sortRows(items, descending, a.opt.SortWorkers, a.opt.ParallelSortMinRows)
	if err != nil {
		return nil, err
	}
	out := make([]table.Row, len(items))
	for i := range items {
		out[i] = items[i].row
	}
	a.log.Debug("sort complete", "column", column, "rows", len(out), "descending", descending)
	return out, nil
}

// scan rewinds the source and calls fn for each data row until the end of
// data. A row with no fields also ends the scan.
func (a *Analyzer) scan(fn func(line int, row table.Row) error) error {
	if err := a.src.Reset(); err != nil {
		return err
	}
	for line := 1; ; line++ {
		row, err := a.src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if row.Len() == 0 {
			a.log.Debug("blank line ends scan", "row", line)
			return nil
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func parseNumber(row table.Row, idx int, column string, line int) (float64, error) {
	s, err := row.Field(idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &table.NumericParseError{Column: column, Line: line, Value: s, Err: err}
	}
	if math.IsNaN(v) {
		return 0, &table.NumericParseError{Column: column, Line: line, Value: s, Err: errNaN}
	}
	return v, nil
}

// NaN is unordered, so it cannot take part in extrema, sorting or means.
var errNaN = errors.New("NaN is not a comparable number")

// withLine stamps the row number onto a NumericParseError raised by a
// predicate, which has no scan position of its own.
func withLine(err error, line int) error {
	var ne *table.NumericParseError
	if errors.As(err, &ne) && ne.Line == 0 {
		ne.Line = line
	}
	return err
}
