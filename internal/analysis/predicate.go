package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/csvtool/internal/table"
)

// Predicate decides whether a row is kept by Filter.
type Predicate interface {
	Match(row table.Row) (bool, error)
}

// PredicateFunc adapts an infallible function to a Predicate.
type PredicateFunc func(row table.Row) bool

// Match calls f.
func (f PredicateFunc) Match(row table.Row) (bool, error) { return f(row), nil }

// All matches rows accepted by every predicate. An empty list matches all rows.
func All(preds ...Predicate) Predicate {
	return allOf(preds)
}

type allOf []Predicate

func (ps allOf) Match(row table.Row) (bool, error) {
	for _, p := range ps {
		ok, err := p.Match(row)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// comparison operators, longest first so "<=" wins over "<".
var whereOps = []string{"==", "!=", "<=", ">=", "=", "<", ">"}

// Where compiles a clause of the form <column><op><value>. The operators
// ==, = and != compare text exactly; <, <=, > and >= compare numerically.
func (a *Analyzer) Where(expr string) (Predicate, error) {
	i := strings.IndexAny(expr, "=!<>")
	if i <= 0 {
		return nil, fmt.Errorf("invalid where clause %q: expected <column><op><value>", expr)
	}
	column := expr[:i]
	rest := expr[i:]
	var op string
	for _, o := range whereOps {
		if strings.HasPrefix(rest, o) {
			op = o
			break
		}
	}
	if op == "" {
		return nil, fmt.Errorf("invalid where clause %q: unknown operator", expr)
	}
	want := rest[len(op):]
	idx, err := a.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	switch op {
	case "==", "=":
		return textPredicate(idx, func(v string) bool { return v == want }), nil
	case "!=":
		return textPredicate(idx, func(v string) bool { return v != want }), nil
	}

	lit, err := strconv.ParseFloat(strings.TrimSpace(want), 64)
	if err != nil || math.IsNaN(lit) {
		return nil, fmt.Errorf("invalid where clause %q: %q is not a number", expr, want)
	}
	var test func(x float64) bool
	switch op {
	case "<":
		test = func(x float64) bool { return x < lit }
	case "<=":
		test = func(x float64) bool { return x <= lit }
	case ">":
		test = func(x float64) bool { return x > lit }
	case ">=":
		test = func(x float64) bool { return x >= lit }
	}
	return numericPredicate{idx: idx, column: column, test: test}, nil
}

func textPredicate(idx int, test func(string) bool) Predicate {
	return textMatch{idx: idx, test: test}
}

type textMatch struct {
	idx  int
	test func(string) bool
}

func (p textMatch) Match(row table.Row) (bool, error) {
	v, err := row.Field(p.idx)
	if err != nil {
		return false, err
	}
	return p.test(v), nil
}

type numericPredicate struct {
	idx    int
	column string
	test   func(float64) bool
}

func (p numericPredicate) Match(row table.Row) (bool, error) {
	x, err := parseNumber(row, p.idx, p.column, 0)
	if err != nil {
		return false, err
	}
	return p.test(x), nil
}
