package table

import "strings"

// Delimiter separates fields on a line. Quoting and escaping are not supported.
const Delimiter = ","

// Row is one line's fields, in file order.
type Row []string

// ParseRow splits line on the default delimiter.
func ParseRow(line string) Row {
	return parseRow(line, Delimiter)
}

func parseRow(line, delim string) Row {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return Row{}
	}
	return Row(strings.Split(line, delim))
}

// Field returns the i-th field.
func (r Row) Field(i int) (string, error) {
	if i < 0 || i >= len(r) {
		return "", &IndexOutOfRangeError{Index: i, Len: len(r)}
	}
	return r[i], nil
}

// Len returns the number of fields.
func (r Row) Len() int { return len(r) }

// Join renders the row back to a delimited line without a trailing newline.
func (r Row) Join(delim string) string { return strings.Join(r, delim) }
