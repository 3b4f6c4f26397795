package analysis

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/csvtool/internal/table"
	"github.com/KaramelBytes/csvtool/internal/utils"
	"github.com/pierrec/lz4/v4"
)

// Export writes header and rows to path, replacing any existing file. Paths
// ending in .lz4, or any path when Options.Compress is set, are written as
// lz4 frames. Fields are written verbatim: a field containing the delimiter
// will not survive a round trip.
func (a *Analyzer) Export(path string, header []string, rows []table.Row) error {
	compress := a.opt.Compress || strings.HasSuffix(strings.ToLower(path), ".lz4")
	err := utils.SafeWrite(path, func(w io.Writer) error {
		if !compress {
			return WriteRows(w, header, rows)
		}
		zw := lz4.NewWriter(w)
		if err := WriteRows(zw, header, rows); err != nil {
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return &table.FileWriteError{Path: path, Err: err}
	}
	a.log.Debug("export complete", "path", path, "rows", len(rows), "lz4", compress)
	return nil
}

// WriteRows writes the header line followed by one line per row, each
// comma-joined and newline-terminated.
func WriteRows(w io.Writer, header []string, rows []table.Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(header, table.Delimiter) + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if _, err := bw.WriteString(r.Join(table.Delimiter) + "\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
