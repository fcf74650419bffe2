package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"datadash/domain/table"
)

// CSVBytes encodes a Table as UTF-8 CSV: header row, comma-separated, no
// index column. Cell formatting matches the preview grid, so encoding and
// re-loading the bytes reproduces row count and column names.
func CSVBytes(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Names()); err != nil {
		return nil, err
	}
	record := make([]string, t.ColumnCount())
	for row := 0; row < t.RowCount(); row++ {
		for col := 0; col < t.ColumnCount(); col++ {
			record[col] = t.Cell(row, col)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Filename names a download artifact with the current date, e.g.
// filtered_export_2026-08-31.csv.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}
