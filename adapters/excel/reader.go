package excel

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"datadash/domain/table"
	"datadash/internal"
	"datadash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader loads Excel and CSV files into a Table.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Load reads the file into a Table. The returned Table is never nil: on any
// reported condition (missing file, parse failure, zero rows) it is the empty
// Table and the condition describes what happened. Conditions are user-visible
// messages, not faults; the caller renders them and carries on.
func (r *DataReader) Load() (*table.Table, error) {
	internal.DefaultLogger.Info("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Empty(), errors.MissingSource(r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		internal.DefaultLogger.Warn("[DataReader] FAILED - %v", err)
		return table.Empty(), errors.ParseFailure(r.filePath, err)
	}

	t, err := BuildTable(rows)
	if err != nil {
		return table.Empty(), errors.ParseFailure(r.filePath, err)
	}
	if t.IsEmpty() {
		return table.Empty(), errors.EmptySource(r.filePath)
	}

	internal.DefaultLogger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), t.ColumnCount(), t.RowCount())
	return t, nil
}

// readExcelRows reads the raw string grid from Sheet1.
func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Debug("[DataReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads the raw string grid from a CSV file.
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// BuildTable turns a raw string grid (header row first) into a typed Table.
// A column is numeric when every non-empty cell parses as a float. Columns
// whose name contains "date" or "time" are additionally tried as timestamps;
// if any value refuses to parse the column is left unchanged.
func BuildTable(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return table.Empty(), nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	// Collect cells column-wise, padding short rows and dropping
	// fully empty ones.
	cells := make([][]string, len(headers))
	for _, row := range rows[1:] {
		empty := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		for j := range headers {
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			cells[j] = append(cells[j], v)
		}
	}

	cols := make([]table.Column, 0, len(headers))
	for j, name := range headers {
		cols = append(cols, inferColumn(name, cells[j]))
	}
	return table.New(cols...)
}

// inferColumn types a single column from its raw cells.
func inferColumn(name string, raw []string) table.Column {
	if looksTemporal(name) {
		if times, ok := parseAllTimes(raw); ok {
			return table.Column{Name: name, Kind: table.KindTime, Times: times}
		}
		// Silent fallback: leave the column as the plain inference
		// would have typed it.
	}
	if nums, ok := parseAllNumbers(raw); ok {
		return table.Column{Name: name, Kind: table.KindNumeric, Numbers: nums}
	}
	return table.Column{Name: name, Kind: table.KindText, Text: raw}
}

// looksTemporal applies the date-column name heuristic.
func looksTemporal(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") || strings.Contains(lower, "time")
}

// timeLayouts are tried in order for date-heuristic columns. Excel renders
// dates in the sheet's display format, so several common shapes are covered.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"01-02-06",
	"2006/01/02",
	"Jan 2, 2006",
	"2-Jan-06",
}

// parseAllTimes parses every non-empty cell as a timestamp. All or nothing:
// a single unparseable value keeps the column out of KindTime entirely.
func parseAllTimes(raw []string) ([]time.Time, bool) {
	times := make([]time.Time, len(raw))
	seen := false
	for i, v := range raw {
		if v == "" {
			continue
		}
		parsed, ok := parseTime(v)
		if !ok {
			return nil, false
		}
		times[i] = parsed
		seen = true
	}
	return times, seen
}

func parseTime(v string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAllNumbers parses every non-empty cell as a float. Empty cells become
// NaN so row alignment is preserved.
func parseAllNumbers(raw []string) ([]float64, bool) {
	nums := make([]float64, len(raw))
	seen := false
	for i, v := range raw {
		if v == "" {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return nil, false
		}
		nums[i] = f
		seen = true
	}
	return nums, seen
}
