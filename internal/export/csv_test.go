package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/adapters/excel"
	"datadash/internal/testkit"
)

func TestCSVBytes_HeaderAndShape(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	data, err := CSVBytes(tbl)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, tbl.RowCount()+1)
	assert.Equal(t, tbl.Names(), records[0])
}

func TestCSVBytes_RoundTrip(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	data, err := CSVBytes(tbl)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	reloaded, err := excel.BuildTable(records)
	require.NoError(t, err)
	assert.Equal(t, tbl.RowCount(), reloaded.RowCount())
	assert.Equal(t, tbl.Names(), reloaded.Names())
}

func TestFilename_CarriesCurrentDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "filtered_export_2026-08-31.csv", Filename("filtered_export", now))
}
