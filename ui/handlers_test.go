package ui

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/adapters/excel"
	"datadash/app"
	"datadash/internal/cache"
	"datadash/internal/config"
	"datadash/ui/services"
)

// testServer wires a real loader and cache around a temp CSV; templates stay
// empty because the export handlers never render one.
func testServer(t *testing.T, csvContent string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0644))

	cfg := &config.Config{}
	cfg.Paths.DataFile = path

	s := &Server{
		router:    gin.New(),
		cfg:       cfg,
		cache:     cache.NewTableCache(excel.NewLoader()),
		dashboard: app.NewDashboardService(),
		render:    services.NewRenderService(),
	}
	s.routes()
	return s
}

func exportRows(t *testing.T, s *Server, url string) [][]string {
	t.Helper()
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportFiltered_CarriesActiveFilters(t *testing.T) {
	s := testServer(t, "Product,Sales\nA,10\nA,20\nB,30\nB,40\n")

	rows := exportRows(t, s, "/export/filtered.csv?cat_Product=A")

	// Header plus only the two A rows.
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product", "Sales"}, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "A", row[0])
	}
}

func TestExportFiltered_NoParamsExportsEverything(t *testing.T) {
	s := testServer(t, "Product,Sales\nA,10\nA,20\nB,30\nB,40\n")
	assert.Len(t, exportRows(t, s, "/export/filtered.csv"), 5)
}

func TestExportFull_IgnoresFilters(t *testing.T) {
	s := testServer(t, "Product,Sales\nA,10\nA,20\nB,30\nB,40\n")
	assert.Len(t, exportRows(t, s, "/export/full.csv?cat_Product=A"), 5)
}

func TestBuildPage_ForwardsQueryToExportLinks(t *testing.T) {
	s := testServer(t, "Product,Sales\nA,10\nB,30\n")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/dashboard?cat_Product=A&kind=bar", nil)

	data := s.buildPage(c)
	assert.Equal(t, "cat_Product=A&kind=bar", data.Query)
}
