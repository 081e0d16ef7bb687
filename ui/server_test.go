package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divyaeh-iitm/Simpledashboard/app"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
	"github.com/Divyaeh-iitm/Simpledashboard/internal/config"
)

const sampleCSV = `Material description,Embodied Energy,Embodied Carbon
Marble slab,48,9
Marble tile,50,10
Marble block,52,11
Grout mix,5,2
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", GinMode: "test"},
		Upload:   config.UploadConfig{MaxSizeMB: 5},
		Analysis: config.AnalysisConfig{MaxConcurrent: 2},
	}
	service := app.NewAnalysisService(epd.NewMaterialStatsAnalyzer(), cfg.Analysis.MaxConcurrent)

	server, err := NewServer(cfg, service)
	require.NoError(t, err)
	return server
}

func multipartBody(t *testing.T, fields map[string]string, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("dataset", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(fileContent))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestIndexPage(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EPD Analysis Dashboard")
}

func TestAPIAnalyze(t *testing.T) {
	server := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"primary_materials": "marble",
		"secondary_name_1":  "grout",
		"mapping":           "marble=grout",
	}, "epd.csv", sampleCSV)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view app.RunView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	require.Len(t, view.ByEnergy, 1)
	row := view.ByEnergy[0]
	assert.Equal(t, "marble", row.Primary)
	assert.Equal(t, "grout", row.Secondary)
	require.NotNil(t, row.CombinedEnergy)
	assert.Equal(t, 55.0, *row.CombinedEnergy) // 50 + 5
}

func TestAPIAnalyze_MissingFile(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("primary_materials=marble"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIAnalyze_SchemaError(t *testing.T) {
	server := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"primary_materials": "marble",
	}, "epd.csv", "Material description,Embodied Energy\nMarble,50\n")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Embodied Carbon")
}

func TestAnalyze_RendersResults(t *testing.T) {
	server := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"project_name":      "Tower A",
		"work_package":      "Flooring",
		"primary_materials": "marble, bamboo",
		"secondary_name_1":  "grout",
		"mapping":           "marble=grout",
	}, "epd.csv", sampleCSV)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := rec.Body.String()
	assert.Contains(t, page, "Analysis Results")
	assert.Contains(t, page, "marble")
	assert.Contains(t, page, "No data found for material: bamboo")
	assert.Contains(t, page, "Results Sorted by Embodied Energy")
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
