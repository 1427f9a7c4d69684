package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdash/internal/dataset"
	"rentdash/internal/presentation"
)

var samplePath = filepath.Join("..", "dataset", "testdata", "houses_sample.csv")

func setupRouter(t *testing.T, path string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(dataset.NewProvider(path, false, logger), presentation.NewRenderer(640, 320), logger)
	router := gin.New()
	SetupRoutes(router, handler)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetCities(t *testing.T) {
	router := setupRouter(t, samplePath)

	w := get(router, "/api/cities")
	require.Equal(t, http.StatusOK, w.Code)

	var cities []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
	assert.Equal(t, []string{"Todas", "São Paulo", "Porto Alegre", "Rio de Janeiro", "Campinas", "Belo Horizonte"}, cities)
}

func TestGetSummary(t *testing.T) {
	router := setupRouter(t, samplePath)

	tests := []struct {
		name          string
		city          string
		expectedCity  string
		expectedCount int
		expectedRent  float64
	}{
		{name: "All cities", city: "", expectedCity: "Todas", expectedCount: 8, expectedRent: 29095.0 / 8},
		{name: "Single city", city: "São Paulo", expectedCity: "São Paulo", expectedCount: 3, expectedRent: 3020},
		{name: "Unknown city", city: "Recife", expectedCity: "Recife", expectedCount: 0, expectedRent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/api/summary?city="+url.QueryEscape(tt.city))
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				City    string `json:"city"`
				Summary struct {
					AverageRent float64 `json:"average_rent"`
					Count       int     `json:"count"`
				} `json:"summary"`
				Lines []string `json:"lines"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCity, body.City)
			assert.Equal(t, tt.expectedCount, body.Summary.Count)
			assert.InDelta(t, tt.expectedRent, body.Summary.AverageRent, 1e-6)
			assert.Len(t, body.Lines, 5)
		})
	}
}

func TestGetDashboard(t *testing.T) {
	router := setupRouter(t, samplePath)

	w := get(router, "/api/dashboard?city=Porto+Alegre&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var d presentation.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Porto Alegre", d.Selected)
	assert.Equal(t, 2, d.Table.Total)
	assert.Len(t, d.Table.Rows, 1)
	assert.Len(t, d.Charts, len(presentation.ChartIDs()))
}

func TestGetChart(t *testing.T) {
	router := setupRouter(t, samplePath)

	t.Run("Known chart", func(t *testing.T) {
		w := get(router, "/api/charts/animal-policy?city=S%C3%A3o+Paulo")
		require.Equal(t, http.StatusOK, w.Code)

		var c presentation.Chart
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		require.Len(t, c.Bars, 2)
		assert.InDelta(t, 200.0/3, c.Bars[0].Value, 1e-9)
		assert.Equal(t, "#4caf50", c.Bars[0].Color)
	})

	t.Run("Empty view", func(t *testing.T) {
		w := get(router, "/api/charts/furniture?city=Recife")
		require.Equal(t, http.StatusOK, w.Code)

		var c presentation.Chart
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, presentation.NoDataMessage, c.EmptyMessage)
	})

	t.Run("Unknown chart", func(t *testing.T) {
		w := get(router, "/api/charts/pie")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetChartPNG(t *testing.T) {
	router := setupRouter(t, samplePath)

	w := get(router, "/api/charts/rent-by-city/png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = get(router, "/api/charts/tax-by-city/png?city=Recife")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetChartPNG_SingleCity(t *testing.T) {
	router := setupRouter(t, samplePath)

	for _, city := range []string{"São Paulo", "Campinas"} {
		for _, id := range presentation.ChartIDs() {
			w := get(router, "/api/charts/"+id+"/png?city="+url.QueryEscape(city))
			require.Equal(t, http.StatusOK, w.Code, "%s for %s", id, city)
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		}
	}
}

func TestGetProperties(t *testing.T) {
	router := setupRouter(t, samplePath)

	tests := []struct {
		name         string
		query        string
		expectedCode int
		expectedRows int
		expectedAll  int
	}{
		{name: "Default page", query: "", expectedCode: http.StatusOK, expectedRows: 8, expectedAll: 8},
		{name: "Paged", query: "?limit=3&offset=6", expectedCode: http.StatusOK, expectedRows: 2, expectedAll: 8},
		{name: "Filtered", query: "?city=Campinas", expectedCode: http.StatusOK, expectedRows: 1, expectedAll: 1},
		{name: "Bad limit", query: "?limit=abc", expectedCode: http.StatusBadRequest},
		{name: "Negative offset", query: "?offset=-1", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/api/properties"+tt.query)
			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}

			var tbl presentation.Table
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tbl))
			assert.Len(t, tbl.Rows, tt.expectedRows)
			assert.Equal(t, tt.expectedAll, tbl.Total)
			assert.Equal(t, dataset.Columns, tbl.Columns)
		})
	}
}

func TestMissingDataset(t *testing.T) {
	router := setupRouter(t, filepath.Join(t.TempDir(), "missing.csv"))

	for _, target := range []string{"/api/cities", "/api/summary", "/api/dashboard", "/api/properties", "/api/charts/furniture"} {
		w := get(router, target)
		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
	}

	w := get(router, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, samplePath)

	w := get(router, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
