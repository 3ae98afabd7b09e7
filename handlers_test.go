package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter()

	w := performRequest(t, r, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, serviceName, body.Service)
	assert.Equal(t, serviceVersion, body.Version)
}

func TestRequestIDHeader(t *testing.T) {
	r := setupRouter()

	w := performRequest(t, r, http.MethodGet, "/health", "")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestStatisticsEndpoint(t *testing.T) {
	r := setupRouter()

	body := `{"transactions": [
		{"date": "2024-01-01", "cost": 100, "type": "income"},
		{"date": "2024-01-02", "cost": 50, "type": "expense"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/statistics", body)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.JSONEq(t, "true", string(resp["success"]))

	var stats Statistics
	require.NoError(t, json.Unmarshal(resp["statistics"], &stats))
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 75.0, stats.Mean)
	assert.Equal(t, 50.0, stats.Min)
	assert.Equal(t, 100.0, stats.Max)
	assert.Equal(t, 150.0, stats.Total)
}

func TestStatisticsEndpointEmptyList(t *testing.T) {
	r := setupRouter()

	w := performRequest(t, r, http.MethodPost, "/api/financial/statistics", `{"transactions": []}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No transactions provided", body.Error)
}

func TestStatisticsEndpointMalformedBody(t *testing.T) {
	r := setupRouter()

	w := performRequest(t, r, http.MethodPost, "/api/financial/statistics", `{"transactions": [{"cost": "lots"}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendsEndpointDefaultWindow(t *testing.T) {
	r := setupRouter()

	// Three distinct days, fewer than the default 7-day window
	body := `{"transactions": [
		{"date": "2024-01-01", "cost": 10, "type": "income"},
		{"date": "2024-01-02", "cost": 20, "type": "income"},
		{"date": "2024-01-03", "cost": 5, "type": "expense"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/trends", body)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	var trends Trends
	require.NoError(t, json.Unmarshal(resp["trends"], &trends))
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, trends.Dates)
	assert.Equal(t, []float64{10, 20, -5}, trends.MovingAverage)
	assert.Zero(t, trends.AverageGrowthRate)
}

func TestTrendsEndpointExplicitWindow(t *testing.T) {
	r := setupRouter()

	body := `{"window_size": 2, "transactions": [
		{"date": "2024-01-01", "cost": 10, "type": "income"},
		{"date": "2024-01-02", "cost": 20, "type": "income"},
		{"date": "2024-01-03", "cost": 30, "type": "income"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/trends", body)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	var trends Trends
	require.NoError(t, json.Unmarshal(resp["trends"], &trends))
	assert.Equal(t, []float64{15, 25}, trends.MovingAverage)
	assert.Len(t, trends.Dates, len(trends.MovingAverage))
}

func TestRiskMetricsEndpointInsufficientData(t *testing.T) {
	r := setupRouter()

	body := `{"transactions": [{"date": "2024-01-01", "cost": 100, "type": "income"}]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/risk-metrics", body)

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Contains(t, resp, "error")
	assert.NotContains(t, resp, "risk_metrics")
	assert.JSONEq(t, `"Insufficient data for risk calculations"`, string(resp["error"]))
}

func TestRiskMetricsEndpoint(t *testing.T) {
	r := setupRouter()

	body := `{"transactions": [
		{"date": "2024-01-01", "cost": 100, "type": "income"},
		{"date": "2024-01-02", "cost": 50, "type": "expense"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/risk-metrics", body)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	var metrics RiskMetrics
	require.NoError(t, json.Unmarshal(resp["risk_metrics"], &metrics))
	assert.Equal(t, 2, metrics.TotalDays)
	assert.LessOrEqual(t, metrics.MaxDrawdown, 0.0)
}

func TestForecastEndpointZeroDays(t *testing.T) {
	r := setupRouter()

	// Explicit forecast_days of 0 still yields one projected point
	body := `{"forecast_days": 0, "transactions": [
		{"date": "2024-01-15", "cost": 100, "type": "income"},
		{"date": "2024-02-15", "cost": 200, "type": "income"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/forecast", body)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	var forecast Forecast
	require.NoError(t, json.Unmarshal(resp["forecast"], &forecast))
	assert.Equal(t, []string{"Forecast_1"}, forecast.ForecastMonths)
	require.Len(t, forecast.ForecastValues, 1)
	assert.InDelta(t, 300.0, forecast.ForecastValues[0], 1e-9)
}

func TestForecastEndpointInsufficientMonths(t *testing.T) {
	r := setupRouter()

	body := `{"transactions": [
		{"date": "2024-01-01", "cost": 100, "type": "income"},
		{"date": "2024-01-20", "cost": 50, "type": "expense"}
	]}`
	w := performRequest(t, r, http.MethodPost, "/api/financial/forecast", body)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var respBody struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, "Insufficient data for forecasting", respBody.Error)
}

func TestInvalidJSONBody(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{
		"/api/financial/statistics",
		"/api/financial/trends",
		"/api/financial/risk-metrics",
		"/api/financial/forecast",
	} {
		w := performRequest(t, r, http.MethodPost, path, "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
