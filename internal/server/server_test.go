package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/cloud-ru/loan-engine-go/internal/cache"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/service"
	"github.com/cloud-ru/loan-engine-go/internal/tools"
)

func newTestServer(t *testing.T) (http.Handler, *test.Hook) {
	t.Helper()
	cfg := config.Default()
	log, hook := test.NewNullLogger()
	svc := service.NewCalculator(engine.New(cfg), cache.NewMemoryCache(time.Minute), log)
	registry := tools.NewRegistry(cfg, svc, otel.Tracer("test"))
	return New(registry, log).Routes(), hook
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h, hook := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "abc-123", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestListTools(t *testing.T) {
	h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tools, 5)
}

func TestCallTool(t *testing.T) {
	h, _ := newTestServer(t)

	rec := post(h, "/api/v1/tools/loan_overpayment",
		`{"principal": 1000000, "annual_rate_percent": 12, "months": 60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		MonthlyPayment      float64 `json:"monthly_payment"`
		EffectiveTermMonths int     `json:"effective_term_months"`
		Schedule            []struct {
			Period int `json:"period"`
		} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 22244.45, result.MonthlyPayment)
	assert.Equal(t, 60, result.EffectiveTermMonths)
	assert.Len(t, result.Schedule, 60)
}

func TestCallToolCSV(t *testing.T) {
	h, _ := newTestServer(t)

	rec := post(h, "/api/v1/tools/leasing?format=csv",
		`{"asset_value": 2000000, "annual_rate_percent": 12, "months": 36,
		  "down_payment": 20, "down_payment_kind": "percent", "buyout": 10, "buyout_kind": "percent"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 37)
	assert.Equal(t, "period,payment,interest,principal,remaining_balance", lines[0])
}

func TestCallToolCSVNotSupported(t *testing.T) {
	h, _ := newTestServer(t)

	rec := post(h, "/api/v1/tools/compare_payment_types?format=csv",
		`{"principal": 1000000, "annual_rate_percent": 12, "months": 60}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallToolValidationError(t *testing.T) {
	h, _ := newTestServer(t)

	rec := post(h, "/api/v1/tools/loan_overpayment",
		`{"principal": -1, "annual_rate_percent": 1200, "months": 700, "additional_payment": -5}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error)
	assert.Len(t, body.Violations, 4)
}

func TestCallToolErrors(t *testing.T) {
	h, _ := newTestServer(t)

	rec := post(h, "/api/v1/tools/mortgage", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(h, "/api/v1/tools/loan_overpayment", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tools/loan_overpayment", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	post(h, "/api/v1/tools/loan_overpayment", `{"principal": 1000, "annual_rate_percent": 5, "months": 12}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tool_calls_total")
}
