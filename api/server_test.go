package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barodeal/core/fee"
	"barodeal/core/schedule"
)

func setupTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	table, err := schedule.Default()
	require.NoError(t, err)
	engine := fee.NewEngine(table, fee.WithLogger(zap.NewNop()))
	return NewServerWithLogger(engine, cfg, zap.NewNop())
}

func postJSON(t *testing.T, s *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) CalculateResponse {
	t.Helper()
	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestCalculateSale(t *testing.T) {
	s := setupTestServer(t, Config{Version: "test"})

	w := postJSON(t, s, "/v1/calculate", map[string]string{
		"dealType":     "sale",
		"propertyType": "house",
		"price":        "90,000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, fee.StateComputed, resp.State)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "4500000", resp.Result.Commission.String())
	assert.Equal(t, "450000", resp.Result.VAT.String())
	assert.Equal(t, "4950000", resp.Result.CommissionWithVAT.String())
	require.NotNil(t, resp.Comparison)
	assert.Equal(t, "2250000", resp.Comparison.Discounted.String())
	require.NotNil(t, resp.Display)
	assert.Equal(t, "4,950,000원", resp.Display.CommissionWithVAT)
	assert.Equal(t, "90,000만원", resp.Display.TransactionAmount)
	assert.Nil(t, resp.Error)
}

func TestCalculateAcceptsKoreanLabels(t *testing.T) {
	s := setupTestServer(t, Config{})

	w := postJSON(t, s, "/v1/calculate", map[string]string{
		"region":       "서울",
		"dealType":     "월세",
		"propertyType": "주택",
		"deposit":      "1,000",
		"monthlyRent":  "50",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "60000000", resp.Result.TransactionAmount.String())
	assert.Equal(t, "240000", resp.Result.Commission.String())
}

func TestCalculateEngineErrors(t *testing.T) {
	s := setupTestServer(t, Config{})

	tests := []struct {
		name    string
		payload map[string]string
		code    string
		field   string
	}{
		{"missing deal", map[string]string{"propertyType": "house", "price": "100"}, "MISSING_INPUT", "dealType"},
		{"missing price", map[string]string{"dealType": "sale", "propertyType": "house"}, "MISSING_INPUT", "price"},
		{"bad price", map[string]string{"dealType": "sale", "propertyType": "house", "price": "abc"}, "INVALID_AMOUNT", "price"},
		{"bad rate", map[string]string{"dealType": "sale", "propertyType": "house", "price": "100", "negotiatedRate": "x"}, "INVALID_AMOUNT", "negotiatedRate"},
		{"exponent rate", map[string]string{"dealType": "sale", "propertyType": "house", "price": "100", "negotiatedRate": "1e-1"}, "INVALID_AMOUNT", "negotiatedRate"},
		{"unknown deal", map[string]string{"dealType": "auction", "propertyType": "house", "price": "100"}, "COMPUTATION_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, s, "/v1/calculate", tt.payload)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			resp := decode(t, w)
			assert.Equal(t, fee.StateFailed, resp.State)
			assert.Nil(t, resp.Result)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestCalculateBindingErrors(t *testing.T) {
	s := setupTestServer(t, Config{})

	w := postJSON(t, s, "/v1/calculate", map[string]string{"region": "busan", "dealType": "sale"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/calculate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateTrimsDealType(t *testing.T) {
	s := setupTestServer(t, Config{})

	w := postJSON(t, s, "/v1/calculate", map[string]string{
		"dealType":     " sale",
		"propertyType": "house",
		"price":        "50,000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2000000", decode(t, w).Result.Commission.String())
}

func TestCalculateBlankIsPending(t *testing.T) {
	s := setupTestServer(t, Config{})

	w := postJSON(t, s, "/v1/calculate", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, fee.StatePending, resp.State)
	assert.Nil(t, resp.Result)
	assert.Nil(t, resp.Error)
}

func TestSchedules(t *testing.T) {
	s := setupTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/schedules", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SchedulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Schedules, 9)
	assert.Len(t, resp.Fingerprint, 64)
	assert.Equal(t, s.engine.Table().Fingerprint().Hex(), resp.Fingerprint)
}

func TestHealthAndVersion(t *testing.T) {
	s := setupTestServer(t, Config{Version: "1.2.3"})

	for _, path := range []string{"/health", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "1.2.3", body["version"], path)
	}
}

func TestRequestID(t *testing.T) {
	s := setupTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	s := setupTestServer(t, Config{RateLimit: 0.001, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Error.Code)
}
