package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/finance"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	return NewHandler(zap.NewNop(), cfg, nil, "1.2.3")
}

func serve(handler http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleVersion(t *testing.T) {
	rr := serve(newTestHandler(t), http.MethodGet, "/api/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %q", resp["version"])
	}

	dev := NewHandler(nil, nil, nil, "  ")
	rr = serve(dev, http.MethodGet, "/api/version", nil)
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected dev version, got %s", rr.Body.String())
	}
}

func TestHandleCalculators(t *testing.T) {
	rr := serve(newTestHandler(t), http.MethodGet, "/api/calculators", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Calculators []calculatorInfo `json:"calculators"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Calculators) != 4 {
		t.Fatalf("expected 4 calculators, got %d", len(resp.Calculators))
	}

	emi := resp.Calculators[0]
	if emi.ID != "emi" || len(emi.Fields) != 4 {
		t.Fatalf("unexpected first calculator %+v", emi)
	}
	if emi.Fields[0].Default != "500000" || emi.Fields[0].Kind != "amount" {
		t.Fatalf("unexpected amount field %+v", emi.Fields[0])
	}
	if tenure := emi.Fields[3]; tenure.Default != "years" || len(tenure.Options) != 2 {
		t.Fatalf("unexpected tenure unit field %+v", tenure)
	}
}

func TestHandleCalculate(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name      string
		id        string
		body      string
		elementID string
		expected  string
	}{
		{
			name:      "EMI defaults",
			id:        "emi",
			body:      `{"inputs": {}}`,
			elementID: "emi-result",
			expected:  "₹4,339",
		},
		{
			name:      "EMI numeric inputs",
			id:        "emi",
			body:      `{"inputs": {"emi-amount": 500000, "emi-rate": 8.5, "emi-tenure": "20"}}`,
			elementID: "emi-total-payment",
			expected:  "₹10,41,388",
		},
		{
			name:      "FD zero rate",
			id:        "fd",
			body:      `{"inputs": {"fd-rate": 0}}`,
			elementID: "fd-maturity",
			expected:  "₹1,00,000",
		},
		{
			name:      "SIP invalid text falls back",
			id:        "sip",
			body:      `{"inputs": {"sip-amount": "five thousand", "sip-period": null}}`,
			elementID: "sip-final-value",
			expected:  "₹11,61,695",
		},
		{
			name:      "Savings defaults",
			id:        "savings",
			body:      `{}`,
			elementID: "savings-monthly",
			expected:  "₹5,430",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(handler, http.MethodPost, "/api/calculate/"+tt.id, []byte(tt.body))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var result calculator.Result
			if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			output, ok := result.Output(tt.elementID)
			if !ok {
				t.Fatalf("missing output %s", tt.elementID)
			}
			if output.Formatted != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, output.Formatted)
			}
			if result.Chart.Type == "" {
				t.Fatal("expected chart spec in response")
			}
		})
	}
}

func TestHandleCalculateErrors(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/api/calculate/emi", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}

	rr = serve(handler, http.MethodPost, "/api/calculate/crypto", []byte(`{}`))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unknown calculator") {
		t.Fatalf("expected unknown calculator error, got %s", rr.Body.String())
	}

	rr = serve(handler, http.MethodPost, "/api/calculate/emi", []byte(`{"inputs": [`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleCalculateTinyRate(t *testing.T) {
	handler := newTestHandler(t)

	for _, rate := range []string{"1e-17", "-1e-17", "1e-14"} {
		t.Run(rate, func(t *testing.T) {
			body := []byte(`{"inputs": {"emi-amount": 500000, "emi-rate": "` + rate + `", "emi-tenure": 20}}`)
			rr := serve(handler, http.MethodPost, "/api/calculate/emi", body)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var result calculator.Result
			if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			output, _ := result.Output("emi-result")
			if output.Formatted != "₹2,083" {
				t.Fatalf("expected ₹2,083, got %s", output.Formatted)
			}
		})
	}
}

func TestHandleCalculateNonFinite(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		id   string
		body string
	}{
		{"FD overflows", "fd", `{"inputs": {"fd-period": "1e9"}}`},
		{"EMI total overflows", "emi", `{"inputs": {"emi-amount": "1e308"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(handler, http.MethodPost, "/api/calculate/"+tt.id, []byte(tt.body))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.Contains(resp["error"], "not finite") {
				t.Fatalf("expected non-finite error, got %q", resp["error"])
			}
		})
	}
}

func TestHandleCalculateLongSIPSeries(t *testing.T) {
	handler := newTestHandler(t)

	body := []byte(`{"inputs": {"sip-period": "1e9", "sip-rate": 0}}`)
	rr := serve(handler, http.MethodPost, "/api/calculate/sip", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result calculator.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Chart.Labels) != finance.MaxSeriesYears {
		t.Fatalf("expected %d chart points, got %d", finance.MaxSeriesYears, len(result.Chart.Labels))
	}

	chartResp := serve(handler, http.MethodGet, "/api/chart/sip.svg?sip-period=1e9&sip-rate=0", nil)
	if chartResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", chartResp.Code, chartResp.Body.String())
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	h := &handler{logger: zap.NewNop()}
	rr := httptest.NewRecorder()

	h.writeJSON(rr, http.StatusOK, map[string]float64{"payment": math.Inf(1)})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "failed to encode response") {
		t.Fatalf("expected error body, got %q", rr.Body.String())
	}
}

func TestHandleCalculateBodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBodySizeBytes(16)
	handler := NewHandler(zap.NewNop(), cfg, nil, "")

	body := []byte(`{"inputs": {"emi-amount": "1000000000000"}}`)
	rr := serve(handler, http.MethodPost, "/api/calculate/emi", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleChart(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/api/chart/fd.png?fd-principal=250000", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG signature")
	}
	if rr.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected cache miss, got %s", rr.Header().Get("X-Cache"))
	}

	again := serve(handler, http.MethodGet, "/api/chart/fd.png?fd-principal=250000", nil)
	if again.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected cache hit, got %s", again.Header().Get("X-Cache"))
	}
	if !bytes.Equal(rr.Body.Bytes(), again.Body.Bytes()) {
		t.Fatal("cached chart differs from rendered chart")
	}

	svg := serve(handler, http.MethodGet, "/api/chart/sip.svg?sip-period=3&width=400&height=300", nil)
	if svg.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", svg.Code, svg.Body.String())
	}
	if ct := svg.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("expected image/svg+xml, got %s", ct)
	}
	if !strings.Contains(svg.Body.String(), "<svg") {
		t.Fatal("expected SVG document")
	}
}

func TestHandleChartErrors(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		target string
		status int
	}{
		{target: "/api/chart/emi.gif", status: http.StatusBadRequest},
		{target: "/api/chart/bond.png", status: http.StatusNotFound},
		{target: "/api/chart/emi.png?width=wide", status: http.StatusBadRequest},
		{target: "/api/chart/emi.png?height=0", status: http.StatusBadRequest},
		{target: "/api/chart/emi.png?width=100000", status: http.StatusBadRequest},
		{target: "/api/chart/fd.png?fd-period=1e9", status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := serve(handler, http.MethodGet, tt.target, nil)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}

	rr := serve(handler, http.MethodPost, "/api/chart/emi.png", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleChartSharedCache(t *testing.T) {
	store := cache.NewMemoryCache(8)
	cfg := DefaultConfig()
	cfg.RateBurst = 100

	first := NewHandler(zap.NewNop(), cfg, store, "")
	second := NewHandler(zap.NewNop(), cfg, store, "")

	serve(first, http.MethodGet, "/api/chart/savings.png", nil)
	rr := serve(second, http.MethodGet, "/api/chart/savings.png", nil)
	if rr.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected second handler to hit the shared cache, got %s", rr.Header().Get("X-Cache"))
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 cached chart, got %d", store.Len())
	}
}

func TestHandleSchedule(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/api/emi/schedule?emi-amount=120000&emi-rate=12&emi-tenure=12&emi-tenure-type=months", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(resp.Installments))
	}
	if resp.Installments[11].RemainingPrincipal != 0 {
		t.Fatalf("expected loan to be settled, got %v", resp.Installments[11].RemainingPrincipal)
	}
	if resp.Installments[0].Interest != 1200 {
		t.Fatalf("expected first month interest 1200, got %v", resp.Installments[0].Interest)
	}

	rr = serve(handler, http.MethodGet, "/api/emi/schedule?emi-tenure=3&yearly=true", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Years) != 3 {
		t.Fatalf("expected 3 yearly rows, got %d", len(resp.Years))
	}

	rr = serve(handler, http.MethodGet, "/api/emi/schedule?emi-tenure=101", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for an over-long tenure, got %d", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/api/version", nil)
	if len(rr.Header().Get(requestIDHeader)) != 36 {
		t.Fatalf("expected generated UUID request ID, got %q", rr.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(requestIDHeader, "abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "abc123" {
		t.Fatalf("expected echoed request ID, got %q", rec.Header().Get(requestIDHeader))
	}
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	handler := NewHandler(zap.NewNop(), cfg, nil, "")

	for i := 0; i < 2; i++ {
		if rr := serve(handler, http.MethodGet, "/api/version", nil); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rr.Code)
		}
	}
	rr := serve(handler, http.MethodGet, "/api/version", nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rr.Code)
	}

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for another client, got %d", rec.Code)
	}
}

func TestClientLimiterDropsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newClientLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.allow("a")
	limiter.allow("b")
	if limiter.tracked() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", limiter.tracked())
	}

	now = now.Add(limiterIdleTimeout + time.Second)
	limiter.allow("c")
	if limiter.tracked() != 1 {
		t.Fatalf("expected idle clients to be dropped, got %d", limiter.tracked())
	}
}
