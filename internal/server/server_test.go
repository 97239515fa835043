package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/finwise/loancalc/internal/cache"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	return NewHandler(zap.NewNop(), cache.NewMemory(), cfg, "test")
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSummary(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/loan/summary", `{
		"principal": 200000,
		"annualRatePercent": 3.5,
		"termYears": 25
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Summary.MonthlyPayment < 1001.20 || resp.Summary.MonthlyPayment > 1001.30 {
		t.Errorf("monthly payment = %v, expected ~1001.25", resp.Summary.MonthlyPayment)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestHandleSummaryCached(t *testing.T) {
	h := newTestHandler(t)
	body := `{"principal": 50000, "annualRatePercent": 5, "termYears": 10}`

	first := postJSON(t, h, "/api/loan/summary", body)
	second := postJSON(t, h, "/api/loan/summary", body)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d, expected both %d", first.Code, second.Code, http.StatusOK)
	}

	var a, b summaryResponse
	if err := json.NewDecoder(first.Body).Decode(&a); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}
	if err := json.NewDecoder(second.Body).Decode(&b); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if a.Summary != b.Summary {
		t.Errorf("cached response diverged: %+v vs %+v", a.Summary, b.Summary)
	}
}

func TestHandleSummaryRejectsGet(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/loan/summary", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleSummaryBadJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/loan/summary", `{"principal": "not a number"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleSchedule(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/loan/schedule", `{
		"principal": 200000,
		"annualRatePercent": 3.5,
		"termYears": 25
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp scheduleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Schedule) != 300 {
		t.Errorf("schedule length = %d, expected 300", len(resp.Schedule))
	}
	if final := resp.Schedule[len(resp.Schedule)-1].Balance; final != 0 {
		t.Errorf("final balance = %v, expected 0", final)
	}
}

func TestHandleExtraPayment(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/loan/extra-payment", `{
		"principal": 150000,
		"annualRatePercent": 4.0,
		"termYears": 10,
		"extraPerMonth": 150
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp extraPaymentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.MonthsSaved <= 0 {
		t.Errorf("months saved = %d, expected > 0", resp.Result.MonthsSaved)
	}
	if resp.Result.InterestSaved <= 0 {
		t.Errorf("interest saved = %v, expected > 0", resp.Result.InterestSaved)
	}
}

func TestHandleAffordability(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/affordability", `{
		"monthlyIncome": 5000,
		"monthlyDebts": 500,
		"downPayment": 20000,
		"annualRatePercent": 3.5,
		"termYears": 25
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp affordabilityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.Outcome != "ok" {
		t.Errorf("outcome = %q (%s), expected ok", resp.Result.Outcome, resp.Result.Reason)
	}
	if resp.Result.MaxPrice <= resp.Result.ConservativePrice {
		t.Errorf("max price %v not above conservative price %v", resp.Result.MaxPrice, resp.Result.ConservativePrice)
	}
}

func TestHandleStampDuty(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/api/stamp-duty", `{"price": 2000000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp stampDutyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Duty != 151250 {
		t.Errorf("duty = %v, expected 151250", resp.Duty)
	}
}

func TestHandleScheduleCSV(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule.csv?principal=200000&annualRatePercent=3.5&termYears=25", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, expected text/csv", ct)
	}
	if !strings.Contains(rec.Body.String(), "cumulative interest") {
		t.Errorf("CSV body missing schedule header")
	}
}

func TestHandleSchedulePDF(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule.pdf?principal=50000&annualRatePercent=5&termYears=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Errorf("response is not a PDF document")
	}
}

func TestHandleVersion(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q, expected test", resp["version"])
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, 10*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatalf("first requests within capacity were rejected")
	}
	if rl.Allow("10.0.0.1") {
		t.Errorf("request over capacity was allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Errorf("separate client was throttled by another client's bucket")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Errorf("bucket did not refill after the window elapsed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	handler := RateLimitMiddleware(rl, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, expected %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, expected %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Address == "" || cfg.MaxBodyBytes <= 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.RateLimitWindow() != time.Minute {
		t.Errorf("default rate limit window = %v, expected 1m", cfg.RateLimitWindow())
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("default cache backend = %q, expected memory", cfg.Cache.Backend)
	}
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  backend: memcached\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected error for unsupported cache backend")
	}
}
