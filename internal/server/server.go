// Package server exposes the loan engine over a JSON HTTP API.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finwise/loancalc/internal/cache"
	"github.com/finwise/loancalc/internal/metrics"
	"github.com/finwise/loancalc/internal/tracing"
	"github.com/finwise/loancalc/pkg/loans"
	"github.com/finwise/loancalc/pkg/output"
	"github.com/finwise/loancalc/pkg/stampduty"
	"github.com/finwise/loancalc/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	logger       *zap.Logger
	cache        cache.Cache
	maxBodyBytes int64
	version      string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, responseCache cache.Cache, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if responseCache == nil {
		responseCache = cache.NewMemory()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:       logger,
		cache:        responseCache,
		maxBodyBytes: cfg.MaxBodyBytes,
		version:      trimmedVersion,
	}

	limiter := NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow())

	mux := http.NewServeMux()
	mux.Handle("/api/loan/summary", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleSummary)))
	mux.Handle("/api/loan/schedule", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleSchedule)))
	mux.Handle("/api/loan/extra-payment", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleExtraPayment)))
	mux.Handle("/api/affordability", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleAffordability)))
	mux.Handle("/api/stamp-duty", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleStampDuty)))
	mux.Handle("/api/schedule.csv", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleScheduleCSV)))
	mux.Handle("/api/schedule.pdf", RateLimitMiddleware(limiter, http.HandlerFunc(h.handleSchedulePDF)))
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type summaryRequest struct {
	loans.Parameters
}

type summaryResponse struct {
	Summary  loans.Summary `json:"summary"`
	Warnings []string      `json:"warnings,omitempty"`
}

type scheduleRequest struct {
	loans.Parameters
}

type scheduleResponse struct {
	Summary  loans.Summary `json:"summary"`
	Schedule []loans.Row   `json:"schedule"`
	Warnings []string      `json:"warnings,omitempty"`
}

type extraPaymentRequest struct {
	loans.Parameters
	ExtraPerMonth float64 `json:"extraPerMonth"`
}

type extraPaymentResponse struct {
	Result   loans.ExtraPaymentResult `json:"result"`
	Warnings []string                 `json:"warnings,omitempty"`
}

type affordabilityResponse struct {
	Result   loans.AffordabilityResult `json:"result"`
	Warnings []string                  `json:"warnings,omitempty"`
}

type stampDutyRequest struct {
	Price    float64             `json:"price"`
	Brackets []stampduty.Bracket `json:"brackets,omitempty"`
}

type stampDutyResponse struct {
	Price float64 `json:"price"`
	Duty  float64 `json:"duty"`
}

// decode reads a JSON request body with the configured size cap. It returns
// the raw bytes alongside so handlers can build cache keys.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer func() { _ = body.Close() }()

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	raw, err := json.Marshal(dst)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return raw, true
}

func (h *handler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

// cachedJSON serves a response from the cache when an identical request was
// seen before; otherwise it computes, stores, and serves it.
func (h *handler) cachedJSON(w http.ResponseWriter, r *http.Request, kind string, raw []byte, compute func() interface{}) {
	key := kind + ":" + hashKey(raw)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
		return
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	start := time.Now()
	payload := compute()
	metrics.CalculationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.Calculations.WithLabelValues(kind, "ok").Inc()

	encoded, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.cachedJSON"),
			zap.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := h.cache.Set(r.Context(), key, string(encoded)); err != nil {
		h.logger.Warn("failed to store response in cache",
			zap.String("op", "server.cachedJSON"),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(encoded)
	_, _ = w.Write([]byte("\n"))
}

func hashKey(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer.Start(r.Context(), "loan.summary")
	defer span.End()
	r = r.WithContext(ctx)

	var req summaryRequest
	raw, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	h.cachedJSON(w, r, "summary", raw, func() interface{} {
		params, warnings := validation.SanitizeParameters(req.Parameters)
		h.logWarnings("summary", warnings)
		return summaryResponse{Summary: loans.Summarize(params), Warnings: warnings}
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer.Start(r.Context(), "loan.schedule")
	defer span.End()
	r = r.WithContext(ctx)

	var req scheduleRequest
	raw, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	h.cachedJSON(w, r, "schedule", raw, func() interface{} {
		params, warnings := validation.SanitizeParameters(req.Parameters)
		h.logWarnings("schedule", warnings)
		summary := loans.Summarize(params)
		schedule := buildSchedule(summary)
		return scheduleResponse{Summary: summary, Schedule: schedule, Warnings: warnings}
	})
}

func (h *handler) handleExtraPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer.Start(r.Context(), "loan.extraPayment")
	defer span.End()
	r = r.WithContext(ctx)

	var req extraPaymentRequest
	raw, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	h.cachedJSON(w, r, "extraPayment", raw, func() interface{} {
		params, warnings := validation.SanitizeParameters(req.Parameters)
		h.logWarnings("extraPayment", warnings)
		summary := loans.Summarize(params)
		schedule := buildSchedule(summary)
		result := loans.ApplyExtraPayment(schedule, summary.AnnualRatePercent, req.ExtraPerMonth)
		return extraPaymentResponse{Result: result, Warnings: warnings}
	})
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer.Start(r.Context(), "affordability")
	defer span.End()
	r = r.WithContext(ctx)

	var req loans.AffordabilityInput
	raw, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	h.cachedJSON(w, r, "affordability", raw, func() interface{} {
		input, warnings := validation.SanitizeAffordabilityInput(req)
		h.logWarnings("affordability", warnings)
		return affordabilityResponse{Result: loans.SolveAffordability(h.logger, input), Warnings: warnings}
	})
}

func (h *handler) handleStampDuty(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Tracer.Start(r.Context(), "stampDuty")
	defer span.End()
	r = r.WithContext(ctx)

	var req stampDutyRequest
	raw, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	h.cachedJSON(w, r, "stampDuty", raw, func() interface{} {
		brackets := req.Brackets
		if len(brackets) == 0 {
			brackets = stampduty.DefaultBrackets()
		}
		return stampDutyResponse{Price: req.Price, Duty: stampduty.Calculate(req.Price, brackets)}
	})
}

// scheduleFromQuery builds a schedule from GET query parameters for the
// download endpoints.
func (h *handler) scheduleFromQuery(w http.ResponseWriter, r *http.Request) (loans.Summary, []loans.Row, output.Options, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return loans.Summary{}, nil, output.Options{}, false
	}

	q := r.URL.Query()
	parse := func(name string) float64 {
		v, _ := strconv.ParseFloat(q.Get(name), 64)
		return v
	}
	termYears, _ := strconv.Atoi(q.Get("termYears"))
	graceMonths, _ := strconv.Atoi(q.Get("gracePeriodMonths"))

	params, warnings := validation.SanitizeParameters(loans.Parameters{
		Principal:         parse("principal"),
		AnnualRatePercent: parse("annualRatePercent"),
		TermYears:         termYears,
		DownPayment:       parse("downPayment"),
		TradeInValue:      parse("tradeInValue"),
		GracePeriodMonths: graceMonths,
	})
	h.logWarnings("download", warnings)

	summary := loans.Summarize(params)
	schedule := buildSchedule(summary)
	return summary, schedule, output.Options{StartMonth: q.Get("startMonth")}, true
}

func (h *handler) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	summary, schedule, opts, ok := h.scheduleFromQuery(w, r)
	if !ok {
		return
	}

	body, err := output.ScheduleCSV(&summary, schedule, opts)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=schedule.csv")
	_, _ = w.Write([]byte(body))
}

func (h *handler) handleSchedulePDF(w http.ResponseWriter, r *http.Request) {
	summary, schedule, opts, ok := h.scheduleFromQuery(w, r)
	if !ok {
		return
	}

	body, err := output.SchedulePDF(summary, schedule, opts)
	if err != nil {
		h.logger.Error("failed to render PDF",
			zap.String("op", "server.handleSchedulePDF"),
			zap.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=schedule.pdf")
	_, _ = w.Write(body)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) logWarnings(kind string, warnings []string) {
	for _, warning := range warnings {
		h.logger.Warn("input warning: "+warning,
			zap.String("op", "server."+kind),
		)
	}
}

// buildSchedule picks the schedule shape matching the summary's repayment
// type.
func buildSchedule(summary loans.Summary) []loans.Row {
	if summary.Type == loans.InterestOnly {
		return loans.InterestOnlySchedule(summary.EffectivePrincipal, summary.AnnualRatePercent, summary.TermYears, summary.GracePeriodMonths)
	}
	return loans.GenerateSchedule(summary.EffectivePrincipal, summary.AnnualRatePercent, summary.TermYears, summary.GracePeriodMonths)
}
