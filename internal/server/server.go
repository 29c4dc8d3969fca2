// Package server exposes the calculators over an HTTP JSON API and renders
// their charts as PNG or SVG images.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	calculators *calculator.Set
	schedules   *finance.ScheduleGenerator
	cache       cache.Cache
	cfg         *Config
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
// A nil cfg uses DefaultConfig; a nil store caches charts in memory.
func NewHandler(logger *zap.Logger, cfg *Config, store cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if store == nil {
		store = cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		calculators: calculator.Default(),
		schedules:   finance.NewScheduleGenerator(logger),
		cache:       store,
		cfg:         cfg,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// Calculator listing with field defaults
	mux.HandleFunc("/api/calculators", h.handleCalculators)

	// Compute one calculator from raw field text
	mux.HandleFunc("/api/calculate/{id}", h.handleCalculate)

	// Rendered chart images, e.g. /api/chart/emi.png
	mux.HandleFunc("/api/chart/{file}", h.handleChart)

	// EMI amortization schedule
	mux.HandleFunc("/api/emi/schedule", h.handleSchedule)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	limiter := newClientLimiter(cfg.RateLimit, cfg.RateBurst)
	return requestIDMiddleware(loggingMiddleware(logger)(limiter.middleware(mux)))
}

type fieldInfo struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Default string   `json:"default"`
	Options []string `json:"options,omitempty"`
}

type calculatorInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Fields []fieldInfo `json:"fields"`
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	infos := make([]calculatorInfo, 0, len(h.calculators.IDs()))
	for _, c := range h.calculators.All() {
		info := calculatorInfo{ID: c.ID(), Name: c.Name()}
		for _, field := range c.Fields() {
			info.Fields = append(info.Fields, fieldInfo{
				ID:      field.ID,
				Label:   field.Label,
				Kind:    field.Kind.String(),
				Default: field.DefaultText(),
				Options: field.Options,
			})
		}
		infos = append(infos, info)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": infos,
	})
}

type calculateRequest struct {
	Inputs map[string]interface{} `json:"inputs"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	c, err := h.calculators.Get(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.BodySizeBytes())
	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	values := make(calculator.Values, len(payload.Inputs))
	for field, raw := range payload.Inputs {
		values[field] = inputText(raw)
	}

	result := c.Compute(values)
	if err := checkFinite(result); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// checkFinite rejects results whose outputs or chart overflowed.
func checkFinite(result calculator.Result) error {
	for _, output := range result.Outputs {
		if !mathutil.IsFinite(output.Value) {
			return fmt.Errorf("%s result %q is not finite", result.ID, output.ElementID)
		}
	}
	if err := result.Chart.Validate(); errors.Is(err, chart.ErrNonFinite) {
		return fmt.Errorf("%s result chart: %w", result.ID, err)
	}
	return nil
}

// inputText turns a decoded JSON value into the text a form field would
// hold.
func inputText(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// queryValues collects the fields of c present in the query string.
func queryValues(c calculator.Calculator, r *http.Request) calculator.Values {
	query := r.URL.Query()
	values := make(calculator.Values)
	for _, field := range c.Fields() {
		if query.Has(field.ID) {
			values[field.ID] = query.Get(field.ID)
		}
	}
	return values
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	id, imageFormat, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok {
		imageFormat = h.cfg.Chart.Format
	}
	if err := validation.ValidateChartFormat(imageFormat); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	c, err := h.calculators.Get(id)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	width, height, err := h.chartSize(r)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	renderer, err := chart.NewRenderer(width, height, imageFormat)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	spec := c.Compute(queryValues(c, r)).Chart
	if err := spec.Validate(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chart.ErrEmptyChart) || errors.Is(err, chart.ErrNonFinite) {
			status = http.StatusUnprocessableEntity
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("failed to render chart: %v", err), op)
		return
	}

	key, err := renderer.CacheKey(spec)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	data, hit := h.cachedChart(r.Context(), key)
	if !hit {
		data, err = renderer.RenderBytes(spec)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, chart.ErrEmptyChart) {
				status = http.StatusUnprocessableEntity
			}
			h.respondErrorWithOp(w, status, fmt.Sprintf("failed to render chart: %v", err), op)
			return
		}
		if err := h.cache.Set(r.Context(), key, data, h.cfg.CacheTTL()); err != nil {
			h.logger.Warn("failed to cache chart",
				zap.String("op", op),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write chart response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) cachedChart(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("chart cache lookup failed",
			zap.String("op", "server.cachedChart"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	return data, ok
}

func (h *handler) chartSize(r *http.Request) (int, int, error) {
	width, height := h.cfg.Chart.Width, h.cfg.Chart.Height
	query := r.URL.Query()
	if text := query.Get("width"); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid width %q", text)
		}
		width = n
	}
	if text := query.Get("height"); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid height %q", text)
		}
		height = n
	}
	if err := validation.ValidateChartSize(width, height, constants.MaxChartDimension); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

type scheduleResponse struct {
	Principal      float64               `json:"principal"`
	AnnualRate     float64               `json:"annualRate"`
	Months         float64               `json:"months"`
	MonthlyPayment float64               `json:"monthlyPayment"`
	TotalInterest  float64               `json:"totalInterest"`
	Installments   []finance.Installment `json:"installments,omitempty"`
	Years          []finance.YearSummary `json:"years,omitempty"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	emi := calculator.EMI{}
	terms, schedule, err := emi.Schedule(queryValues(emi, r), h.schedules)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to build schedule: %v", err), op)
		return
	}

	result := finance.EMI(terms.Principal, terms.AnnualRate, terms.Months())
	response := scheduleResponse{
		Principal:      terms.Principal,
		AnnualRate:     terms.AnnualRate,
		Months:         terms.Months(),
		MonthlyPayment: result.MonthlyPayment,
		TotalInterest:  result.TotalInterest,
	}

	yearly, _ := strconv.ParseBool(r.URL.Query().Get("yearly"))
	if yearly {
		response.Years = finance.SummarizeByYear(schedule)
	} else {
		response.Installments = schedule
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("calculator request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
			zap.String("requestId", w.Header().Get(requestIDHeader)),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status so an encoding
// failure can still be reported as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.String("requestId", w.Header().Get(requestIDHeader)),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body.Reset()
		_ = json.NewEncoder(&body).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// NewHTTPServer wraps handler in an http.Server listening on cfg.Address.
func NewHTTPServer(cfg *Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
