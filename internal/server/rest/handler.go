// sentiric-numbering-service/internal/server/rest/handler.go
package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sentiric/sentiric-numbering-service/internal/phonenumber"
	"github.com/sentiric/sentiric-numbering-service/internal/service/numbering"
)

// maxBodyBytes, istek gövdeleri için üst sınırdır. Plan dokümanları da buna dahildir.
const maxBodyBytes = 64 << 10

// Service arayüzü, handler'ın service katmanından ne beklediğini tanımlar.
type Service interface {
	Parse(ctx context.Context, region, text string) (*numbering.Result, error)
	Format(ctx context.Context, region, text, mode string) (string, error)
	Normalize(ctx context.Context, region, raw string) (string, error)
	Regions() []string

	ListPlans(ctx context.Context) ([]numbering.Plan, error)
	GetPlan(ctx context.Context, region string) (*numbering.Plan, error)
	PutPlan(ctx context.Context, region, document string) (*numbering.Plan, error)
	DeletePlan(ctx context.Context, region string) error
}

type Handler struct {
	svc        Service
	validator  *validator.Validate
	adminToken string
	log        zerolog.Logger
}

// NewHandler, adminToken boşsa plan yazma uç noktalarını kapalı tutar.
func NewHandler(svc Service, adminToken string, log zerolog.Logger) *Handler {
	if adminToken == "" {
		log.Warn().Msg("⚠️ ADMIN_TOKEN tanımlı değil, plan yazma uç noktaları kapalı.")
	}
	return &Handler{svc: svc, validator: validator.New(), adminToken: adminToken, log: log}
}

// Register, numara ve plan uç noktalarını router'a bağlar.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/numbers/parse", h.handleParse)
		r.Post("/numbers/format", h.handleFormat)
		r.Post("/numbers/normalize", h.handleNormalize)
		r.Get("/regions", h.handleRegions)

		r.Get("/plans", h.handleListPlans)
		r.Get("/plans/{region}", h.handleGetPlan)

		// Planlar süreç genelindeki kural tablosunu değiştirir.
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdminToken)
			r.Put("/plans/{region}", h.handlePutPlan)
			r.Delete("/plans/{region}", h.handleDeletePlan)
		})
	})
}

func (h *Handler) requireAdminToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			writeErrorBody(w, http.StatusForbidden, "forbidden", "plan yönetimi devre dışı")
			return
		}
		token := r.Header.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			h.log.Warn().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Msg("Admin token eşleşmedi")
			writeErrorBody(w, http.StatusUnauthorized, "unauthorized", "admin token gerekli")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type parseRequest struct {
	Text   string `json:"text" validate:"required,max=250"`
	Region string `json:"region,omitempty" validate:"omitempty,len=2,alpha"`
}

type formatRequest struct {
	Text   string `json:"text" validate:"required,max=250"`
	Region string `json:"region,omitempty" validate:"omitempty,len=2,alpha"`
	Mode   string `json:"mode" validate:"required"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
}

type normalizeRequest struct {
	Value  string `json:"value" validate:"required,max=512"`
	Region string `json:"region,omitempty" validate:"omitempty,len=2,alpha"`
}

type normalizeResponse struct {
	E164 string `json:"e164"`
}

type regionsResponse struct {
	Regions []string `json:"regions"`
}

type plansResponse struct {
	Plans []numbering.Plan `json:"plans"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.Parse(r.Context(), req.Region, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.Format(r.Context(), req.Region, req.Text, req.Mode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatResponse{Formatted: out})
}

func (h *Handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.svc.Normalize(r.Context(), req.Region, req.Value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{E164: out})
}

func (h *Handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, regionsResponse{Regions: h.svc.Regions()})
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListPlans(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if plans == nil {
		plans = []numbering.Plan{}
	}
	writeJSON(w, http.StatusOK, plansResponse{Plans: plans})
}

func (h *Handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.GetPlan(r.Context(), chi.URLParam(r, "region"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// handlePutPlan, gövdeyi YAML plan dokümanı olarak okur.
func (h *Handler) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "request_too_large", err.Error())
		return
	}
	plan, err := h.svc.PutPlan(r.Context(), chi.URLParam(r, "region"), string(body))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePlan(r.Context(), chi.URLParam(r, "region")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "geçersiz JSON gövdesi: "+err.Error())
		return false
	}
	if err := h.validator.Struct(v); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return false
	}
	return true
}

// writeError, servis hatalarını HTTP durum kodlarına çevirir.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("İstek işlenemedi")
	}
	writeErrorBody(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, numbering.ErrInvalidRegion),
		errors.Is(err, numbering.ErrInvalidMode),
		errors.Is(err, phonenumber.ErrInvalidCountry):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, numbering.ErrInvalidPlan):
		return http.StatusBadRequest, "invalid_plan"
	case errors.Is(err, numbering.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, phonenumber.ErrNoNumber),
		errors.Is(err, phonenumber.ErrTooShortNsn),
		errors.Is(err, phonenumber.ErrTooLong),
		errors.Is(err, phonenumber.ErrMalformedDigits),
		errors.Is(err, phonenumber.ErrInvalidCountryCode),
		errors.Is(err, phonenumber.ErrAmbiguousCountry):
		return http.StatusUnprocessableEntity, "unparseable_number"
	case errors.Is(err, numbering.ErrTableMissing):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal"
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func writeErrorBody(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, ErrorDescription: description})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
