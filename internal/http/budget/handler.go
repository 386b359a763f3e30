package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{category}", h.set)
	r.Delete("/{category}", h.clear)
}

type limitsResponse struct {
	Tracked []string                   `json:"tracked"`
	Limits  map[string]decimal.Decimal `json:"limits"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, limitsResponse{
		Tracked: h.svc.Tracked(),
		Limits:  h.svc.Limits(),
	})
}

// setLimitRequest accepts the limit as a JSON number or numeric string.
type setLimitRequest struct {
	Limit json.Number `json:"limit"`
}

type limitResponse struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	var req setLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, err := h.svc.SetLimit(r.Context(), category, req.Limit.String())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, limitResponse{Category: category, Limit: limit})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	if err := h.svc.ClearLimit(r.Context(), category); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, budget.ErrInvalidLimit) || errors.Is(err, budget.ErrInvalidCategory) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.ErrorContext(r.Context(), "failed to update budget limits", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
