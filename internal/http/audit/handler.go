package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cvwatch/sunlight/internal/audit"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
	r.Get("/suggestions", h.suggestions)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type suggestionsResponse struct {
	FilerName  string            `json:"filer_name"`
	Candidates []audit.Candidate `json:"candidates"`
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	filerName := r.URL.Query().Get("filer_name")
	if filerName == "" {
		http.Error(w, "filer_name is required", http.StatusBadRequest)
		return
	}

	candidates, err := h.svc.Suggest(r.Context(), filerName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestionsResponse{FilerName: filerName, Candidates: candidates}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
