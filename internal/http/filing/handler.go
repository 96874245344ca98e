package filing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/http/auth"
	"github.com/cvwatch/sunlight/internal/profile"
)

type Handler struct {
	svc      *filing.Service
	profiles *profile.Service
}

func NewHandler(svc *filing.Service, profiles *profile.Service) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/transactions", h.transactions)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequirePrincipal)
		r.Post("/{id}/link", h.link)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := filing.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		st := filing.Status(s)
		filter.Status = &st
	}

	if s := r.URL.Query().Get("profile_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid profile_id", http.StatusBadRequest)
			return
		}

		filter.ProfileID = &id
	}

	if r.URL.Query().Get("unresolved") == "true" {
		filter.Unresolved = true
	}

	filings, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(filings)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, filing.ErrNotFound) {
			http.Error(w, "filing not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	txs, err := h.svc.Transactions(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTransactionList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type linkRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
}

// link records an operator's manual resolution of a filing. The target
// profile must exist; linking survives later re-ingestion of the same source.
func (h *Handler) link(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.profiles.Get(r.Context(), req.ProfileID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.svc.LinkProfile(r.Context(), id, req.ProfileID); err != nil {
		if errors.Is(err, filing.ErrNotFound) {
			http.Error(w, "filing not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	principal, _ := auth.FromContext(r.Context())
	slog.Info("filing linked manually", "filing_id", id, "profile_id", req.ProfileID, "editor", principal.Editor())

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
