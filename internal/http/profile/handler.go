package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/http/auth"
	"github.com/cvwatch/sunlight/internal/profile"
)

type Handler struct {
	svc *profile.Service
}

func NewHandler(svc *profile.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequirePrincipal)
		r.Post("/", h.register)
		r.Patch("/{id}", h.update)
	})
}

type registerRequest struct {
	Name        string       `json:"name"`
	Type        profile.Type `json:"type"`
	City        string       `json:"city"`
	Description string       `json:"description"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Register(r.Context(), profile.RegisterParams{
		Name:        req.Name,
		Type:        req.Type,
		City:        req.City,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, profile.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := profile.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := profile.Type(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("city"); s != "" {
		filter.City = &s
	}

	profiles, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(profiles)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// edits maps the request onto the closed set of administrative field edits.
func (req updateRequest) edits() []profile.FieldEdit {
	var out []profile.FieldEdit

	if req.Name != nil {
		out = append(out, profile.NameEdit{Name: *req.Name})
	}

	if req.Description != nil {
		out = append(out, profile.DescriptionEdit{Description: *req.Description})
	}

	if req.City != nil {
		out = append(out, profile.CityEdit{City: *req.City})
	}

	if req.ImageURL != nil {
		out = append(out, profile.ImageURLEdit{URL: *req.ImageURL})
	}

	return out
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	edits := req.edits()
	if len(edits) == 0 {
		http.Error(w, "no editable fields in request", http.StatusBadRequest)
		return
	}

	principal, _ := auth.FromContext(r.Context())

	for _, edit := range edits {
		if err := h.svc.ApplyEdit(r.Context(), id, edit, principal.Editor()); err != nil {
			switch {
			case errors.Is(err, profile.ErrNotFound):
				http.Error(w, "profile not found", http.StatusNotFound)
			case errors.Is(err, profile.ErrDuplicateName):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}

			return
		}
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type resolveRequest struct {
	FilerName string `json:"filer_name"`
}

type resolveResponse struct {
	ProfileID    *uuid.UUID           `json:"profile_id"`
	MatchQuality profile.MatchQuality `json:"match_quality"`
	CandidateIDs []uuid.UUID          `json:"candidate_ids,omitempty"`
}

// Resolve answers what the ingestor would do with a filer name, without
// writing anything. An ambiguous registry is reported with the colliding
// profile ids rather than hidden behind an error page.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.svc.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resolution, err := profile.Resolve(req.FilerName, snapshot)

	resp := resolveResponse{
		ProfileID:    resolution.ProfileID,
		MatchQuality: resolution.Quality,
	}

	if err != nil {
		var ambErr *profile.AmbiguousMatchError
		if !errors.As(err, &ambErr) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp.CandidateIDs = ambErr.ProfileIDs
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
