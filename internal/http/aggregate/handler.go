package aggregate

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/aggregate"
	"github.com/cvwatch/sunlight/internal/http/auth"
)

var errRequestScope = errors.New("exactly one of profile_id or city is required")

type Handler struct {
	svc *aggregate.Service
}

func NewHandler(svc *aggregate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.totals)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequirePrincipal)
		r.Post("/recompute", h.recompute)
	})
}

type periodDTO struct {
	Period        string `json:"period"`
	Contributions int64  `json:"contributions"`
	Expenditures  int64  `json:"expenditures"`
}

type summaryResponse struct {
	TotalContributions int64       `json:"total_contributions"`
	TotalExpenditures  int64       `json:"total_expenditures"`
	ByPeriod           []periodDTO `json:"by_period"`
}

// totals serves rollups for exactly one scope: ?profile_id= or ?city=, with
// an optional start/end date window on the transactions.
func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window := parseWindow(r)

	summary, err := h.svc.Totals(r.Context(), scope, window)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		TotalContributions: summary.TotalContributions,
		TotalExpenditures:  summary.TotalExpenditures,
		ByPeriod:           make([]periodDTO, len(summary.ByPeriod)),
	}
	for i, p := range summary.ByPeriod {
		resp.ByPeriod[i] = periodDTO(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseScope(r *http.Request) (aggregate.Scope, error) {
	profileParam := r.URL.Query().Get("profile_id")
	city := r.URL.Query().Get("city")

	switch {
	case profileParam != "" && city != "":
		return nil, errRequestScope
	case profileParam != "":
		id, err := uuid.Parse(profileParam)
		if err != nil {
			return nil, err
		}

		return aggregate.ProfileScope{ProfileID: id}, nil
	case city != "":
		return aggregate.JurisdictionScope{City: city}, nil
	default:
		return nil, errRequestScope
	}
}

func parseWindow(r *http.Request) *aggregate.TimeRange {
	window := &aggregate.TimeRange{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			window.Start = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			window.End = &t
		}
	}

	if window.Start == nil && window.End == nil {
		return nil
	}

	return window
}

type recomputeResponse struct {
	Drifted int `json:"drifted"`
}

// recompute re-derives every processed filing's cached totals and reports
// how many had drifted. Safe to run at any time; it changes nothing unless
// a cache was already wrong.
func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	drifted, err := h.svc.RecomputeAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(recomputeResponse{Drifted: drifted}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
