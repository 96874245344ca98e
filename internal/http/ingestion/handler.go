package ingestion

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/importer"
	"github.com/cvwatch/sunlight/internal/ingest"
	"github.com/cvwatch/sunlight/internal/profile"
)

type Handler struct {
	svc       *ingest.Service
	importSvc *importer.Service
}

func NewHandler(svc *ingest.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.ingest)
	r.Post("/upload", h.upload)
}

type rowDTO struct {
	EntityName string `json:"entity_name"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	TypeHint   string `json:"type_hint"`
	Memo       string `json:"memo"`
}

type ingestRequest struct {
	FilerName       string   `json:"filer_name"`
	SourceReference string   `json:"source_reference"`
	Rows            []rowDTO `json:"rows"`
}

type reportResponse struct {
	FilingID        uuid.UUID            `json:"filing_id"`
	SourceReference string               `json:"source_reference"`
	Resolution      profile.MatchQuality `json:"resolution"`
	ProcessedCount  int                  `json:"processed_count"`
	InsertedCount   int                  `json:"inserted_count"`
	DuplicateCount  int                  `json:"duplicate_count"`
	Warnings        []string             `json:"warnings"`
	Status          filing.Status        `json:"status"`
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := make([]ingest.RawRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, ingest.RawRow(row))
	}

	h.run(w, r, ingest.RawFiling{
		FilerName:       req.FilerName,
		SourceReference: req.SourceReference,
	}, rows)
}

// upload accepts a disclosure spreadsheet export, parses it into raw rows
// and ingests them as one batch.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	filerName := r.FormValue("filer_name")
	sourceReference := r.FormValue("source_reference")

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceDisclosureCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.run(w, r, ingest.RawFiling{
		FilerName:       filerName,
		SourceReference: sourceReference,
	}, rows)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, raw ingest.RawFiling, rows []ingest.RawRow) {
	report, err := h.svc.Ingest(r.Context(), raw, rows)
	if err != nil {
		// A report with FAILED status still describes what happened; only a
		// nil report means the batch never started.
		if report == nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeReport(w, report, http.StatusUnprocessableEntity)

		return
	}

	writeReport(w, report, http.StatusOK)
}

func writeReport(w http.ResponseWriter, report *ingest.Report, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(reportResponse(*report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
