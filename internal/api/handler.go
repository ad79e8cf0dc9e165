// Package api exposes the analysis pipeline over a small JSON API.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statlab/app"
	"statlab/domain/sample"
	"statlab/internal/errors"
	"statlab/internal/render"
	"statlab/ports"
)

// Handler wires the sample source and analysis service into HTTP routes.
type Handler struct {
	source  ports.SampleSource
	service *app.AnalysisService
	repo    ports.AnalysisRepository // nil when persistence is disabled
}

// NewHandler creates the API handler. repo may be nil.
func NewHandler(source ports.SampleSource, service *app.AnalysisService, repo ports.AnalysisRepository) *Handler {
	return &Handler{source: source, service: service, repo: repo}
}

// Routes builds the chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Get("/samples", h.listSamples)
	r.Post("/samples/{name}/analyze", h.analyzeSample)
	r.Post("/analyze", h.analyzeRecord)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listSamples(w http.ResponseWriter, r *http.Request) {
	names, err := h.source.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"samples": names})
}

func (h *Handler) analyzeSample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	record, err := h.source.Load(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	h.analyze(w, r, record)
}

func (h *Handler) analyzeRecord(w http.ResponseWriter, r *http.Request) {
	var record sample.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errors.CodeMalformedInput, "request body is not a valid record"))
		return
	}
	h.analyze(w, r, &record)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, record *sample.Record) {
	report, err := h.service.Analyze(record)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.repo != nil {
		if err := h.repo.Save(r.Context(), report); err != nil {
			log.Printf("failed to persist analysis %s: %v", report.ID, err)
		}
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(render.HTML(report))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func errorBody(code, message string) map[string]string {
	return map[string]string{"code": code, "error": message}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.CodeMalformedInput, errors.CodeInvalidParameter:
		status = http.StatusBadRequest
	case errors.CodeDegenerateSample:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, errorBody(code, err.Error()))
}
