package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kartoza/rf-radar/internal/config"
	"github.com/kartoza/rf-radar/internal/export"
	"github.com/kartoza/rf-radar/internal/models"
	"github.com/kartoza/rf-radar/internal/pipeline"
	"github.com/kartoza/rf-radar/internal/samples"
)

// Handler provides HTTP API endpoints
type Handler struct {
	sampleStore *samples.Store
	cfg         config.Config
}

// NewHandler creates a new API handler
func NewHandler(sampleStore *samples.Store, cfg config.Config) *Handler {
	return &Handler{
		sampleStore: sampleStore,
		cfg:         cfg,
	}
}

// RegisterRoutes sets up all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Health and info
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/info", h.handleInfo).Methods("GET")

	// Chart generation
	r.HandleFunc("/generate", h.handleGenerate).Methods("POST")
	r.HandleFunc("/export/png", h.handleExportPNG).Methods("POST")
	r.HandleFunc("/export/xlsx", h.handleExportXLSX).Methods("POST")

	// Example datasets
	r.HandleFunc("/samples", h.handleListSamples).Methods("GET")
	r.HandleFunc("/samples/{name}", h.handleGetSample).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// handleHealth returns server health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo returns server information
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := models.InfoResponse{
		Version:       h.cfg.Version,
		SamplesLoaded: h.sampleStore != nil,
		MaxInputBytes: h.cfg.MaxInputBytes,
	}
	if h.sampleStore != nil {
		info.SampleCount = h.sampleStore.Count()
	}
	respondJSON(w, http.StatusOK, info)
}

// decodeGenerate reads a GenerateRequest, writing the error response itself on failure
func (h *Handler) decodeGenerate(w http.ResponseWriter, r *http.Request) (models.GenerateRequest, bool) {
	var req models.GenerateRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxInputBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "pasted data is too large")
			return req, false
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

// handleGenerate runs the parse-and-build pipeline and returns the tagged result
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerate(w, r)
	if !ok {
		return
	}

	res := pipeline.Run(req.Text, req.Triggered)
	resp := models.GenerateResponse{
		ID:      uuid.New().String(),
		Kind:    string(res.Kind),
		Message: res.Message,
	}

	if res.Err != nil {
		log.Printf("Generate %s: %s: %v", resp.ID, res.Kind, res.Err)
	}

	if res.OK() {
		resp.ID = res.Figure.ID
		figure, err := res.Figure.MarshalPlotly()
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Figure = figure
	}

	respondJSON(w, http.StatusOK, resp)
}

// runForExport generates a chart and reports 422 with the annotation when there is none
func (h *Handler) runForExport(w http.ResponseWriter, r *http.Request) (pipeline.Result, bool) {
	req, ok := h.decodeGenerate(w, r)
	if !ok {
		return pipeline.Result{}, false
	}

	res := pipeline.Run(req.Text, true)
	if !res.OK() {
		respondJSON(w, http.StatusUnprocessableEntity, models.GenerateResponse{
			Kind:    string(res.Kind),
			Message: res.Message,
		})
		return res, false
	}
	return res, true
}

// handleExportPNG returns the chart rendered as a PNG image
func (h *Handler) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runForExport(w, r)
	if !ok {
		return
	}

	data, err := export.PNG(res.Figure, h.cfg.PNGWidth, h.cfg.PNGHeight)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="radar-chart.png"`)
	w.Write(data)
}

// handleExportXLSX returns the chart data as a workbook with a radar chart
func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runForExport(w, r)
	if !ok {
		return
	}

	data, err := export.XLSX(res.Figure)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="radar-chart.xlsx"`)
	w.Write(data)
}

// handleListSamples returns the available example datasets
func (h *Handler) handleListSamples(w http.ResponseWriter, r *http.Request) {
	if h.sampleStore == nil {
		respondJSON(w, http.StatusOK, []samples.Sample{})
		return
	}
	respondJSON(w, http.StatusOK, h.sampleStore.List())
}

// handleGetSample returns one example dataset including its data
func (h *Handler) handleGetSample(w http.ResponseWriter, r *http.Request) {
	if h.sampleStore == nil {
		respondError(w, http.StatusNotFound, "no samples loaded")
		return
	}

	name := mux.Vars(r)["name"]
	sample, err := h.sampleStore.Get(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sample)
}
