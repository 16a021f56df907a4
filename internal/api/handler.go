package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/export"
	"github.com/alexivanou/weather-history-api/internal/geocode"
	"github.com/alexivanou/weather-history-api/internal/model"
	"github.com/alexivanou/weather-history-api/internal/repository"
	"github.com/alexivanou/weather-history-api/internal/service"
	"github.com/alexivanou/weather-history-api/internal/weather"
)

// Handler handles HTTP requests
type Handler struct {
	service          service.ServiceInterface
	logger           *zap.Logger
	googleMapsAPIKey string
}

// NewHandler creates a new handler instance
func NewHandler(svc service.ServiceInterface, logger *zap.Logger, googleMapsAPIKey string) *Handler {
	return &Handler{service: svc, logger: logger, googleMapsAPIKey: googleMapsAPIKey}
}

// GetConfig handles GET /api/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.ConfigResponse{GoogleMapsAPIKey: h.googleMapsAPIKey})
}

// SearchLocations handles GET /api/locations/search
func (h *Handler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.service.SearchLocations(r.Context(), query)
	respondJSON(w, http.StatusOK, results)
}

// CurrentWeather handles POST /api/weather/current
func (h *Handler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	var req model.WeatherRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.CurrentWeather(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Forecast handles POST /api/weather/forecast
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req model.WeatherRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Forecast(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateRecord handles POST /api/weather
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRecordRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	record, err := h.service.CreateRecord(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRecordResponse(*record))
}

// GetHistory handles GET /api/weather/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	out := make([]model.RecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record))
	}
	respondJSON(w, http.StatusOK, out)
}

// UpdateRecord handles PUT /api/weather/history/{id}
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.UpdateRecordRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	record, err := h.service.UpdateRecord(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRecordResponse(*record))
}

// DeleteRecord handles DELETE /api/weather/history/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteRecord(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, model.MessageResponse{Message: "Record deleted successfully"})
}

// ClearHistory handles DELETE /api/weather/history. Confirmation comes from
// either ?confirm=true or a JSON body {"confirm": true}.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	confirm := strings.EqualFold(r.URL.Query().Get("confirm"), "true")
	if !confirm {
		var body model.ConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			confirm = body.Confirm
		}
	}

	count, err := h.service.DeleteAllRecords(r.Context(), confirm)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, model.DeleteAllResponse{
		Message:      "All weather history records deleted",
		DeletedCount: count,
	})
}

// ExportJSON handles GET /api/export/json
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportJSON(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondAttachment(w, data, export.JSONContentType, export.JSONFilename)
}

// ExportCSV handles GET /api/export/csv
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportCSV(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondAttachment(w, data, export.CSVContentType, export.CSVFilename)
}

// ExportMarkdown handles GET /api/export/markdown
func (h *Handler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportMarkdown(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondAttachment(w, data, export.MarkdownContentType, export.MarkdownFilename)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps error kinds to HTTP status codes: validation and
// malformed ids to 400, unresolved locations and absent records to 404,
// upstream and store failures to 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, repository.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, geocode.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, weather.ErrUnavailable), errors.Is(err, repository.ErrUnavailable):
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// toRecordResponse serializes the temperature series as a JSON string, which
// is what the history endpoints hand to the frontend.
func toRecordResponse(record model.WeatherRecord) model.RecordResponse {
	temps, err := json.Marshal(record.Temperatures)
	if err != nil {
		temps = []byte("{}")
	}
	return model.RecordResponse{
		ID:           record.ID,
		Location:     record.Location,
		StartDate:    record.StartDate,
		EndDate:      record.EndDate,
		Temperatures: string(temps),
	}
}
