package api

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/service"
	"github.com/alexivanou/weather-history-api/internal/stats"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, logger *zap.Logger, metrics *stats.Metrics, googleMapsAPIKey string) *mux.Router {
	handler := NewHandler(svc, logger, googleMapsAPIKey)

	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(MetricsMiddleware(metrics))

	// Health and metrics
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", handler.GetConfig).Methods("GET")
	api.HandleFunc("/locations/search", handler.SearchLocations).Methods("GET")

	api.HandleFunc("/weather/current", handler.CurrentWeather).Methods("POST")
	api.HandleFunc("/weather/forecast", handler.Forecast).Methods("POST")
	api.HandleFunc("/weather", handler.CreateRecord).Methods("POST")

	api.HandleFunc("/weather/history", handler.GetHistory).Methods("GET")
	api.HandleFunc("/weather/history", handler.ClearHistory).Methods("DELETE")
	api.HandleFunc("/weather/history/{id}", handler.UpdateRecord).Methods("PUT")
	api.HandleFunc("/weather/history/{id}", handler.DeleteRecord).Methods("DELETE")

	api.HandleFunc("/export/json", handler.ExportJSON).Methods("GET")
	api.HandleFunc("/export/csv", handler.ExportCSV).Methods("GET")
	api.HandleFunc("/export/markdown", handler.ExportMarkdown).Methods("GET")

	return router
}
