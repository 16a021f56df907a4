package service

import (
	"context"

	"github.com/alexivanou/weather-history-api/internal/model"
	"github.com/alexivanou/weather-history-api/internal/weather"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	CurrentWeather(ctx context.Context, req model.WeatherRequest) (*model.CurrentWeatherResponse, error)
	Forecast(ctx context.Context, req model.WeatherRequest) (*model.ForecastResponse, error)
	SearchLocations(ctx context.Context, query string) []model.LocationResult

	CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.WeatherRecord, error)
	ListRecords(ctx context.Context) ([]model.WeatherRecord, error)
	UpdateRecord(ctx context.Context, id string, req model.UpdateRecordRequest) (*model.WeatherRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	DeleteAllRecords(ctx context.Context, confirm bool) (int64, error)

	ExportJSON(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ExportMarkdown(ctx context.Context) ([]byte, error)
}

// LocationResolver resolves free-text input to coordinates and a name
type LocationResolver interface {
	Resolve(ctx context.Context, input string) (model.ResolvedLocation, error)
	Search(ctx context.Context, query string) ([]model.LocationResult, error)
}

// WeatherClient fetches data from the upstream weather API
type WeatherClient interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (*weather.CurrentConditions, error)
	FetchForecast(ctx context.Context, lat, lon float64) (*weather.ForecastDaily, error)
	FetchHistorical(ctx context.Context, lat, lon float64, startDate, endDate string) (model.DailyTemperatures, error)
}
