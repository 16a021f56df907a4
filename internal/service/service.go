package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/model"
	"github.com/alexivanou/weather-history-api/internal/repository"
	"github.com/alexivanou/weather-history-api/internal/weather"
)

// ErrValidation marks missing or malformed caller input
var ErrValidation = errors.New("validation error")

var validate = validator.New()

// Service provides the weather and record business logic
type Service struct {
	resolver LocationResolver
	weather  WeatherClient
	records  repository.RecordRepository
	logger   *zap.Logger
}

// NewService creates a new service instance
func NewService(
	resolver LocationResolver,
	weatherClient WeatherClient,
	records repository.RecordRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		resolver: resolver,
		weather:  weatherClient,
		records:  records,
		logger:   logger,
	}
}

// repo returns the record repository, surfacing an explicit error when the
// store handle was never initialized. The nil check is deliberate; a valid
// empty store must not be mistaken for an absent one.
func (s *Service) repo() (repository.RecordRepository, error) {
	if s.records == nil {
		return nil, fmt.Errorf("%w: store not initialized", repository.ErrUnavailable)
	}
	return s.records, nil
}

// CurrentWeather resolves the location and returns current conditions
func (s *Service) CurrentWeather(ctx context.Context, req model.WeatherRequest) (*model.CurrentWeatherResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	loc, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("could not find location %q: %w", req.Location, err)
	}

	current, err := s.weather.FetchCurrent(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve current weather: %w", err)
	}

	code := 0
	if current.WeatherCode != nil {
		code = *current.WeatherCode
	}
	info := weather.Describe(code)

	return &model.CurrentWeatherResponse{
		Location:           loc.Name,
		Latitude:           loc.Latitude,
		Longitude:          loc.Longitude,
		Temperature:        current.Temperature2m,
		FeelsLike:          current.ApparentTemperature,
		Humidity:           current.RelativeHumidity2m,
		WindSpeed:          current.WindSpeed10m,
		WindDirection:      current.WindDirection10m,
		Precipitation:      current.Precipitation,
		CloudCover:         current.CloudCover,
		Pressure:           current.PressureMSL,
		WeatherDescription: info.Description,
		WeatherIcon:        info.Icon,
		IsDay:              current.IsDay,
	}, nil
}

// Forecast resolves the location and returns the 5-day forecast projection
func (s *Service) Forecast(ctx context.Context, req model.WeatherRequest) (*model.ForecastResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	loc, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("could not find location %q: %w", req.Location, err)
	}

	daily, err := s.weather.FetchForecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve forecast: %w", err)
	}

	days := len(daily.Time)
	if days > 5 {
		days = 5
	}

	forecast := make([]model.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		info := weather.Describe(intAt(daily.WeatherCode, i))
		forecast = append(forecast, model.ForecastDay{
			Date:               daily.Time[i],
			TempMax:            floatAt(daily.Temperature2mMax, i),
			TempMin:            floatAt(daily.Temperature2mMin, i),
			Precipitation:      floatAt(daily.PrecipitationSum, i),
			WindSpeed:          floatAt(daily.WindSpeed10mMax, i),
			WeatherDescription: info.Description,
			WeatherIcon:        info.Icon,
		})
	}

	return &model.ForecastResponse{
		Location:  loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Forecast:  forecast,
	}, nil
}

// SearchLocations returns autocomplete candidates. Upstream failures degrade
// to an empty list.
func (s *Service) SearchLocations(ctx context.Context, query string) []model.LocationResult {
	if len(query) < 2 {
		return []model.LocationResult{}
	}

	results, err := s.resolver.Search(ctx, query)
	if err != nil {
		s.logger.Warn("Location search failed", zap.String("query", query), zap.Error(err))
		return []model.LocationResult{}
	}
	if results == nil {
		return []model.LocationResult{}
	}
	return results
}

// floatAt reads series[i], defaulting to 0 when the series is shorter than
// the time axis.
func floatAt(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

func intAt(series []int, i int) int {
	if i < len(series) {
		return series[i]
	}
	return 0
}
