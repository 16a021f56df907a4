package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/config"
	"github.com/alexivanou/weather-history-api/internal/model"
)

// ErrUnavailable is returned for any upstream failure: network errors,
// non-200 responses, open circuit, or a payload missing its data block.
var ErrUnavailable = errors.New("weather data unavailable")

const forecastDays = 5

// CurrentConditions is the decoded "current" block of the forecast API.
// Fields are optional; missing values stay nil.
type CurrentConditions struct {
	Temperature2m       *float64 `json:"temperature_2m"`
	RelativeHumidity2m  *float64 `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	IsDay               *int     `json:"is_day"`
	Precipitation       *float64 `json:"precipitation"`
	Rain                *float64 `json:"rain"`
	Showers             *float64 `json:"showers"`
	Snowfall            *float64 `json:"snowfall"`
	WeatherCode         *int     `json:"weather_code"`
	CloudCover          *float64 `json:"cloud_cover"`
	PressureMSL         *float64 `json:"pressure_msl"`
	SurfacePressure     *float64 `json:"surface_pressure"`
	WindSpeed10m        *float64 `json:"wind_speed_10m"`
	WindDirection10m    *float64 `json:"wind_direction_10m"`
	WindGusts10m        *float64 `json:"wind_gusts_10m"`
}

// ForecastDaily is the decoded "daily" block of the forecast API.
type ForecastDaily struct {
	Time                     []string  `json:"time"`
	WeatherCode              []int     `json:"weather_code"`
	Temperature2mMax         []float64 `json:"temperature_2m_max"`
	Temperature2mMin         []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax   []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin   []float64 `json:"apparent_temperature_min"`
	Sunrise                  []string  `json:"sunrise"`
	Sunset                   []string  `json:"sunset"`
	PrecipitationSum         []float64 `json:"precipitation_sum"`
	RainSum                  []float64 `json:"rain_sum"`
	ShowersSum               []float64 `json:"showers_sum"`
	SnowfallSum              []float64 `json:"snowfall_sum"`
	PrecipitationHours       []float64 `json:"precipitation_hours"`
	WindSpeed10mMax          []float64 `json:"wind_speed_10m_max"`
	WindGusts10mMax          []float64 `json:"wind_gusts_10m_max"`
	WindDirection10mDominant []float64 `json:"wind_direction_10m_dominant"`
}

// Client fetches current, forecast, and historical data from Open-Meteo
type Client struct {
	forecastURL string
	archiveURL  string
	client      *http.Client
	circuit     *gobreaker.CircuitBreaker
	logger      *zap.Logger
}

// NewClient creates a weather client against the configured endpoints
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		forecastURL: cfg.ForecastURL,
		archiveURL:  cfg.ArchiveURL,
		client:      &http.Client{Timeout: cfg.WeatherTimeout},
		circuit:     cb,
		logger:      logger,
	}
}

// FetchCurrent fetches current conditions for the given coordinates
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (*CurrentConditions, error) {
	values := coordValues(lat, lon)
	values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,"+
		"precipitation,rain,showers,snowfall,weather_code,cloud_cover,pressure_msl,"+
		"surface_pressure,wind_speed_10m,wind_direction_10m,wind_gusts_10m")
	setUnits(values)

	var payload struct {
		Current *CurrentConditions `json:"current"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Current == nil {
		return nil, fmt.Errorf("%w: response missing current block", ErrUnavailable)
	}

	return payload.Current, nil
}

// FetchForecast fetches the 5-day daily forecast for the given coordinates
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) (*ForecastDaily, error) {
	values := coordValues(lat, lon)
	values.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,"+
		"apparent_temperature_max,apparent_temperature_min,sunrise,sunset,"+
		"precipitation_sum,rain_sum,showers_sum,snowfall_sum,precipitation_hours,"+
		"wind_speed_10m_max,wind_gusts_10m_max,wind_direction_10m_dominant")
	setUnits(values)
	values.Set("forecast_days", strconv.Itoa(forecastDays))

	var payload struct {
		Daily *ForecastDaily `json:"daily"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Daily == nil {
		return nil, fmt.Errorf("%w: response missing daily block", ErrUnavailable)
	}

	return payload.Daily, nil
}

// FetchHistorical fetches the daily mean temperature series over the
// inclusive date range.
func (c *Client) FetchHistorical(ctx context.Context, lat, lon float64, startDate, endDate string) (model.DailyTemperatures, error) {
	values := coordValues(lat, lon)
	values.Set("start_date", startDate)
	values.Set("end_date", endDate)
	values.Set("daily", "temperature_2m_mean")

	var payload struct {
		Daily *model.DailyTemperatures `json:"daily"`
	}
	if err := c.getJSON(ctx, c.archiveURL+"?"+values.Encode(), &payload); err != nil {
		return model.DailyTemperatures{}, err
	}
	if payload.Daily == nil {
		return model.DailyTemperatures{}, fmt.Errorf("%w: response missing daily block", ErrUnavailable)
	}

	return *payload.Daily, nil
}

func coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}

func setUnits(values url.Values) {
	values.Set("temperature_unit", "celsius")
	values.Set("wind_speed_unit", "kmh")
	values.Set("precipitation_unit", "mm")
}

// getJSON issues a single request through the circuit breaker. No retries;
// one failed call fails the enclosing request.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		c.logger.Warn("Open-Meteo request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
