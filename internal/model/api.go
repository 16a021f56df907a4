package model

// WeatherRequest represents the body of current-weather and forecast requests
type WeatherRequest struct {
	Location string `json:"location" validate:"required"`
}

// CreateRecordRequest represents the body of a create-record request
type CreateRecordRequest struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// UpdateRecordRequest represents the body of an update-record request.
// When both dates are present the record is re-resolved and refetched;
// otherwise only the location label is changed.
type UpdateRecordRequest struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConfirmRequest carries the confirmation flag for destructive operations
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// LocationResult represents one autocomplete search result
type LocationResult struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	ID          int     `json:"id"`
}

// CurrentWeatherResponse represents the current-conditions projection
type CurrentWeatherResponse struct {
	Location           string   `json:"location"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Temperature        *float64 `json:"temperature"`
	FeelsLike          *float64 `json:"feels_like"`
	Humidity           *float64 `json:"humidity"`
	WindSpeed          *float64 `json:"wind_speed"`
	WindDirection      *float64 `json:"wind_direction"`
	Precipitation      *float64 `json:"precipitation"`
	CloudCover         *float64 `json:"cloud_cover"`
	Pressure           *float64 `json:"pressure"`
	WeatherDescription string   `json:"weather_description"`
	WeatherIcon        string   `json:"weather_icon"`
	IsDay              *int     `json:"is_day"`
}

// ForecastDay represents one day of the 5-day forecast
type ForecastDay struct {
	Date               string  `json:"date"`
	TempMax            float64 `json:"temp_max"`
	TempMin            float64 `json:"temp_min"`
	Precipitation      float64 `json:"precipitation"`
	WindSpeed          float64 `json:"wind_speed"`
	WeatherDescription string  `json:"weather_description"`
	WeatherIcon        string  `json:"weather_icon"`
}

// ForecastResponse represents the 5-day forecast projection
type ForecastResponse struct {
	Location  string        `json:"location"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Forecast  []ForecastDay `json:"forecast"`
}

// RecordResponse is the history-endpoint shape of a record; the temperature
// series is serialized as a JSON string for the frontend.
type RecordResponse struct {
	ID           string `json:"id"`
	Location     string `json:"location"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Temperatures string `json:"temperatures"`
}

// ExportRecord is the JSON-export shape of a record; the temperature series
// stays nested.
type ExportRecord struct {
	ID           string            `json:"id"`
	Location     string            `json:"location"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Temperatures DailyTemperatures `json:"temperatures"`
}

// ConfigResponse represents the frontend configuration payload
type ConfigResponse struct {
	GoogleMapsAPIKey string `json:"google_maps_api_key"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteAllResponse represents the result of a bulk delete
type DeleteAllResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}
