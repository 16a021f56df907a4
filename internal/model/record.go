package model

import "time"

// DailyTemperatures is the daily series returned by the Open-Meteo archive API.
// It is persisted as-is; only temperature_2m_mean is interpreted by exports.
type DailyTemperatures struct {
	Time              []string  `json:"time" db:"-"`
	Temperature2mMean []float64 `json:"temperature_2m_mean" db:"-"`
}

// WeatherRecord represents a persisted historical weather query
type WeatherRecord struct {
	ID           string            `json:"id"`
	Location     string            `json:"location"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Temperatures DailyTemperatures `json:"temperatures"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// RecordPatch describes an update to an existing record. Dates and
// temperatures are only replaced in a full update; a label-only update
// carries just the location.
type RecordPatch struct {
	Location     string
	StartDate    string
	EndDate      string
	Temperatures *DailyTemperatures
}

// ResolvedLocation is the output of geocoding: coordinates plus a
// human-readable display name. It is never persisted.
type ResolvedLocation struct {
	Latitude  float64
	Longitude float64
	Name      string
}
