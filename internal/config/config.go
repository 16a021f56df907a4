package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Store    StoreConfig
	Server   ServerConfig
	Upstream UpstreamConfig

	// GoogleMapsAPIKey is handed to the frontend via /api/config.
	GoogleMapsAPIKey string
}

// StoreType represents record store type
type StoreType string

const (
	StoreTypeMongo  StoreType = "mongo"
	StoreTypeMemory StoreType = "memory"
)

// StoreConfig holds record store configuration
type StoreConfig struct {
	Type      StoreType
	MongoURI  string
	Database  string
	SQLiteDSN string
}

// IsMemory returns true if using the embedded SQLite store
func (c StoreConfig) IsMemory() bool {
	return c.Type == StoreTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// UpstreamConfig holds base URLs and timeouts for the external APIs.
// The URLs are overridable so tests can point the clients at fakes.
type UpstreamConfig struct {
	GeocodingURL     string
	ReverseURL       string
	ForecastURL      string
	ArchiveURL       string
	GeocodingTimeout time.Duration
	WeatherTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	storeType := StoreType(getEnv("STORE_TYPE", "mongo"))
	if storeType != StoreTypeMongo && storeType != StoreTypeMemory {
		storeType = StoreTypeMongo
	}

	config := &Config{
		Store: StoreConfig{
			Type:     storeType,
			MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:  getEnv("MONGO_DATABASE", "weather_app"),
			SQLiteDSN: getEnv("SQLITE_DSN", "file::memory:?cache=shared"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			GeocodingURL:     getEnv("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
			ReverseURL:       getEnv("REVERSE_GEOCODING_URL", "https://nominatim.openstreetmap.org/reverse"),
			ForecastURL:      getEnv("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
			ArchiveURL:       getEnv("ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive"),
			GeocodingTimeout: getEnvAsDuration("GEOCODING_TIMEOUT", 10*time.Second),
			WeatherTimeout:   getEnvAsDuration("WEATHER_TIMEOUT", 15*time.Second),
		},
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", "YOUR_GOOGLE_MAPS_API_KEY_HERE"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
