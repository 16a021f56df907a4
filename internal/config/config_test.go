package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreTypeMongo, cfg.Store.Type)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.MongoURI)
	assert.Equal(t, "weather_app", cfg.Store.Database)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Upstream.GeocodingTimeout)
	assert.Equal(t, 15*time.Second, cfg.Upstream.WeatherTimeout)
	assert.Contains(t, cfg.Upstream.GeocodingURL, "geocoding-api.open-meteo.com")
	assert.Contains(t, cfg.Upstream.ArchiveURL, "archive-api.open-meteo.com")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_TYPE", "memory")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GEOCODING_TIMEOUT", "3s")
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreTypeMemory, cfg.Store.Type)
	assert.True(t, cfg.Store.IsMemory())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Upstream.GeocodingTimeout)
	assert.Equal(t, "test-key", cfg.GoogleMapsAPIKey)
}

func TestLoad_InvalidStoreTypeFallsBackToMongo(t *testing.T) {
	t.Setenv("STORE_TYPE", "cassandra")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreTypeMongo, cfg.Store.Type)
}

func TestLoad_InvalidDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("WEATHER_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Upstream.WeatherTimeout)
}
