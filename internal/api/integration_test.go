package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/config"
	"github.com/alexivanou/weather-history-api/internal/database"
	"github.com/alexivanou/weather-history-api/internal/geocode"
	"github.com/alexivanou/weather-history-api/internal/model"
	"github.com/alexivanou/weather-history-api/internal/repository"
	"github.com/alexivanou/weather-history-api/internal/service"
	"github.com/alexivanou/weather-history-api/internal/stats"
	"github.com/alexivanou/weather-history-api/internal/weather"
)

var integrationDBCounter atomic.Int64

// upstreamState lets individual tests break the archive endpoint.
type upstreamState struct {
	archiveDown bool
}

// newIntegrationStack wires the real resolver, weather client, service, and
// SQLite repository against fake upstream servers.
func newIntegrationStack(t *testing.T) (http.Handler, *upstreamState) {
	t.Helper()
	state := &upstreamState{}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "nowhere-at-all" {
			w.Write([]byte(`{"results":[]}`))
			return
		}
		w.Write([]byte(`{"results":[{"id":2988507,"name":"Paris","latitude":48.8566,"longitude":2.3522,"country":"France","admin1":"Ile-de-France"}]}`))
	})
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"city":"Paris","country":"France"}}`))
	})
	mux.HandleFunc("/v1/archive", func(w http.ResponseWriter, r *http.Request) {
		if state.archiveDown {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"daily":{"time":["2023-01-01","2023-01-02","2023-01-03"],"temperature_2m_mean":[4.2,5.0,3.1]}}`))
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{"temperature_2m":18.3,"weather_code":2},"daily":{"time":["2023-01-01"],"weather_code":[0],"temperature_2m_max":[5.0],"temperature_2m_min":[1.0]}}`))
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	upstreamCfg := config.UpstreamConfig{
		GeocodingURL:     upstream.URL + "/v1/search",
		ReverseURL:       upstream.URL + "/reverse",
		ForecastURL:      upstream.URL + "/v1/forecast",
		ArchiveURL:       upstream.URL + "/v1/archive",
		GeocodingTimeout: 2 * time.Second,
		WeatherTimeout:   2 * time.Second,
	}

	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", integrationDBCounter.Add(1))
	db, err := database.ConnectSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	svc := service.NewService(
		geocode.NewResolver(upstreamCfg, logger),
		weather.NewClient(upstreamCfg, logger),
		repository.NewSQLiteRepository(db),
		logger,
	)

	return NewRouter(svc, logger, stats.NewMetrics(), "maps-key"), state
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestIntegration_RecordLifecycle(t *testing.T) {
	router, _ := newIntegrationStack(t)

	// Create a record for Paris.
	rr := postJSON(t, router, "/api/weather", model.CreateRecordRequest{
		Location: "Paris", StartDate: "2023-01-01", EndDate: "2023-01-03",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created model.RecordResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Contains(t, created.Location, "Paris")
	require.Len(t, created.ID, 24)

	var temps model.DailyTemperatures
	require.NoError(t, json.Unmarshal([]byte(created.Temperatures), &temps))
	assert.Len(t, temps.Temperature2mMean, 3)

	// History lists it.
	rr = doRequest(t, router, http.MethodGet, "/api/weather/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var history []model.RecordResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 1)

	// Label-only update keeps dates and temperatures.
	req := httptest.NewRequest(http.MethodPut, "/api/weather/history/"+created.ID,
		bytes.NewReader([]byte(`{"location":"City of Light"}`)))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated model.RecordResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "City of Light", updated.Location)
	assert.Equal(t, "2023-01-01", updated.StartDate)
	assert.Equal(t, "2023-01-03", updated.EndDate)

	// CSV export carries the computed statistics.
	rr = doRequest(t, router, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "City of Light")
	assert.Contains(t, rr.Body.String(), "4.1,3.1,5.0")

	// Bulk delete requires confirmation.
	rr = doRequest(t, router, http.MethodDelete, "/api/weather/history", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/weather/history", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	assert.Len(t, history, 1, "unconfirmed delete must leave records untouched")

	rr = doRequest(t, router, http.MethodDelete, "/api/weather/history?confirm=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var deleted model.DeleteAllResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deleted))
	assert.Equal(t, int64(1), deleted.DeletedCount)
}

func TestIntegration_CreateIsAtomic(t *testing.T) {
	router, state := newIntegrationStack(t)
	state.archiveDown = true

	rr := postJSON(t, router, "/api/weather", model.CreateRecordRequest{
		Location: "Paris", StartDate: "2023-01-01", EndDate: "2023-01-03",
	})
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/weather/history", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestIntegration_UnresolvedLocation(t *testing.T) {
	router, _ := newIntegrationStack(t)

	rr := postJSON(t, router, "/api/weather/current", model.WeatherRequest{Location: "nowhere-at-all"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIntegration_CoordinateInput(t *testing.T) {
	router, _ := newIntegrationStack(t)

	rr := postJSON(t, router, "/api/weather/current", model.WeatherRequest{Location: "48.8566,2.3522"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp model.CurrentWeatherResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 48.8566, resp.Latitude)
	assert.Equal(t, "Paris, France", resp.Location)
	assert.Equal(t, "Partly cloudy", resp.WeatherDescription)
}
