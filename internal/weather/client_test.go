package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.UpstreamConfig{
		ForecastURL:    srv.URL + "/v1/forecast",
		ArchiveURL:     srv.URL + "/v1/archive",
		WeatherTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop())
}

func TestFetchCurrent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "48.85", q.Get("latitude"))
		assert.Equal(t, "2.35", q.Get("longitude"))
		assert.Contains(t, q.Get("current"), "weather_code")
		assert.Contains(t, q.Get("current"), "wind_gusts_10m")
		assert.Equal(t, "celsius", q.Get("temperature_unit"))
		assert.Equal(t, "kmh", q.Get("wind_speed_unit"))
		assert.Equal(t, "mm", q.Get("precipitation_unit"))

		w.Write([]byte(`{"current":{"temperature_2m":18.3,"relative_humidity_2m":65,"weather_code":2,"is_day":1}}`))
	})
	client := newTestClient(t, mux)

	current, err := client.FetchCurrent(context.Background(), 48.85, 2.35)
	require.NoError(t, err)

	require.NotNil(t, current.Temperature2m)
	assert.Equal(t, 18.3, *current.Temperature2m)
	require.NotNil(t, current.WeatherCode)
	assert.Equal(t, 2, *current.WeatherCode)
	assert.Nil(t, current.WindGusts10m)
}

func TestFetchCurrent_MissingBlock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude":48.85}`))
	})
	client := newTestClient(t, mux)

	_, err := client.FetchCurrent(context.Background(), 48.85, 2.35)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchForecast(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("forecast_days"))
		assert.Contains(t, q.Get("daily"), "sunrise")
		assert.Contains(t, q.Get("daily"), "wind_direction_10m_dominant")

		w.Write([]byte(`{"daily":{
			"time":["2024-01-01","2024-01-02"],
			"weather_code":[0,61],
			"temperature_2m_max":[5.1,7.2],
			"temperature_2m_min":[-1.0,0.4],
			"precipitation_sum":[0,3.2],
			"wind_speed_10m_max":[12.5,20.1]
		}}`))
	})
	client := newTestClient(t, mux)

	daily, err := client.FetchForecast(context.Background(), 52.52, 13.41)
	require.NoError(t, err)

	require.Len(t, daily.Time, 2)
	assert.Equal(t, []int{0, 61}, daily.WeatherCode)
	assert.Equal(t, 7.2, daily.Temperature2mMax[1])
}

func TestFetchHistorical(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/archive", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2023-01-01", q.Get("start_date"))
		assert.Equal(t, "2023-01-03", q.Get("end_date"))
		assert.Equal(t, "temperature_2m_mean", q.Get("daily"))

		w.Write([]byte(`{"daily":{"time":["2023-01-01","2023-01-02","2023-01-03"],"temperature_2m_mean":[4.2,5.0,3.1]}}`))
	})
	client := newTestClient(t, mux)

	series, err := client.FetchHistorical(context.Background(), 48.85, 2.35, "2023-01-01", "2023-01-03")
	require.NoError(t, err)

	assert.Len(t, series.Time, 3)
	assert.Equal(t, []float64{4.2, 5.0, 3.1}, series.Temperature2mMean)
}

func TestFetch_UpstreamErrorIsUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/archive", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, mux)

	_, err := client.FetchHistorical(context.Background(), 0, 0, "2023-01-01", "2023-01-02")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_NetworkErrorIsUnavailable(t *testing.T) {
	cfg := config.UpstreamConfig{
		ForecastURL:    "http://127.0.0.1:1/v1/forecast",
		ArchiveURL:     "http://127.0.0.1:1/v1/archive",
		WeatherTimeout: 500 * time.Millisecond,
	}
	client := NewClient(cfg, zap.NewNop())

	_, err := client.FetchCurrent(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}
