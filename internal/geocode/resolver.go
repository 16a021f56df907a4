package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/config"
	"github.com/alexivanou/weather-history-api/internal/model"
)

// ErrNotFound is returned when forward geocoding yields no usable result.
// Upstream failures map to it as well; with the data available the caller
// cannot tell "no such place" from "geocoder down".
var ErrNotFound = errors.New("location not found")

const (
	userAgent          = "weather-history-api/1.0"
	searchResultLimit  = 10
	minCoordinateParts = 2
)

// Resolver turns free-text location input into coordinates and a display name
type Resolver struct {
	searchURL  string
	reverseURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewResolver creates a resolver against the configured geocoding endpoints
func NewResolver(cfg config.UpstreamConfig, logger *zap.Logger) *Resolver {
	return &Resolver{
		searchURL:  cfg.GeocodingURL,
		reverseURL: cfg.ReverseURL,
		client:     &http.Client{Timeout: cfg.GeocodingTimeout},
		logger:     logger,
	}
}

// Resolve resolves input to coordinates plus a display name. A "lat,lon"
// input inside valid ranges is taken literally and reverse-geocoded for its
// name; anything else goes through forward search.
func (r *Resolver) Resolve(ctx context.Context, input string) (model.ResolvedLocation, error) {
	if strings.Contains(input, ",") {
		if lat, lon, ok := parseCoordinates(input); ok {
			return model.ResolvedLocation{
				Latitude:  lat,
				Longitude: lon,
				Name:      r.reverseLookup(ctx, lat, lon),
			}, nil
		}
		// Not a coordinate pair after all; fall through to name search.
	}

	return r.forwardSearch(ctx, input)
}

// parseCoordinates attempts to read input as "lat,lon" with both components
// in valid ranges. Returns ok=false on any parse or range failure.
func parseCoordinates(input string) (float64, float64, bool) {
	parts := strings.Split(input, ",")
	if len(parts) < minCoordinateParts {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}

	return lat, lon, true
}

type searchResult struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

func (r *Resolver) forwardSearch(ctx context.Context, input string) (model.ResolvedLocation, error) {
	values := url.Values{}
	values.Set("name", input)
	values.Set("count", "1")

	var payload searchResponse
	if err := r.getJSON(ctx, r.searchURL+"?"+values.Encode(), &payload); err != nil {
		r.logger.Warn("Forward geocoding failed", zap.String("query", input), zap.Error(err))
		return model.ResolvedLocation{}, ErrNotFound
	}

	if len(payload.Results) == 0 {
		return model.ResolvedLocation{}, ErrNotFound
	}

	first := payload.Results[0]
	name := first.Name
	if name == "" {
		name = input
	}

	return model.ResolvedLocation{
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		Name:      name,
	}, nil
}

// Search performs an autocomplete lookup, returning up to ten candidates with
// an assembled display name.
func (r *Resolver) Search(ctx context.Context, query string) ([]model.LocationResult, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", strconv.Itoa(searchResultLimit))
	values.Set("language", "en")
	values.Set("format", "json")

	var payload searchResponse
	if err := r.getJSON(ctx, r.searchURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	results := make([]model.LocationResult, 0, len(payload.Results))
	for _, item := range payload.Results {
		results = append(results, model.LocationResult{
			Name:        item.Name,
			DisplayName: joinParts(item.Name, item.Admin1, item.Country),
			Latitude:    item.Latitude,
			Longitude:   item.Longitude,
			Country:     item.Country,
			Admin1:      item.Admin1,
			ID:          item.ID,
		})
	}

	return results, nil
}

func joinParts(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		County       string `json:"county"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
}

// reverseLookup resolves coordinates to a "City, Country" name. Any failure
// degrades to a formatted coordinate string; it never returns an error.
func (r *Resolver) reverseLookup(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("Location (%.4f, %.4f)", lat, lon)

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("format", "json")
	values.Set("accept-language", "en")

	var payload reverseResponse
	if err := r.getJSON(ctx, r.reverseURL+"?"+values.Encode(), &payload); err != nil {
		r.logger.Warn("Reverse geocoding failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return fallback
	}

	city := firstNonEmpty(
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Address.Municipality,
		payload.Address.County,
		payload.Address.State,
		firstSegment(payload.DisplayName),
	)

	country := payload.Address.Country
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return fallback
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSegment(displayName string) string {
	return strings.TrimSpace(strings.Split(displayName, ",")[0])
}

func (r *Resolver) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
