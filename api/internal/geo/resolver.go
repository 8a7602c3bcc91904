// Package geo resolves a coordinate to the governing coastal state, first via
// Nominatim reverse geocoding and then via the static bounds table.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fish-price-api/api/internal/logging"
)

// ErrRegionUnresolved means neither the geocoder nor the bounds table placed
// the coordinate in a known state.
var ErrRegionUnresolved = errors.New("could not determine state from coordinates")

type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64) (string, error)
}

const userAgent = "fish-price-app"

// NominatimResolver asks Nominatim for address.state and falls back to the
// coastal-state bounds when the service fails or returns no state.
type NominatimResolver struct {
	BaseURL string
	httpc   *http.Client
}

func NewNominatimResolver(baseURL string) *NominatimResolver {
	return &NominatimResolver{
		BaseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *NominatimResolver) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	if state, err := r.reverse(ctx, lat, lon); err == nil && state != "" {
		return state, nil
	} else if err != nil {
		// Geocoder trouble is never the caller's problem; the bounds table
		// decides whether the coordinate is resolvable.
		logging.Logger.Debug("reverse geocode failed, using bounds fallback",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
	}

	if state, ok := stateFromBounds(lat, lon); ok {
		return state, nil
	}
	return "", ErrRegionUnresolved
}

func (r *NominatimResolver) reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim %d", resp.StatusCode)
	}

	var out struct {
		Address struct {
			State string `json:"state"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	// Returned verbatim: the price table compares case-insensitively, so the
	// geocoder's casing/spelling is left alone.
	return out.Address.State, nil
}
