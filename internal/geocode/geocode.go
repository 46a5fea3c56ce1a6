// Package geocode resolves addresses to coordinates via the Google geocoding
// API, falling back to a fixed Singapore location when no key is configured
// or the lookup fails.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Coordinates is a geocoding result.
type Coordinates struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Singapore is the fallback location returned when geocoding is unavailable.
var Singapore = Coordinates{Lat: 1.3521, Lng: 103.8198}

// Client calls the geocoding API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a geocoding client. An empty apiKey disables lookups;
// every call then answers with the Singapore fallback.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// Lookup resolves an address. It never fails: any error degrades to the
// Singapore fallback with the requested address attached.
func (c *Client) Lookup(ctx context.Context, address string) Coordinates {
	fallback := Singapore
	fallback.Address = address

	if c.apiKey == "" {
		return fallback
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fallback
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("geocode request failed")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Err(fmt.Errorf("status %d", resp.StatusCode)).Msg("geocode request failed")
		return fallback
	}

	var payload struct {
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Results) == 0 {
		return fallback
	}

	loc := payload.Results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng, Address: address}
}
