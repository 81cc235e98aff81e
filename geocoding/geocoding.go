// Package geocoding resolves free-text locations to coordinates through the
// MapTiler forward-geocoding API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultEndpoint = "https://api.maptiler.com/geocoding"

// Geometry is a GeoJSON geometry; the API returns Point features with
// coordinates ordered [lng, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Feature struct {
	Geometry  Geometry `json:"geometry"`
	PlaceName string   `json:"place_name"`
}

type forwardResponse struct {
	Features []Feature `json:"features"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string // swappable for tests
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
	}
}

// Forward geocodes a free-text location. An empty feature slice means the
// location could not be resolved; the caller decides how to react.
func (c *Client) Forward(ctx context.Context, location string, limit int) ([]Feature, error) {
	reqURL := fmt.Sprintf("%s/%s.json", c.endpoint, url.PathEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding: build request: %w", err)
	}

	q := req.URL.Query()
	q.Set("key", c.apiKey)
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: unexpected status %d", resp.StatusCode)
	}

	var body forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocoding: decode response: %w", err)
	}

	return body.Features, nil
}
