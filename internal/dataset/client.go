// Package dataset queries the data.gov.sg datastore and merges the five
// school-related collections into one envelope.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the CKAN datastore_search endpoint shared by all sources.
const DefaultBaseURL = "https://data.gov.sg/api/action/datastore_search"

const userAgent = "School4U-App/1.0"

// Record is one upstream row. Field names vary per dataset and even per row
// (some datasets capitalise School_name), so rows stay dynamic until normalized.
type Record map[string]any

// Client wraps datastore_search calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the given datastore endpoint. Per-source
// timeouts are applied through the request context, not the http.Client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// Search runs one datastore_search call. A payload without result.records
// yields an empty slice; transport and status failures are returned as errors
// for the caller to absorb.
func (c *Client) Search(ctx context.Context, resourceID, query string, timeout time.Duration) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{}
	params.Set("resource_id", resourceID)
	if query != "" {
		params.Set("q", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datastore: status %d", resp.StatusCode)
	}

	var payload struct {
		Result *struct {
			Records []Record `json:"records"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("datastore: decode: %w", err)
	}

	if payload.Result == nil || payload.Result.Records == nil {
		return []Record{}, nil
	}
	return payload.Result.Records, nil
}

// str reads a record field as a string, trying keys in order. Numeric values
// are formatted without a decimal point when integral.
func str(rec Record, keys ...string) string {
	for _, key := range keys {
		val, ok := rec[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			return v
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%g", v)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
