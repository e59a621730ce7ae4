// Package reelly wraps the external off-plan listings feed that backs the
// map surface. The feed returns loosely typed records, so everything is
// normalized through the geo and utils helpers before leaving this package.
package reelly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"estatecore/internal/config"
)

// MarkerQuery carries the filter parameters the feed understands. Nil
// fields are omitted from the request.
type MarkerQuery struct {
	Bedrooms *int
	MinPrice *float64
	MaxPrice *float64
}

// markersEnvelope is the feed's list response shape.
type markersEnvelope struct {
	Markers []map[string]interface{} `json:"markers"`
}

// Client is the HTTP client for the listings feed.
type Client struct {
	config     *config.ReellyConfig
	httpClient *http.Client
}

// NewClient creates a feed client from configuration.
func NewClient(cfg *config.ReellyConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Markers fetches the raw marker records matching the query. Records come
// back untyped because the feed mixes numbers, numeric strings and
// JSON-encoded strings across fields.
func (c *Client) Markers(ctx context.Context, query MarkerQuery) ([]map[string]interface{}, error) {
	params := url.Values{}
	if query.Bedrooms != nil {
		params.Set("unit_bedrooms", strconv.Itoa(*query.Bedrooms))
	}
	if query.MinPrice != nil {
		params.Set("unit_price_from", strconv.FormatFloat(*query.MinPrice, 'f', -1, 64))
	}
	if query.MaxPrice != nil {
		params.Set("unit_price_to", strconv.FormatFloat(*query.MaxPrice, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf("%s/markers", c.config.BaseURL)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope markersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Some deployments return the bare array.
		var bare []map[string]interface{}
		if bareErr := json.Unmarshal(body, &bare); bareErr == nil {
			return bare, nil
		}
		return nil, fmt.Errorf("failed to unmarshal markers response: %w", err)
	}
	return envelope.Markers, nil
}

// Property fetches the full detail record for one listing.
func (c *Client) Property(ctx context.Context, id int64) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/property/%d", c.config.BaseURL, id)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var record map[string]interface{}
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal property response: %w", err)
	}
	return record, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("X-Api-Key", c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
