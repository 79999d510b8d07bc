package authapi

import (
	"context"
	"net/http"
)

// HealthCheck reports whether the service is reachable and healthy.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthStatus
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}

	return &health, nil
}

// Settings fetches the service's public configuration.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/settings", nil, "")
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := decodeJSON(resp, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
