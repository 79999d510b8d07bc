package authapi

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// endpointURL builds a complete URL by appending the path to the base URL.
func (c *Client) endpointURL(path string) string {
	return c.baseURL + path
}

var requestIDs = struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}{
	entropy: ulid.Monotonic(rand.Reader, 0),
}

// newRequestID mints a ULID for the X-Request-ID header.
func newRequestID() string {
	requestIDs.mu.Lock()
	defer requestIDs.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), requestIDs.entropy)
	if err != nil {
		// Monotonic overflow within the same millisecond; a fresh
		// random ULID is still unique enough for request tracing.
		return ulid.Make().String()
	}
	return id.String()
}

// doRequest performs a single HTTP request against the service.
//
// Headers start from the configured default set; a non-empty token adds
// an Authorization bearer header on the request only, never on the
// default set itself. A non-nil body is JSON-encoded.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	token string,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", newRequestID())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "request complete",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
	}

	return resp, nil
}

// decodeJSON consumes the response body. Non-2xx responses are handed to
// the error classifier; successful bodies are decoded into target, or
// discarded entirely when target is nil.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, bodyBytes)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
