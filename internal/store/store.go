package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Common client errors. Callers match with errors.Is; no retries happen at
// this layer.
var (
	ErrRemoteUnavailable = fmt.Errorf("remote store unavailable")
	ErrRemoteDecode      = fmt.Errorf("malformed remote response")
)

// Client issues read/write requests against named collections on the remote
// store. It holds no local state beyond the transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for the store at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "blogboard/1.0",
	}
}

// Fetch retrieves records from a collection, optionally constrained by
// exact-match filters, and decodes the JSON array into dest.
func (c *Client) Fetch(ctx context.Context, collection string, filter map[string]string, dest interface{}) error {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, collection)

	if len(filter) > 0 {
		values := url.Values{}
		for key, value := range filter {
			values.Set(key, value)
		}
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %v: %w", collection, err, ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: status %d: %w", collection, resp.StatusCode, ErrRemoteUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %v: %w", collection, err, ErrRemoteDecode)
	}

	return nil
}

// Create persists a record into a collection and decodes the record the
// store echoes back into dest. Pass a nil dest to discard the echo.
func (c *Client) Create(ctx context.Context, collection string, record interface{}, dest interface{}) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling %s record: %w", collection, err)
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, collection)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("creating %s record: %v: %w", collection, err, ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("creating %s record: status %d: %w", collection, resp.StatusCode, ErrRemoteUnavailable)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %v: %w", collection, err, ErrRemoteDecode)
	}

	return nil
}

// Ping checks that the store answers on its base address. Used by the
// scheduled reachability probe; any 2xx-4xx answer counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinging store: %v: %w", err, ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("pinging store: status %d: %w", resp.StatusCode, ErrRemoteUnavailable)
	}

	return nil
}
