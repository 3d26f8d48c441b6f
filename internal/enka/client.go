package enka

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://enka.network"

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 25 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
	}
}

// NewClientWithBaseURL exists for tests against a local server.
func NewClientWithBaseURL(userAgent, baseURL string) *Client {
	c := NewClient(userAgent)
	c.baseURL = baseURL
	return c
}

// StatusError is returned for a non-2xx response from the API. There is no
// retry; the caller gets exactly one structured failure per fetch.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("enka api status %d for %s: %s", e.Status, e.URL, e.Body)
}

// FetchSnapshot retrieves the full inspection snapshot for one UID.
func (c *Client) FetchSnapshot(ctx context.Context, uid string) (*Snapshot, error) {
	url := fmt.Sprintf("%s/api/uid/%s", c.baseURL, uid)

	var snap Snapshot
	if err := c.getJSON(ctx, url, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{URL: url, Status: resp.StatusCode, Body: string(b)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode json from %s: %w", url, err)
	}
	return nil
}
