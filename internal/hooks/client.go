package hooks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultServerURL = "http://127.0.0.1:37717"
	httpTimeout      = 5 * time.Second
)

// Client talks to the local recollect server.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a new hook HTTP client.
// Respects RECOLLECT_URL env var, falls back to http://127.0.0.1:37717.
func NewClient() *Client {
	url := os.Getenv("RECOLLECT_URL")
	if url == "" {
		url = defaultServerURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: url,
	}
}

// Post sends a JSON POST request. Returns the response body.
func (c *Client) Post(path string, body []byte) ([]byte, error) {
	return c.do(http.MethodPost, path, bytes.NewReader(body))
}

// Get sends a GET request. Returns the response body.
func (c *Client) Get(path string) ([]byte, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) do(method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return data, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	return data, nil
}

// Healthy checks if the server is reachable.
func (c *Client) Healthy() bool {
	resp, err := c.http.Get(c.baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
