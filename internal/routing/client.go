package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/config"
)

// ErrServiceUnavailable route service not configured or unreachable
var ErrServiceUnavailable = errors.New("route service unavailable")

// Route a driving route returned by the route service
type Route struct {
	DistanceMeters  int64  `json:"distance"`
	DurationSeconds int64  `json:"duration"`
	Geometry        string `json:"geometry"`
}

// Client queries an external route service for driving routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a route service client. An empty base URL yields a
// client whose calls always return ErrServiceUnavailable.
func NewClient(cfg config.RoutingConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Available reports whether a route service is configured.
func (c *Client) Available() bool {
	return c.baseURL != ""
}

// GetRoute fetches the primary driving route between two coordinate pairs.
func (c *Client) GetRoute(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error) {
	if !c.Available() {
		return nil, ErrServiceUnavailable
	}

	params := url.Values{}
	params.Set("from", fmt.Sprintf("%f,%f", fromLat, fromLng))
	params.Set("to", fmt.Sprintf("%f,%f", toLat, toLng))
	endpoint := fmt.Sprintf("%s/route?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("route: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: http %s: %s", ErrServiceUnavailable, resp.Status, strings.TrimSpace(string(data)))
	}

	var payload struct {
		Primary *Route `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("route: decode: %w", err)
	}
	if payload.Primary == nil || payload.Primary.DurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: no usable route", ErrServiceUnavailable)
	}
	return payload.Primary, nil
}
