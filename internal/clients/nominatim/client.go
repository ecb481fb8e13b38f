// Package nominatim provides a client for the Nominatim geocoding API
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/models"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "KundliGateway/1.0"
	DefaultTimeout   = 30 * time.Second

	// Nominatim's usage policy allows at most one request per second.
	DefaultRateLimit = 1
)

// Client implements the GeocodeClient interface
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithUserAgent sets the client identifier sent with every request
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Nominatim client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search looks up a free-text place name, requesting a single JSON match.
func (c *Client) Search(ctx context.Context, place string) ([]models.GeocodePlace, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, common.NewExternalServiceError("rate limit wait", err)
	}

	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, common.NewExternalServiceError("failed to create geocoding request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("place", place).Msg("Nominatim search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewExternalServiceError("geocoding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, common.NewExternalServiceError(
			fmt.Sprintf("geocoding request failed with status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var places []models.GeocodePlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, common.NewExternalServiceError("failed to decode geocoding response", err)
	}

	return places, nil
}

// Ensure Client implements GeocodeClient
var _ interfaces.GeocodeClient = (*Client)(nil)
