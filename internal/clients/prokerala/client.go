// Package prokerala provides a client for the Prokerala astrology API
package prokerala

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/saralwebs/kundli/internal/common"
	"github.com/saralwebs/kundli/internal/interfaces"
	"github.com/saralwebs/kundli/internal/models"
)

const (
	DefaultBaseURL   = "https://api.prokerala.com"
	DefaultTokenURL  = "https://api.prokerala.com/token"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// tokenExpiryMargin is subtracted from the server-reported lifetime so a
	// token is refreshed slightly before the upstream considers it expired.
	tokenExpiryMargin = 30 // seconds
)

// Client implements the AstrologyClient interface. It holds at most one
// cached bearer token; the refresh path is mutex-guarded so concurrent
// cache misses share a single credentials exchange.
type Client struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *common.Logger
	limiter      *rate.Limiter
	now          func() time.Time

	mu     sync.Mutex
	cached models.CachedToken
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTokenURL sets the token-issuance endpoint
func WithTokenURL(tokenURL string) ClientOption {
	return func(c *Client) {
		c.tokenURL = tokenURL
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

// WithClock sets the time source used for token expiry checks.
// Tests use this to pin "now".
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new Prokerala client
func NewClient(clientID, clientSecret string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		tokenURL:     DefaultTokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an upstream API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("prokerala API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// tokenResponse is the OAuth2 client-credentials exchange reply
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns a bearer token, serving the cached value when it has not
// expired. On a miss it performs the client-credentials exchange and stores
// the new token with a safety margin trimmed off its lifetime. A failed
// exchange leaves the cache in its prior state.
func (c *Client) Token(ctx context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Valid(c.now().Unix()) {
		return c.cached.Value, true, nil
	}

	tok, err := c.exchange(ctx)
	if err != nil {
		return "", false, err
	}

	c.cached = models.CachedToken{
		Value:                 tok.AccessToken,
		ExpiresAtEpochSeconds: c.now().Unix() + tok.ExpiresIn - tokenExpiryMargin,
	}

	c.logger.Debug().
		Int64("expires_in", tok.ExpiresIn).
		Msg("Obtained new access token")

	return c.cached.Value, false, nil
}

// exchange performs the OAuth2 client-credentials exchange.
func (c *Client) exchange(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, common.NewExternalServiceError("failed to create token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewExternalServiceError("token exchange failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, common.NewExternalServiceError("token exchange failed", &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/token",
		})
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, common.NewExternalServiceError("failed to decode token response", err)
	}

	if tok.AccessToken == "" {
		return nil, common.NewExternalServiceError("token missing in response", nil)
	}

	return &tok, nil
}

// Chart performs a bearer-authenticated chart request. The upstream answers
// with either a JSON document or a raw SVG body; the caller branches on the
// returned content type.
func (c *Client) Chart(ctx context.Context, params interfaces.ChartParams) (*models.ChartResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, common.NewExternalServiceError("rate limit wait", err)
	}

	token, _, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("ayanamsa", "1")
	q.Set("coordinates", params.Coordinates)
	q.Set("datetime", params.Datetime)
	q.Set("chart_type", params.ChartType)
	q.Set("chart_style", params.ChartStyle)
	q.Set("format", "svg")

	reqURL := fmt.Sprintf("%s/v2/astrology/chart?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, common.NewExternalServiceError("failed to create chart request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json, text/plain")

	c.logger.Debug().
		Str("coordinates", params.Coordinates).
		Str("datetime", params.Datetime).
		Str("chart_type", params.ChartType).
		Msg("Prokerala chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewExternalServiceError("chart request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewExternalServiceError("failed to read chart response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, common.NewExternalServiceError("chart request failed", &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/v2/astrology/chart",
		})
	}

	return &models.ChartResponse{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// Ensure Client implements AstrologyClient
var _ interfaces.AstrologyClient = (*Client)(nil)
