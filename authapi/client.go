package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Routes of the remote auth API.
const (
	RouteSignup  = "/auth/signup"
	RouteLogin   = "/auth/login"
	RouteRefresh = "/auth/refresh-token"
)

const (
	contentTypeJSON = "application/json"
	defaultTimeout  = 10 * time.Second
)

// Client is a typed HTTP client for the three auth endpoints. It performs no
// credential storage itself; the session manager owns that.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client (e.g. one sharing a cookie
// jar with the session manager's cookie mirror).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every request. A hung call surfaces as
// RequestTimedOutErr instead of pending forever.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// New initializes a Client for the given base URL.
func New(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[authapi.New] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Register creates a new account. A response carrying error/message fields is
// returned as a *RejectionError.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.postJSON(ctx, RouteSignup, "", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Register] signup request")
	}
	if resp.Error != "" || (resp.AccessToken == "" && resp.Message != "") {
		return nil, &RejectionError{Message: rejectionMessage(resp.Message, resp.Error)}
	}
	return &resp, nil
}

// Login exchanges credentials for a token pair and the user profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.postJSON(ctx, RouteLogin, "", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] login request")
	}
	if resp.Error != "" || (resp.AccessToken == "" && resp.Message != "") {
		return nil, &RejectionError{Message: rejectionMessage(resp.Message, resp.Error)}
	}
	return &resp, nil
}

// Refresh mints a new access token from the refresh token. The current access
// token, when held, is forwarded as a bearer authorization header. A response
// with a non-empty message is a rejection.
func (c *Client) Refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.postJSON(ctx, RouteRefresh, accessToken, refreshRequest{Token: refreshToken}, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Refresh] refresh request")
	}
	if resp.Message != "" {
		return nil, &RejectionError{Message: resp.Message}
	}
	return &resp, nil
}

// postJSON issues a bounded POST and decodes the JSON body regardless of the
// HTTP status: the remote API signals failure through body fields, not status
// codes.
func (c *Client) postJSON(ctx context.Context, route, bearerToken string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return RequestTimedOutErr
		}
		return errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("route", route).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("auth api request")

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	return nil
}

func rejectionMessage(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
