package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// RoutePosts is the list-posts route on the blog API.
const RoutePosts = "/posts"

const defaultTimeout = 10 * time.Second

// Client fetches posts from the blog API, authorizing each request with the
// access token supplied by an oauth2.TokenSource (typically the session
// manager's).
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	timeout    time.Duration
	log        zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

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

// NewClient initializes a posts Client.
func NewClient(baseURL string, tokens oauth2.TokenSource, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[posts.NewClient] baseURL is required")
	}
	if tokens == nil {
		return nil, errors.New("[posts.NewClient] token source is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		timeout:    defaultTimeout,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// List returns every post visible to the authenticated user.
func (c *Client) List(ctx context.Context) ([]*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.tokens.Token()
	if err != nil {
		return nil, errors.Wrap(err, "[Client.List] token source")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+RoutePosts, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.List] build request")
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.List] do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[Client.List] unexpected status %d", resp.StatusCode)
	}

	var fetched []*Post
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, errors.Wrap(err, "[Client.List] decode response")
	}

	c.log.Debug().Int("count", len(fetched)).Msg("fetched posts")
	return fetched, nil
}
