package fluidtopics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/docsflow/docsflow/internal/config"
)

// Client talks to a Fluid Topics portal over its document upload API.
// A single attempt is made per call; retry policy lives with the callers
// (the status poller retries transient failures, the uploader does not).
type Client struct {
	// baseURL is the portal root, without a trailing slash.
	baseURL string
	// username and password are sent with HTTP Basic auth on every request.
	username string
	password string
	// collection is the portal collection uploads are published into.
	collection string

	// httpClient performs all requests; replaceable for tests.
	httpClient *http.Client

	// uploadTimeout bounds the whole multipart upload call.
	uploadTimeout time.Duration
	// statusTimeout bounds each individual status query.
	statusTimeout time.Duration
	// pollInterval is the fixed wait between status queries.
	pollInterval time.Duration
	// pollBudget is the maximum number of status queries per upload.
	pollBudget int
}

// Option configures client behaviour.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPollInterval overrides the fixed wait between status queries.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithPollBudget overrides the maximum number of status queries.
func WithPollBudget(budget int) Option {
	return func(c *Client) {
		if budget > 0 {
			c.pollBudget = budget
		}
	}
}

// WithStatusTimeout overrides the per-query timeout for status checks.
func WithStatusTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.statusTimeout = timeout
		}
	}
}

// defaultStatusTimeout bounds a single status query.
const defaultStatusTimeout = 30 * time.Second

// errArtifactRequired is returned when an upload is attempted without an artifact.
var errArtifactRequired = errors.New("artifact must be provided")

// NewClient builds a portal client from validated configuration.
// Configuration problems surface here, before any network activity.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:       cfg.BaseURL,
		username:      cfg.Username,
		password:      cfg.Password,
		collection:    cfg.Collection,
		httpClient:    http.DefaultClient,
		uploadTimeout: cfg.UploadTimeout,
		statusTimeout: defaultStatusTimeout,
		pollInterval:  cfg.PollInterval,
		pollBudget:    cfg.PollBudget,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// callContext bounds a single call with the provided timeout, or returns a
// cancellable child context when no timeout is configured.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
