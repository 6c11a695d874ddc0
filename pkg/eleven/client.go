// Package eleven provides an ElevenLabs text-to-speech API client.
//
// The client requests raw PCM output so the caller can measure duration and
// loudness without decoding a container format.
package eleven

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default ElevenLabs API base URL.
	DefaultBaseURL = "https://api.elevenlabs.io"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retries.
	DefaultMaxRetries = 2
)

// Model IDs accepted by the synthesis endpoint.
const (
	ModelMonolingualV1  = "eleven_monolingual_v1"
	ModelMultilingualV1 = "eleven_multilingual_v1"
	ModelMultilingualV2 = "eleven_multilingual_v2"
	ModelTurboV2        = "eleven_turbo_v2"
)

// Models lists the selectable model IDs.
var Models = []string{
	ModelMonolingualV1,
	ModelMultilingualV1,
	ModelMultilingualV2,
	ModelTurboV2,
}

// Client is the ElevenLabs API client.
type Client struct {
	// Speech provides speech synthesis operations.
	Speech *SpeechService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetry sets the maximum number of retries for transient errors.
func WithRetry(maxRetries int) Option {
	return func(c *clientConfig) {
		c.maxRetries = maxRetries
	}
}

// NewClient creates a new ElevenLabs API client.
//
// The apiKey is required and can be obtained from the ElevenLabs platform.
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.Speech = newSpeechService(c)

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}
