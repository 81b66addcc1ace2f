// Package sponsorblock implements a read-only client for the SponsorBlock
// segment API, using the privacy-preserving hash-prefix lookup protocol: only
// a short prefix of the SHA-256 digest of a video ID is ever sent to the
// server, and near-miss matches are discarded locally.
package sponsorblock

import (
	"net/http"
	"time"
)

// Default configuration values pinned to the API version this client
// targets.
const (
	// DefaultBaseURL is the official SponsorBlock API.
	DefaultBaseURL = "https://sponsor.ajay.app/api"
	// TestingBaseURL is the SponsorBlock testing database.
	TestingBaseURL = "https://sponsor.ajay.app/test/api"
	// DefaultService is the platform the video IDs belong to.
	DefaultService = "YouTube"
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "sbclient/1.0"
)

// Config holds client configuration. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// BaseURL is the API root, without a trailing slash. Only change this
	// when targeting a different SponsorBlock instance.
	BaseURL string

	// Service is the host platform of the looked-up video IDs.
	Service string

	// HashPrefixLength is the number of digest characters sent to the
	// server. Must be within [MinHashPrefixLength, MaxHashPrefixLength].
	// Smaller values give more privacy but larger responses.
	HashPrefixLength int

	// UserAgent for HTTP requests.
	UserAgent string

	// Timeout for individual HTTP requests. Zero means no timeout.
	Timeout time.Duration

	// Transport configures connection pooling.
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection may remain open.
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 for servers that don't explicitly
	// advertise it.
	ForceAttemptHTTP2 bool
}

// DefaultConfig returns sensible defaults for the official API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		Service:          DefaultService,
		HashPrefixLength: DefaultHashPrefixLength,
		UserAgent:        DefaultUserAgent,
		Timeout:          30 * time.Second,
		Transport:        DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns sensible defaults for HTTP transport
// configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// Client talks to the SponsorBlock API. It holds a user ID and a pooled HTTP
// transport, both fixed at construction, and is safe for concurrent use.
// Each call issues exactly one outbound request: the client does not retry,
// cache, or log. Layer those concerns in front of it if a deployment needs
// them.
type Client struct {
	base   *http.Client
	config Config

	// userID is the caller's long-lived pseudo-identity, used by the API
	// only for rate accounting. It is not a credential, but leaking it lets
	// others impersonate this caller's rate bucket, so it is never exposed
	// by the client.
	userID string
}

// New creates a client for the given user ID. The ID is an opaque
// caller-chosen token; see GenerateLocalUserID for minting one. A nil config
// uses DefaultConfig. Out-of-range config values are clamped to defaults
// rather than rejected, matching the rest of the constructor's total
// behavior.
func New(userID string, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config := *cfg
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Service == "" {
		config.Service = DefaultService
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.HashPrefixLength < MinHashPrefixLength || config.HashPrefixLength > MaxHashPrefixLength {
		config.HashPrefixLength = DefaultHashPrefixLength
	}

	transport := &http.Transport{
		MaxIdleConns:        config.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: config.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   config.Transport.ForceAttemptHTTP2,
	}

	return &Client{
		base: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		config: config,
		userID: userID,
	}
}

// Close releases idle connections held by the transport.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
