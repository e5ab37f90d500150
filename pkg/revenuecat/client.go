package revenuecat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.revenuecat.com/v1"
	defaultTimeout = 5 * time.Second
)

// Client is a RevenueCat REST API client. One instance holds one long-lived
// HTTP session and may carry both credential tiers; it is safe for
// concurrent use because the underlying http.Client is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	publicKey  string
	secretKey  string
	timeout    time.Duration
}

// ClientConfig holds configuration for the RevenueCat client. At least one
// of PublicKey/SecretKey must be set; which operations are callable depends
// on which tiers are present.
type ClientConfig struct {
	// PublicKey authorizes client-safe operations (purchases, offerings,
	// attribute updates).
	PublicKey string
	// SecretKey authorizes privileged operations (deletion, refunds,
	// promotional grants, offering overrides).
	SecretKey string
	// BaseURL overrides the hosted API endpoint. Used by tests; leave
	// empty for production.
	BaseURL string
	// Timeout bounds the whole request/response round trip. Defaults to
	// 5 seconds.
	Timeout time.Duration
	// Debug dumps every round trip via zerolog at debug level.
	Debug bool
}

// keyTier selects which credential authorizes a request. Modeled as an
// enum rather than a string so every dispatch site handles the full set.
type keyTier int

const (
	tierNone keyTier = iota
	tierPublic
	tierSecret
)

// NewClient creates a new RevenueCat API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.PublicKey == "" && cfg.SecretKey == "" {
		return nil, &ConfigError{Reason: "either a public or a secret API key must be configured"}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	} else {
		log.Debug().Str("base_url", baseURL).Msg("Using custom RevenueCat API base URL")
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(cfg.Debug),
		publicKey:  cfg.PublicKey,
		secretKey:  cfg.SecretKey,
		timeout:    timeout,
	}, nil
}

// newHTTPClient builds the one session shared by all requests. The cookie
// jar is deliberately never set: the remote API is stateless, and stored
// cookies would leak state across unrelated subscriber requests sharing
// this client.
func newHTTPClient(debug bool) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if debug {
		rt = &debugTransport{base: rt}
	}
	return &http.Client{Transport: rt}
}

// debugTransport logs full request/response dumps for troubleshooting.
type debugTransport struct {
	base http.RoundTripper
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request", string(dump)).Msg("RevenueCat request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("RevenueCat request failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Int("status", resp.StatusCode).Str("url", req.URL.String()).Str("response", string(dump)).Msg("RevenueCat response")
	}
	return resp, nil
}

// keyFor resolves the credential for a tier, failing before any network I/O
// when the required key is not configured.
func (c *Client) keyFor(tier keyTier) (string, error) {
	switch tier {
	case tierNone:
		return "", nil
	case tierPublic:
		if c.publicKey == "" {
			return "", &ConfigError{Reason: "this operation requires the public API key to be configured"}
		}
		return c.publicKey, nil
	case tierSecret:
		if c.secretKey == "" {
			return "", &ConfigError{Reason: "this operation requires the secret API key to be configured"}
		}
		return c.secretKey, nil
	}
	return "", &ConfigError{Reason: fmt.Sprintf("unknown key tier %d", tier)}
}

// callOpts describes one request through the choke point. Every identifier
// interpolated into path must already be percent-encoded by the caller.
type callOpts struct {
	op       string
	method   string
	path     string
	payload  interface{}
	platform Platform
	tier     keyTier
}

// call is the single dispatch point for every remote operation: it resolves
// credentials, serializes the payload, applies the round-trip timeout,
// gates on 2xx, and decodes the body into out (which may be nil for
// operations without a typed return).
func (c *Client) call(ctx context.Context, opts callOpts, out interface{}) error {
	token, err := c.keyFor(opts.tier)
	if err != nil {
		return err
	}

	var body io.Reader
	if opts.payload != nil {
		data, err := json.Marshal(opts.payload)
		if err != nil {
			return fmt.Errorf("encode request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, opts.method, c.baseURL+opts.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts.platform != "" {
		req.Header.Set("X-Platform", string(opts.platform))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(opts.op, outcomeUnavailable).Inc()
		return &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	requestDuration.WithLabelValues(opts.op).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(opts.op, outcomeUnavailable).Inc()
		return &UnavailableError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		requestsTotal.WithLabelValues(opts.op, outcomeRemoteError).Inc()
		log.Debug().Str("operation", opts.op).Int("status", resp.StatusCode).Msg("RevenueCat API returned error status")
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			requestsTotal.WithLabelValues(opts.op, outcomeDecodeError).Inc()
			return &RemoteError{Body: string(data), Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	requestsTotal.WithLabelValues(opts.op, outcomeOK).Inc()
	return nil
}

// epochMilliseconds converts a native time to the epoch-millisecond wire
// representation, preserving sub-millisecond precision.
func epochMilliseconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e6
}
