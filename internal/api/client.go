// Package api is the client for the words API.
package api

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

	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/session"
	"github.com/javiermolinar/moments/internal/word"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrMalformedResponse is returned when a 2xx body can't be decoded into a valid record.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("network response was not ok: %s", e.Status)
}

// SessionIDSource supplies the identifier attached to every request.
type SessionIDSource interface {
	ID(ctx context.Context) (string, error)
}

// Client fetches words from <base-url>/api/words.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionIDSource
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for baseURL. sessions may be nil, in which case no
// session header is sent.
func NewClient(baseURL string, sessions SessionIDSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		sessions:   sessions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchWord requests the current word for languageCode.
func (c *Client) FetchWord(ctx context.Context, languageCode string) (word.Record, error) {
	endpoint := c.baseURL + "/api/words?" + url.Values{"lang": {languageCode}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return word.Record{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.sessions != nil {
		id, err := c.sessions.ID(ctx)
		if err != nil {
			return word.Record{}, fmt.Errorf("session id: %w", err)
		}
		req.Header.Set(session.Header, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return word.Record{}, fmt.Errorf("requesting word: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("words api response",
		zap.String("lang", languageCode),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return word.Record{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return decodeRecord(io.LimitReader(resp.Body, maxBodyBytes))
}

func decodeRecord(r io.Reader) (word.Record, error) {
	dec := json.NewDecoder(r)

	// Fields the record doesn't know are ignored; Validate is the schema check.
	var rec word.Record
	if err := dec.Decode(&rec); err != nil {
		return word.Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return word.Record{}, fmt.Errorf("%w: trailing data after record", ErrMalformedResponse)
	}
	if err := rec.Validate(); err != nil {
		return word.Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return rec.Clone(), nil
}
