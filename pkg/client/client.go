// Package client talks to the record API the way the browser front end does:
// list a kind, create a record, reload after a write.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Client calls the record API over HTTP.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

type Option func(*Client)

// WithRetries sets how many times a request is retried after a transport
// error. Responses, including 5xx, are never retried, so a create is never
// submitted twice after the server answered.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

// WithLogger routes the transport's retry logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.http.Logger = leveledLogger{log: log}
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 0
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 2 * time.Second
	hc.Logger = nil
	hc.CheckRetry = retryTransportErrors
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func retryTransportErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return err != nil, nil
}

func (c *Client) endpoint(kind domain.Kind) string {
	return c.baseURL + "/api/" + kind.Path
}

// List fetches every record of kind.
func (c *Client) List(ctx context.Context, kind domain.Kind) ([]domain.Document, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, c.endpoint(kind), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Plural, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var docs []domain.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind.Plural, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

// Create submits one record and returns the server's confirmation message.
func (c *Client) Create(ctx context.Context, kind domain.Kind, record domain.Document) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, c.endpoint(kind), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", kind.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Message, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	log logrus.FieldLogger
}

func (l leveledLogger) entry(keysAndValues []interface{}) logrus.FieldLogger {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.log.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Info(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Warn(msg)
}

var _ retryablehttp.LeveledLogger = leveledLogger{}
