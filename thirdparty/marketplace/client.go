package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/muhammadheryan/food-delivery/cmd/config"
	utilsContext "github.com/muhammadheryan/food-delivery/utils/context"
	"github.com/muhammadheryan/food-delivery/utils/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the marketplace.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("marketplace returned status %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL        string
	http           *http.Client
	readAttempts   uint
	readBackoff    time.Duration
	onUnauthorized func(ctx context.Context)
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func NewClient(cfg config.MarketplaceConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		readAttempts: cfg.ReadAttempts,
		readBackoff:  cfg.ReadBackoff,
	}
	if c.readAttempts == 0 {
		c.readAttempts = 1
	}
	if c.readBackoff <= 0 {
		c.readBackoff = 200 * time.Millisecond
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers the hook run whenever the marketplace answers 401.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// get is retried with exponential backoff on transport failures and 5xx answers.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.readBackoff

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return struct{}{}, nil
		}
		if code := StatusCode(err); code > 0 && code < http.StatusInternalServerError {
			return struct{}{}, backoff.Permanent(err)
		}
		logger.Ctx(ctx).Warn("[marketplace] read failed", zap.String("path", path), zap.String("error", err.Error()))
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.readAttempts))

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := utilsContext.GetToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := utilsContext.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls the server-provided message out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
