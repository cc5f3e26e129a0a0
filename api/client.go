// Package api is the REST client for the task and quiz backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/benjamonnguyen/tgmini"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// TokenSource yields the bearer token for outgoing calls, empty when logged out.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	l       tgmini.Logger
}

var (
	_ tgmini.TaskService    = (*Client)(nil)
	_ tgmini.QuizService    = (*Client)(nil)
	_ tgmini.CatalogService = (*Client)(nil)
	_ tgmini.AuthService    = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(l tgmini.Logger) Option {
	return func(c *Client) {
		c.l = l
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
		l:       tgmini.NopLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	public  bool
	allowNo bool // a 204 is a valid answer
}

// do sends req and decodes a JSON response into out when out is non-nil.
// It returns the response status code.
func (c *Client) do(ctx context.Context, req request, out any) (int, error) {
	var token string
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if !req.public && token == "" {
		return 0, fmt.Errorf("%s %s: %w", req.method, req.path, tgmini.ErrUnauthenticated)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return 0, err
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.l.Debug("api request", "method", req.method, "path", req.path, "requestID", requestID)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.l.Warn("api request failed", "method", req.method, "path", req.path, "error", err)
		return 0, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(req.method, req.path, resp)
		c.l.Warn("api error response", "method", req.method, "path", req.path, "status", resp.StatusCode, "message", apiErr.Message)
		return resp.StatusCode, apiErr
	}
	if resp.StatusCode == http.StatusNoContent {
		if !req.allowNo && out != nil {
			return resp.StatusCode, fmt.Errorf("%s %s: unexpected empty response", req.method, req.path)
		}
		return resp.StatusCode, nil
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) && req.allowNo {
			return http.StatusNoContent, nil
		}
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, request{method: http.MethodGet, path: path}, out)
	return err
}
