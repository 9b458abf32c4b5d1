// Package backend is the typed HTTP client for the records service this
// aggregator sits in front of. Every call is context-bound and carries the
// bearer credential obtained at startup; failures surface as
// TransportError values so callers can distinguish remote trouble from
// local projection faults.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// TransportError wraps a network or remote failure. The aggregator never
// retries automatically; the error is stored and shown to the user.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	rest  *resty.Client
	token string
}

func NewClient(baseURL string, token string) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		rest.SetAuthToken(token)
	}
	return &Client{rest: rest, token: token}
}

// UserID extracts the subject user id from the bearer token. The token is
// issued and verified elsewhere; here it is only decoded to address the
// per-user backend routes.
func (c *Client) UserID() (string, error) {
	return SubjectFromToken(c.token)
}

func (c *Client) getJSON(ctx context.Context, op string, path string, out any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(out).
		ForceContentType("application/json").
		Get(path)
	return examine(op, resp, err)
}

func (c *Client) sendJSON(ctx context.Context, op string, method string, path string, payload any, out any) error {
	req := c.rest.R().
		SetContext(ctx).
		SetBody(payload).
		ForceContentType("application/json")
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	return examine(op, resp, err)
}

func (c *Client) deleteJSON(ctx context.Context, op string, path string) error {
	resp, err := c.rest.R().SetContext(ctx).Delete(path)
	return examine(op, resp, err)
}

func examine(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		return &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return nil
}
