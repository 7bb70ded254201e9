// Package practicum talks to the homework status API.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
)

// Failures reported by Poll.
var (
	ErrTransport           = errors.New("transport failure")
	ErrEndpointUnavailable = errors.New("endpoint unavailable")
	ErrMalformedPayload    = errors.New("malformed payload")
)

const maxBodySize = 5 * 1024 * 1024

// Error is a poll failure. Summary holds only stable detail, so repeated
// occurrences of one condition produce the same text; Err keeps the raw cause.
type Error struct {
	Kind    error
	Summary string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Summary
	}
	return e.Summary + ": " + e.Err.Error()
}

// Unwrap exposes both the failure kind and the raw cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Stable returns the operator-facing text of the failure.
func (e *Error) Stable() string {
	return e.Summary
}

func newError(kind error, detail string, cause error) *Error {
	return &Error{Kind: kind, Summary: kind.Error() + ": " + detail, Err: cause}
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client polls the homework status endpoint.
type Client struct {
	client   HTTPClient
	endpoint string
	token    string
}

// New creates a Client for endpoint authorized with token.
func New(client HTTPClient, endpoint, token string) *Client {
	return &Client{
		client:   client,
		endpoint: endpoint,
		token:    token,
	}
}

// Poll requests homework updated since cursor and returns the decoded body as is.
// The result is untrusted: it may be nil, a non-object, or miss fields.
func (c *Client) Poll(ctx context.Context, cursor int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newError(ErrTransport, c.endpoint+": "+transportCause(err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(ErrEndpointUnavailable, fmt.Sprintf("%s returned status %d", c.endpoint, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newError(ErrTransport, "read body: "+transportCause(err), err)
	}

	var payload any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, newError(ErrMalformedPayload, "response is not valid json", err)
	}
	if dec.More() {
		return nil, newError(ErrMalformedPayload, "trailing data after json value", nil)
	}
	return payload, nil
}

// transportCause names a network failure without addresses or ports.
func transportCause(err error) string {
	var dnsErr *net.DNSError
	var errno syscall.Errno
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &dnsErr):
		return "dns lookup failed for " + dnsErr.Name
	case errors.As(err, &errno):
		return errno.Error()
	case errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out"
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return "connection closed unexpectedly"
	default:
		return "request failed"
	}
}
