package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
}

type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer sends an HttpRequest. Client is the production implementation.
type Doer interface {
	SendRequest(ctx context.Context, req HttpRequest) (Response, error)
}

var ErrUnavailable = errors.New("backend is temporarily unavailable")

// errServerStatus marks 5xx responses so the breaker counts them as failures.
var errServerStatus = errors.New("server error status")

type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[Response]
}

// NewClient returns a traced client. A nil breaker disables circuit breaking.
func NewClient(timeout time.Duration, breaker *gobreaker.CircuitBreaker[Response]) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
	}
}

// SendRequest sends an HTTP request based on the given HttpRequest struct.
// Any status is returned as a Response; only transport failures are errors.
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) (Response, error) {
	if c.breaker == nil {
		return c.send(ctx, req)
	}

	resp, err := c.breaker.Execute(func() (Response, error) {
		resp, err := c.send(ctx, req)
		if err == nil && resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, err
	})
	switch {
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, err
}

func (c *Client) send(ctx context.Context, req HttpRequest) (Response, error) {
	// Create the HTTP request
	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	// Add headers to the request
	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Response{StatusCode: response.StatusCode}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{StatusCode: response.StatusCode, Body: body}, nil
}
