// Package dian talks to the tax authority web service: it submits signed
// documents and interprets the acknowledgement that comes back.
package dian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rezonia/dian-processor/internal/model"
)

// DefaultTimeout bounds a single submission round trip.
const DefaultTimeout = 60 * time.Second

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client submits signed documents to the authority endpoint. It performs a
// single POST per document; no retries happen at this layer.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a transmission client for the given endpoint
func NewClient(endpoint, authToken string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the signed document and classifies the outcome. A 200 response
// hands the body to the acknowledgement parser; everything else becomes a
// TransmissionError with a classifying code.
func (c *Client) Send(ctx context.Context, signedXML string) (*model.Acknowledgement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(signedXML))
	if err != nil {
		return nil, model.NewTransmissionError(model.CodeUnknownError, "cannot build request", err)
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewTransmissionError(model.CodeConnectionError, "cannot read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		code := strconv.Itoa(resp.StatusCode)
		return nil, model.NewTransmissionError(code, fmt.Sprintf("HTTP error: %d", resp.StatusCode), nil)
	}

	return ParseAcknowledgement(string(body)), nil
}

func classifyTransportError(err error) *model.TransmissionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewTransmissionError(model.CodeTimeout, "request timed out", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return model.NewTransmissionError(model.CodeTimeout, "request timed out", err)
		}
		return model.NewTransmissionError(model.CodeConnectionError, "connection failed", err)
	}

	return model.NewTransmissionError(model.CodeUnknownError, "unexpected transport failure", err)
}
