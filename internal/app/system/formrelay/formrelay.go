// Package formrelay posts contact submissions to a hosted form-relay API
// that forwards them to the site owner by email.
package formrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultURL is the public submit endpoint.
const DefaultURL = "https://api.web3forms.com/submit"

// DefaultFromName is the sender name shown in the forwarded email.
const DefaultFromName = "Portfolio Contact Form"

// ErrRejected is returned when the relay answers but reports success=false.
var ErrRejected = errors.New("form relay rejected submission")

// maxResponse caps how much of a response body is decoded.
const maxResponse = 1 << 20

// Submission is the visitor input forwarded to the relay.
type Submission struct {
	Email   string
	Message string
}

// Subject returns the templated subject line for s.
func (s Submission) Subject() string {
	return "New Contact Form Message from " + s.Email
}

type requestBody struct {
	AccessKey string `json:"access_key"`
	FromName  string `json:"from_name"`
	ReplyTo   string `json:"replyto"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
}

type responseBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Client sends submissions to one relay endpoint.
type Client struct {
	url       string
	accessKey string
	fromName  string
	client    *http.Client
}

// New returns a Client for url. A nil httpClient gets one whose transport is
// traced with otelhttp; timeouts are left to the caller's context.
func New(url, accessKey, fromName string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if fromName == "" {
		fromName = DefaultFromName
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		url:       url,
		accessKey: accessKey,
		fromName:  fromName,
		client:    httpClient,
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// AccessKey returns the relay access key.
func (c *Client) AccessKey() string { return c.accessKey }

// FromName returns the sender name sent with each submission.
func (c *Client) FromName() string { return c.fromName }

// Send makes exactly one POST. It returns nil only when the relay decodes to
// success=true; every other outcome is an error.
func (c *Client) Send(ctx context.Context, s Submission) error {
	payload, err := json.Marshal(requestBody{
		AccessKey: c.accessKey,
		FromName:  c.fromName,
		ReplyTo:   s.Email,
		Email:     s.Email,
		Message:   s.Message,
		Subject:   s.Subject(),
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	var out responseBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponse)).Decode(&out); err != nil {
		return fmt.Errorf("decode relay response (%s): %w", resp.Status, err)
	}
	if out.Success == nil {
		return fmt.Errorf("relay response (%s) has no success field", resp.Status)
	}
	if !*out.Success {
		if out.Message != "" {
			return fmt.Errorf("%w: %s", ErrRejected, out.Message)
		}
		return ErrRejected
	}
	return nil
}
