package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

const (
	contentTypeJSON = "application/json"
	maxErrorBody    = 64 << 10
)

// Client talks JSON to the backend on behalf of one user.
type Client struct {
	baseURL string
	http    *http.Client
}

// Factory builds clients that share a base URL and retry policy.
type Factory struct {
	baseURL string
	options []Option
}

func NewFactory(baseURL string, options ...Option) *Factory {
	return &Factory{
		baseURL: strings.TrimRight(baseURL, "/"),
		options: options,
	}
}

// Build returns a client that authorizes every request with bearerToken.
func (f *Factory) Build(bearerToken string) *Client {
	return New(f.baseURL, bearerToken, f.options...)
}

// Public returns a client without credentials, used before sign-in.
func (f *Factory) Public() *Client {
	return NewPublic(f.baseURL, f.options...)
}

// BaseURL is the backend root the factory targets.
func (f *Factory) BaseURL() string {
	return f.baseURL
}

// New builds a client bound to bearerToken.
func New(baseURL, bearerToken string, options ...Option) *Client {
	o := applyOptions(options)
	o.transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearerToken, TokenType: "Bearer"}),
		Base:   o.transport,
	}
	return newClient(baseURL, o)
}

// NewPublic builds a client that sends no Authorization header.
func NewPublic(baseURL string, options ...Option) *Client {
	return newClient(baseURL, applyOptions(options))
}

func applyOptions(options []Option) *options {
	o := defaultOptions()
	for _, opt := range options {
		opt(o)
	}
	return o
}

func newClient(baseURL string, o *options) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Timeout:   o.timeout,
		Transport: o.transport,
	}
	rc.RetryMax = o.retryLimit
	rc.RetryWaitMin = o.retryWaitMin
	rc.RetryWaitMax = o.retryWaitMax
	rc.CheckRetry = o.checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = retryLogger{}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc.StandardClient(),
	}
}

// checkRetry only replays answered requests whose method and status are both
// listed. Transport errors, timeouts and cancellations end the call.
func (o *options) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil || resp.Request == nil {
		return false, nil
	}
	if !slices.Contains(o.retryMethods, resp.Request.Method) {
		return false, nil
	}
	return slices.Contains(o.retryStatusCodes, resp.StatusCode), nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("[api Do] encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("[api Do] %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("[api send] %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[api send] decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
