package api

import (
	"net/http"
	"time"

	"github.com/jrsteele09/tracker-web/internal/config"
)

type options struct {
	timeout          time.Duration
	retryLimit       int
	retryMethods     []string
	retryStatusCodes []int
	retryWaitMin     time.Duration
	retryWaitMax     time.Duration
	transport        http.RoundTripper
}

func defaultOptions() *options {
	return &options{
		timeout:          10 * time.Second,
		retryLimit:       2,
		retryMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		retryStatusCodes: []int{http.StatusInternalServerError},
		retryWaitMin:     300 * time.Millisecond,
		retryWaitMax:     2 * time.Second,
		transport:        http.DefaultTransport,
	}
}

type Option func(*options)

// WithConfig applies the timeout and retry policy from cfg.
func WithConfig(cfg config.APIConfig) Option {
	return func(o *options) {
		o.timeout = cfg.GetRequestTimeout()
		o.retryLimit = cfg.GetRetryLimit()
		o.retryMethods = cfg.GetRetryMethods()
		o.retryStatusCodes = cfg.GetRetryStatusCodes()
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRetryLimit sets the number of additional attempts.
func WithRetryLimit(n int) Option {
	return func(o *options) {
		o.retryLimit = n
	}
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(min, max time.Duration) Option {
	return func(o *options) {
		o.retryWaitMin = min
		o.retryWaitMax = max
	}
}

// WithTransport sets the base round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}
