// Package api builds HTTP clients for the tracker backend.
//
// A Client is bound to one bearer token. Every request carries
// "Authorization: Bearer <token>", has a per-attempt timeout, and is replayed
// up to a fixed number of times when the backend answers with a retryable
// status (500 by default). Network failures, timeouts and 4xx answers are never
// retried.
//
// Non-2xx answers come back as *HTTPError, which unwraps to the sentinel errors
// in internal/errors so callers can branch with errors.Is.
package api
