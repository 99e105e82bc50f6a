package qstash

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind identifies the failure class of an [Error]. The set is closed;
// every error returned by this package carries exactly one kind.
type ErrorKind int

const (
	// ErrorKindUnknown is reserved for failures that could not be
	// classified. It is never produced during normal operation.
	ErrorKindUnknown ErrorKind = iota

	// ErrorKindTransport covers connection failures and HTTP responses
	// with a non-2xx status. For status failures, [Error.StatusCode] is
	// set and [Error.Message] holds the server-provided error message.
	ErrorKindTransport

	// ErrorKindInvalidHeader indicates a token, settings field, or custom
	// header that is not representable as an HTTP header. This is a
	// caller-input validation failure, not a network failure.
	ErrorKindInvalidHeader

	// ErrorKindURL indicates the base URL or a computed endpoint URL
	// failed to parse.
	ErrorKindURL

	// ErrorKindJSON indicates a request body could not be serialized or a
	// response body could not be deserialized as JSON.
	ErrorKindJSON
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "http request failed"
	case ErrorKindInvalidHeader:
		return "invalid header value"
	case ErrorKindURL:
		return "invalid url"
	case ErrorKindJSON:
		return "json encode or decode failed"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by all operations in this package.
// Use [errors.As] to inspect the kind and status code:
//
//	var qerr *qstash.Error
//	if errors.As(err, &qerr) && qerr.StatusCode == 404 {
//	    // message not found
//	}
type Error struct {
	Kind       ErrorKind
	Op         string // the request that failed, e.g. "POST https://...", when known
	StatusCode int    // HTTP status for non-2xx responses, 0 otherwise
	Message    string // server-provided error message or validation detail
	Err        error  // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		fmt.Fprintf(&b, ": %s", e.Op)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the operation could plausibly succeed.
// Context cancellation, deadline exceeded, and DNS resolution failures are
// permanent; other connection errors and HTTP 429/5xx statuses are transient.
//
// The client never retries on its own; this is a hint for callers that
// implement their own retry policy.
func (e *Error) Temporary() bool {
	if e.Kind != ErrorKindTransport {
		return false
	}

	if e.Err != nil {
		if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
			return false
		}

		var dnsErr *net.DNSError
		if errors.As(e.Err, &dnsErr) {
			return false
		}

		return true
	}

	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func transportErr(op string, err error) *Error {
	return &Error{Kind: ErrorKindTransport, Op: op, Err: err}
}

func statusErr(op string, status int, message string) *Error {
	return &Error{Kind: ErrorKindTransport, Op: op, StatusCode: status, Message: message}
}

func headerErr(message string) *Error {
	return &Error{Kind: ErrorKindInvalidHeader, Message: message}
}

func urlErr(err error) *Error {
	return &Error{Kind: ErrorKindURL, Err: err}
}

func jsonErr(err error) *Error {
	return &Error{Kind: ErrorKindJSON, Err: err}
}
