package qstash

import (
	"errors"
	"net/http"
	"strings"
)

type Option func(*Options)

type Options struct {
	baseURL        string
	httpClient     *http.Client
	requestLogger  RequestLogger
	requestHeaders map[string]string
}

func newClientOptions() *Options {
	return &Options{
		baseURL:       defaultBaseURL,
		requestLogger: &NoopLogger{},
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// WithBaseURL overrides the default QStash API base URL. Intended for
// self-hosted deployments and tests. A trailing slash is appended if
// missing; an empty value is ignored and the default is retained.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimSpace(baseURL)

		if baseURL == "" {
			return
		}

		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		o.baseURL = baseURL
	}
}

// WithHTTPClient supplies a caller-owned [http.Client] for the underlying
// transport. Use this to impose timeouts, custom TLS settings, or proxies;
// the client itself configures none of these.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Options) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a default header sent with every request.
// Content-Type, Accept, and Authorization are protected and cannot be
// overridden; use [MessageSettings.CustomHeaders] for per-message headers.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" ||
			strings.EqualFold(header, "Content-Type") ||
			strings.EqualFold(header, "Accept") ||
			strings.EqualFold(header, "Authorization") {
			return
		}

		o.requestHeaders[header] = value
	}
}

func (o *Options) Validate() error {
	if o.baseURL == "" {
		return errors.New("baseURL must be set")
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	return nil
}
