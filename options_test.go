package qstash

import (
	"net/http"
	"testing"
)

func TestNewClientOptions(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()

	if opts.baseURL != "https://qstash.upstash.io/v1/" {
		t.Errorf("expected default base URL, got %s", opts.baseURL)
	}

	if opts.requestLogger == nil {
		t.Error("expected requestLogger to be set")
	}

	if opts.httpClient != nil {
		t.Error("expected httpClient to be unset by default")
	}

	if opts.requestHeaders["Content-Type"] != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", opts.requestHeaders["Content-Type"])
	}

	if opts.requestHeaders["Accept"] != "application/json" {
		t.Errorf("expected Accept=application/json, got %s", opts.requestHeaders["Accept"])
	}
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"with trailing slash", "http://example.com/v1/", "http://example.com/v1/"},
		{"without trailing slash", "http://example.com/v1", "http://example.com/v1/"},
		{"empty ignored", "", "https://qstash.upstash.io/v1/"},
		{"whitespace ignored", "   ", "https://qstash.upstash.io/v1/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			WithBaseURL(tt.input)(opts)

			if opts.baseURL != tt.expected {
				t.Errorf("expected baseURL=%s, got %s", tt.expected, opts.baseURL)
			}
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("valid client", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		hc := &http.Client{}
		WithHTTPClient(hc)(opts)

		if opts.httpClient != hc {
			t.Error("expected httpClient to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		WithHTTPClient(nil)(opts)

		if opts.httpClient != nil {
			t.Error("nil http client should be ignored")
		}
	})
}

func TestWithRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("valid logger", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		logger := &NoopLogger{}
		WithRequestLogger(logger)(opts)

		if opts.requestLogger != logger {
			t.Error("expected requestLogger to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		originalLogger := opts.requestLogger
		WithRequestLogger(nil)(opts)

		if opts.requestLogger != originalLogger {
			t.Error("nil logger should be ignored")
		}
	})
}

func TestWithRequestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		value         string
		expectIgnored bool
	}{
		{"valid header", "X-Custom", "value", false},
		{"empty header ignored", "", "value", true},
		{"whitespace header ignored", "   ", "value", true},
		{"Content-Type protected", "Content-Type", "text/plain", true},
		{"content-type protected (case insensitive)", "content-type", "text/plain", true},
		{"Accept protected", "Accept", "text/plain", true},
		{"accept protected (case insensitive)", "ACCEPT", "text/plain", true},
		{"Authorization protected", "Authorization", "Bearer other", true},
		{"authorization protected (case insensitive)", "authorization", "Bearer other", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			originalLen := len(opts.requestHeaders)

			WithRequestHeader(tt.header, tt.value)(opts)

			if tt.expectIgnored {
				if len(opts.requestHeaders) != originalLen {
					t.Errorf("expected header %q to be ignored", tt.header)
				}
				if opts.requestHeaders["Content-Type"] != "application/json" {
					t.Error("Content-Type should not be changed")
				}
				if opts.requestHeaders["Accept"] != "application/json" {
					t.Error("Accept should not be changed")
				}
			} else if opts.requestHeaders[tt.header] != tt.value {
				t.Errorf("expected header %s=%s, got %s", tt.header, tt.value, opts.requestHeaders[tt.header])
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Options)
		wantError string
	}{
		{
			name:      "valid defaults",
			modify:    func(_ *Options) {},
			wantError: "",
		},
		{
			name:      "empty baseURL",
			modify:    func(o *Options) { o.baseURL = "" },
			wantError: "baseURL must be set",
		},
		{
			name:      "nil requestLogger",
			modify:    func(o *Options) { o.requestLogger = nil },
			wantError: "requestLogger must not be nil",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			tt.modify(opts)

			err := opts.Validate()

			if tt.wantError == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error %q, got nil", tt.wantError)
				} else if err.Error() != tt.wantError {
					t.Errorf("expected error %q, got %q", tt.wantError, err.Error())
				}
			}
		})
	}
}
