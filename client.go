package qstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/http/httpguts"
)

// defaultBaseURL is the QStash API server all requests are issued against
// unless overridden with [WithBaseURL].
const defaultBaseURL = "https://qstash.upstash.io/v1/"

// Value is a decoded JSON response body. The service's responses are
// loosely typed, so they are exposed as structural JSON rather than
// per-endpoint structs.
type Value = map[string]any

// Client is a typed client for the QStash HTTP API. It holds no mutable
// state after construction and is safe for concurrent use; every method
// performs exactly one request/response round trip.
type Client struct {
	http    *resty.Client
	baseURL string
	options *Options
}

// New creates a Client authenticating with the given API token. The token
// is the API key of the QStash account, found on the dashboard. It is sent
// as `Authorization: Bearer <token>` on every request and is never written
// to any log or diagnostic output.
//
// Returns an [ErrorKindInvalidHeader] error if the token contains bytes
// illegal in an HTTP header value, or an [ErrorKindURL] error if the
// configured base URL does not parse as an absolute URL.
func New(token string, opts ...Option) (*Client, error) {
	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if !httpguts.ValidHeaderFieldValue(token) {
		return nil, headerErr("token is not a valid header value")
	}

	base, err := url.Parse(options.baseURL)
	if err != nil {
		return nil, urlErr(err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, urlErr(fmt.Errorf("base URL %q is not absolute", options.baseURL))
	}

	var rc *resty.Client
	if options.httpClient != nil {
		rc = resty.NewWithClient(options.httpClient)
	} else {
		rc = resty.New()
	}

	rc.SetAuthToken(token)
	rc.SetHeaders(options.requestHeaders)

	return &Client{
		http:    rc,
		baseURL: base.String(),
		options: options,
	}, nil
}

// Close releases idle pooled connections held by the underlying transport.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.GetClient().CloseIdleConnections()
}

// Publish publishes a message to a destination URL or a named topic.
//
// The body is serialized as JSON. Delivery directives (delay, retries,
// cron schedule, callback, deduplication id, custom headers) are supplied
// through settings; pass nil for none.
func (c *Client) Publish(ctx context.Context, target string, body any, settings *MessageSettings) (Value, error) {
	endpoint, err := c.endpoint("publish/" + target)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, jsonErr(err)
	}

	req := c.http.R().SetContext(ctx).SetBody(payload)

	if settings != nil {
		headers, err := settings.Headers()
		if err != nil {
			return nil, err
		}
		req.SetHeaderMultiValues(headers)
	}

	return c.execute(req, http.MethodPost, endpoint)
}

// GetMessage fetches a previously published message by id.
func (c *Client) GetMessage(ctx context.Context, id string) (Value, error) {
	endpoint, err := c.endpoint("messages/" + id)
	if err != nil {
		return nil, err
	}

	return c.execute(c.http.R().SetContext(ctx), http.MethodGet, endpoint)
}

// CancelMessage cancels delivery of a message by id.
func (c *Client) CancelMessage(ctx context.Context, id string) (Value, error) {
	endpoint, err := c.endpoint("messages/" + id)
	if err != nil {
		return nil, err
	}

	return c.execute(c.http.R().SetContext(ctx), http.MethodDelete, endpoint)
}

// GetTasks lists the delivery tasks of a message. Pass a nil cursor for the
// first page; pass the cursor returned by the previous page to continue.
func (c *Client) GetTasks(ctx context.Context, messageID string, cursor *int64) (Value, error) {
	endpoint, err := c.endpoint("messages/" + messageID + "/tasks")
	if err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx)
	if cursor != nil {
		req.SetQueryParam("cursor", strconv.FormatInt(*cursor, 10))
	}

	return c.execute(req, http.MethodGet, endpoint)
}

// GetQuota fetches the account's current quota and usage.
func (c *Client) GetQuota(ctx context.Context) (Value, error) {
	endpoint, err := c.endpoint("quota")
	if err != nil {
		return nil, err
	}

	return c.execute(c.http.R().SetContext(ctx), http.MethodGet, endpoint)
}

// endpoint joins the base URL with a path suffix. The base URL always ends
// with a slash, so plain concatenation preserves targets that are themselves
// full URLs (publish/https://example.com/hook).
func (c *Client) endpoint(path string) (string, error) {
	endpoint := c.baseURL + path

	if _, err := url.Parse(endpoint); err != nil {
		return "", urlErr(err)
	}

	return endpoint, nil
}

// execute issues the request and decodes the JSON response. Non-2xx
// responses are always errors, never decoded as success payloads.
func (c *Client) execute(req *resty.Request, method, endpoint string) (Value, error) {
	c.options.requestLogger.Debugf("%s %s", method, endpoint)

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.options.requestLogger.Errorf("%s %s failed: %v", method, endpoint, err)
		return nil, transportErr(method+" "+endpoint, err)
	}

	if !resp.IsSuccess() {
		message := errorMessage(resp)
		c.options.requestLogger.Errorf("%s %s returned status %d: %s", method, endpoint, resp.StatusCode(), message)
		return nil, statusErr(method+" "+endpoint, resp.StatusCode(), message)
	}

	c.options.requestLogger.Debugf("%s %s returned status %d", method, endpoint, resp.StatusCode())

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return Value{}, nil
	}

	var value Value
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, jsonErr(err)
	}

	return value, nil
}

// errorMessage extracts a human-readable message from an error response:
// the "error" field of a JSON body when present, otherwise the raw body.
func errorMessage(resp *resty.Response) string {
	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return "(empty error body)"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return string(body)
}
