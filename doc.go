// Package qstash provides an HTTP client for Upstash QStash, an HTTP based
// messaging and scheduling solution for serverless and edge runtimes.
//
// The client wraps [github.com/go-resty/resty/v2] and exposes one method per
// API endpoint: publish a message, fetch or cancel a message, list a
// message's delivery tasks, and fetch the account quota.
//
// # Basic Usage
//
//	c, err := qstash.New("my-token")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	settings := qstash.NewMessageSettings().Delay("10s").Retries(3)
//
//	result, err := c.Publish(ctx, "https://example.com/hook",
//	    map[string]any{"key1": "value1"}, settings)
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained.
// The client configures no timeouts and performs no retries of its own;
// supply a caller-owned transport via [WithHTTPClient] to impose timeouts,
// and use [MessageSettings.Retries] to request server-side delivery retries.
//
// # Delivery Directives
//
// Optional per-message directives (delay, retry count, cron schedule,
// callback URL, deduplication id, custom headers) are accumulated on a
// [MessageSettings] value and sent as Upstash-* request headers. Custom
// headers are applied last and win on name collision with a directive.
//
// # Errors
//
// Every failure is returned as an [*Error] carrying an [ErrorKind] from a
// closed set. Non-2xx responses are always surfaced as transport errors with
// the HTTP status attached, never decoded as success payloads.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library. The default [NoopLogger] discards
// all log output. The client logs only request method, URL, and response
// status; the API token never reaches the logger.
package qstash
