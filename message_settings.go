package qstash

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

// Reserved header names understood by the QStash API. [MessageSettings]
// writes its directives under these names.
const (
	HeaderDelay           = "Upstash-Delay"
	HeaderRetries         = "Upstash-Retries"
	HeaderCron            = "Upstash-Cron"
	HeaderCallback        = "Upstash-Callback"
	HeaderDeduplicationID = "Upstash-Deduplication-Id"
)

// MessageSettings accumulates optional per-publish delivery directives and
// materializes them into request headers. Construct with [NewMessageSettings],
// chain the setters, and pass the result to [Client.Publish]:
//
//	settings := qstash.NewMessageSettings().Delay("10s").Retries(3)
//
// Calling the same setter twice keeps the last value.
type MessageSettings struct {
	delay      string
	retries    int
	retriesSet bool
	cron       string
	callback   string
	dedupID    string
	custom     map[string]string
}

func NewMessageSettings() *MessageSettings {
	return &MessageSettings{}
}

// Delay delays delivery by the given amount of time relative to the moment
// the message was published.
//
// The format is (number)(unit), e.g. "10s", "1m", "30m", "2h", "7d".
func (s *MessageSettings) Delay(delay string) *MessageSettings {
	s.delay = delay
	return s
}

// Retries sets the number of delivery retries the server will perform.
// The maximum depends on the account plan and is enforced server-side only.
// Negative values are ignored and the previous value is kept.
func (s *MessageSettings) Retries(retries int) *MessageSettings {
	if retries >= 0 {
		s.retries = retries
		s.retriesSet = true
	}
	return s
}

// Cron turns the publish into a recurring schedule. The expression is
// evaluated by the server in UTC.
func (s *MessageSettings) Cron(expression string) *MessageSettings {
	s.cron = expression
	return s
}

// CallbackURL registers a URL the server calls with the response once the
// delivered request finishes, so the caller does not have to wait for
// long-running endpoints.
func (s *MessageSettings) CallbackURL(callbackURL string) *MessageSettings {
	s.callback = callbackURL
	return s
}

// DeduplicationID sets the idempotency key for the publish. A duplicate
// publish sharing the same id within the server's retention window is
// accepted but not enqueued, so publishing can be safely repeated after a
// lost acknowledgement.
func (s *MessageSettings) DeduplicationID(id string) *MessageSettings {
	s.dedupID = id
	return s
}

// CustomHeaders forwards additional HTTP headers with the message. Custom
// entries are applied after the named directives, so a custom header sharing
// a reserved name overrides the directive.
func (s *MessageSettings) CustomHeaders(headers map[string]string) *MessageSettings {
	s.custom = headers
	return s
}

// Headers materializes the populated directives into a header collection:
// one header per populated field under its reserved name, then the custom
// headers layered in last. Returns an [ErrorKindInvalidHeader] error if any
// name or value is not legal in an HTTP header.
func (s *MessageSettings) Headers() (http.Header, error) {
	headers := http.Header{}
	if s == nil {
		return headers, nil
	}

	directives := []struct {
		name  string
		value string
		set   bool
	}{
		{HeaderDelay, s.delay, s.delay != ""},
		{HeaderRetries, strconv.Itoa(s.retries), s.retriesSet},
		{HeaderCron, s.cron, s.cron != ""},
		{HeaderCallback, s.callback, s.callback != ""},
		{HeaderDeduplicationID, s.dedupID, s.dedupID != ""},
	}

	for _, d := range directives {
		if !d.set {
			continue
		}
		if !httpguts.ValidHeaderFieldValue(d.value) {
			return nil, headerErr(fmt.Sprintf("%s value %q is not a valid header value", d.name, d.value))
		}
		headers.Set(d.name, d.value)
	}

	for name, value := range s.custom {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, headerErr(fmt.Sprintf("custom header name %q is not a valid header name", name))
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return nil, headerErr(fmt.Sprintf("custom header %s value %q is not a valid header value", name, value))
		}
		headers.Set(name, value)
	}

	return headers, nil
}

// NewDeduplicationID generates a random idempotency key suitable for
// [MessageSettings.DeduplicationID].
func NewDeduplicationID() string {
	return uuid.NewString()
}
