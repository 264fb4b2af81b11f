package http

import (
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps a RoundTripper. Wrappers apply in registration order,
// so the last one registered sees the request first.
type TransportFunc func(http.RoundTripper) http.RoundTripper

type HttpOpts func(*clientSettings)

type clientSettings struct {
	dialTimeout           time.Duration
	keepAlive             time.Duration
	requestTimeout        time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	wrappers              []TransportFunc
}

func defaultSettings() clientSettings {
	return clientSettings{
		dialTimeout:           10 * time.Second,
		keepAlive:             90 * time.Second,
		requestTimeout:        30 * time.Second,
		responseHeaderTimeout: 15 * time.Second,
		idleConnTimeout:       90 * time.Second,
	}
}

// positive keeps the default when a config value was left at zero.
func positive(d time.Duration, set func(time.Duration)) {
	if d > 0 {
		set(d)
	}
}

func WithConnClientTimeout(d time.Duration) HttpOpts {
	return func(s *clientSettings) { positive(d, func(v time.Duration) { s.dialTimeout = v }) }
}

func WithClientKeepAlive(d time.Duration) HttpOpts {
	return func(s *clientSettings) { positive(d, func(v time.Duration) { s.keepAlive = v }) }
}

func WithRequestTimeout(d time.Duration) HttpOpts {
	return func(s *clientSettings) { positive(d, func(v time.Duration) { s.requestTimeout = v }) }
}

func WithResponseHeaderTimeout(d time.Duration) HttpOpts {
	return func(s *clientSettings) { positive(d, func(v time.Duration) { s.responseHeaderTimeout = v }) }
}

func WithIdleConnTimeout(d time.Duration) HttpOpts {
	return func(s *clientSettings) { positive(d, func(v time.Duration) { s.idleConnTimeout = v }) }
}

func WithTransport(wrap TransportFunc) HttpOpts {
	return func(s *clientSettings) { s.wrappers = append(s.wrappers, wrap) }
}

// WithAuthToken sends the token as a bearer credential unless the request
// already carries an Authorization header. An empty token adds nothing.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*clientSettings) {}
	}
	return WithTransport(func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "" {
				return next.RoundTrip(req)
			}
			clone := req.Clone(req.Context())
			clone.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(clone)
		})
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func newClient(opts ...HttpOpts) *http.Client {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	dialer := &net.Dialer{Timeout: s.dialTimeout, KeepAlive: s.keepAlive}

	// One upstream per connector, so a small idle pool is enough.
	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: s.responseHeaderTimeout,
		IdleConnTimeout:       s.idleConnTimeout,
	}
	for _, wrap := range s.wrappers {
		rt = wrap(rt)
	}

	return &http.Client{Timeout: s.requestTimeout, Transport: rt}
}
