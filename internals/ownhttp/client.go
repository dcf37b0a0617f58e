package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request
var UserAgent = "assetguard/dev"

// Options configure the shared http client
type Options struct {
	// RequestsPerSecond limits outgoing requests. 0 disables throttling
	RequestsPerSecond float64
	// Burst is the limiter burst size (defaults to 1)
	Burst int
}

var defaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConnsPerHost:   32,
	TLSHandshakeTimeout:   20 * time.Second,
	ResponseHeaderTimeout: 60 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a client that sets the User-Agent and optionally throttles requests
func NewWithOptions(opts Options) *http.Client {
	var t http.RoundTripper = defaultTransport
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		t = NewThrottleTransport(t, rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst))
	}
	return &http.Client{Transport: NewAddHeaderTransport(t)}
}

// AddHeaderTransport sets default headers on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return adt.T.RoundTrip(req)
}

func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}
