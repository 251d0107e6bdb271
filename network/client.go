// Package network provides pre-configured HTTP clients for requests issued outside of the automated browser.
package network

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/echo360-dl/echo360/key"
	"github.com/spf13/viper"
)

// Client is the shared HTTP client for small API requests such as course metadata.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// StreamClient carries no overall timeout; video transfers run for as long as they need
// and are bounded by their context instead.
var StreamClient = &http.Client{
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// API returns the client used for metadata requests, honouring the TLS fingerprint setting.
func API() *http.Client {
	if viper.GetBool(key.NetworkTLSFingerprint) {
		return fingerprintClient(time.Minute)
	}
	return Client
}

// Stream returns the client used for video transfers, honouring the TLS fingerprint setting.
func Stream() *http.Client {
	if viper.GetBool(key.NetworkTLSFingerprint) {
		return fingerprintClient(0)
	}
	return StreamClient
}

// NewRequest builds a GET request that looks like it came from the automated browser:
// same user agent, same session cookies.
func NewRequest(ctx context.Context, url string, cookies []*http.Cookie) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", viper.GetString(key.BrowserUserAgent))
	for _, c := range cookies {
		if cookieMatchesHost(c, req.URL.Hostname()) {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}

	return req, nil
}

// cookieMatchesHost applies the cookie domain-match rule; host-less cookies always match.
func cookieMatchesHost(c *http.Cookie, host string) bool {
	domain := strings.ToLower(strings.TrimPrefix(c.Domain, "."))
	if domain == "" {
		return true
	}

	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
