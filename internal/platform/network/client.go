// Package network provides the pre-configured HTTP client shared by provider clients.
package network

import (
	"net/http"
	"time"
)

// UserAgent is sent with every provider request; some origins reject Go's default.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// NewClient returns an HTTP client tuned for many concurrent requests against a
// small number of origins.
func NewClient() *http.Client {
	return &http.Client{
		Timeout:   time.Minute,
		Transport: newTransport(),
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
