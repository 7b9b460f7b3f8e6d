package app

import (
	"net"
	"net/http"
	"time"
)

// newSharedHTTPClient returns the process-wide HTTP client used for
// page fetches. It is created once at startup so concurrent fetches
// share its connection pool. Per-fetch deadlines come from the
// pipeline's contexts; the client-level timeout is just a hang stop.
func newSharedHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   64,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}
