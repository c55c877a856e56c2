package swqos

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Connection tuning for hot-path submissions: long-lived warm pools,
// short overall deadlines.
const (
	httpRequestTimeout   = 3000 * time.Millisecond
	httpConnectTimeout   = 2000 * time.Millisecond
	httpIdleConnTimeout  = 300 * time.Second
	httpMaxIdlePerHost   = 4
	httpKeepAlivePeriod  = 60 * time.Second
	httpTLSHandshakeWait = 2000 * time.Millisecond
)

var (
	sharedClientOnce sync.Once
	sharedClient     *http.Client
)

// sharedSubmitClient returns the process-wide submit HTTP client. Sharing
// one pool across vendors keeps connections warm between trades.
func sharedSubmitClient() *http.Client {
	sharedClientOnce.Do(func() {
		sharedClient = newSubmitHTTPClient()
	})
	return sharedClient
}

// newSubmitHTTPClient builds an HTTP client tuned for hot-path submission.
func newSubmitHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   httpConnectTimeout,
		KeepAlive: httpKeepAlivePeriod,
	}
	return &http.Client{
		Timeout: httpRequestTimeout,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			IdleConnTimeout:     httpIdleConnTimeout,
			MaxIdleConnsPerHost: httpMaxIdlePerHost,
			MaxIdleConns:        httpMaxIdlePerHost * 8,
			TLSHandshakeTimeout: httpTLSHandshakeWait,
			ForceAttemptHTTP2:   true,
		},
	}
}
