package loader

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ClientFactory creates the HTTP client used for one load.
type ClientFactory func() *http.Client

// NewClient returns a client with its own connection pool. The transport is
// instrumented with otelhttp; without a registered tracer provider the
// instrumentation is a no-op. A zero timeout means no per-request timeout.
func NewClient(timeout time.Duration) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{
		Transport: otelhttp.NewTransport(base),
		Timeout:   timeout,
	}
}

// DefaultClientFactory creates instrumented clients without a request timeout.
// The caller's context bounds the load instead.
func DefaultClientFactory() *http.Client {
	return NewClient(0)
}
