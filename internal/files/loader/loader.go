package loader

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/vvka-141/tenantload/internal/identity"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// maxBodyLog bounds the response body echoed to the log for a rejected request.
const maxBodyLog = 512

// HTTPUploader implements tenantload.Uploader over net/http.
type HTTPUploader struct {
	client *http.Client
	logger tenantload.Logger
}

// NewHTTPUploader creates an uploader sending requests with client.
// A nil client gets an instrumented client without timeout.
func NewHTTPUploader(client *http.Client, logger tenantload.Logger) *HTTPUploader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if client == nil {
		client = DefaultClientFactory()
	}
	return &HTTPUploader{client: client, logger: logger}
}

// Upload sends req using the upsert policy of its rule.
//
// The first request goes to the identified URL. For content and basename
// rules a 400 or 404 answer is followed by exactly one POST to the create
// URL. Raw rules never fall back.
func (u *HTTPUploader) Upload(ctx context.Context, req tenantload.UploadRequest) error {
	method := req.Rule.Strategy.Method()
	target := identity.TargetURL(req.Endpoint, req.ID)

	status, err := u.send(ctx, method, target, req)
	if err != nil {
		return err
	}
	if req.Rule.Accepts(status) {
		return nil
	}

	if req.Rule.Strategy.IsRaw() || (status != http.StatusNotFound && status != http.StatusBadRequest) {
		return &tenantload.StatusError{Method: method, URL: target, StatusCode: status}
	}

	createURL := identity.CreateURL(req.Endpoint)
	u.logger.Verbose("%s %s returned status %d, creating with POST %s", method, target, status, createURL)

	status, err = u.send(ctx, tenantload.MethodPost, createURL, req)
	if err != nil {
		return err
	}
	if req.Rule.Accepts(status) {
		return nil
	}
	return &tenantload.StatusError{Method: tenantload.MethodPost, URL: createURL, StatusCode: status}
}

// send issues one request and returns its status code. The response body is
// drained so the connection returns to the pool.
func (u *HTTPUploader) send(ctx context.Context, method, url string, req tenantload.UploadRequest) (int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(req.Content))
	if err != nil {
		return 0, &tenantload.TransportError{Method: method, URL: url, Err: err}
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", tenantload.ContentTypeJSON)
	httpReq.Header.Set("Accept", tenantload.AcceptHeader)

	resp, err := u.client.Do(httpReq)
	if err != nil {
		u.logger.Error("%s %s: %v", method, url, err)
		return 0, &tenantload.TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLog))
	_, _ = io.Copy(io.Discard, resp.Body)

	u.logger.Verbose("%s %s -> %d", method, url, resp.StatusCode)

	if !req.Rule.Accepts(resp.StatusCode) && !fallsBack(req.Rule, resp.StatusCode, method) {
		u.logger.Error("%s %s returned status %d: %s", method, url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp.StatusCode, nil
}

// fallsBack reports whether a status will be retried as a create, which makes
// it an expected answer rather than an error worth logging.
func fallsBack(rule tenantload.LoadRule, status int, method string) bool {
	if rule.Strategy.IsRaw() || method != rule.Strategy.Method() {
		return false
	}
	return status == http.StatusNotFound || status == http.StatusBadRequest
}

var _ tenantload.Uploader = (*HTTPUploader)(nil)
