package tenantload

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Strategy selects how a rule derives the identifier of each file it loads.
type Strategy int

const (
	StrategyContent  Strategy = iota // Id in JSON content, PUT then POST
	StrategyBasename                 // Id is the file basename, PUT then POST
	StrategyRawPut                   // PUT to the endpoint, no id
	StrategyRawPost                  // POST to the endpoint, no id
)

// String returns the manifest spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyContent:
		return "content"
	case StrategyBasename:
		return "basename"
	case StrategyRawPut:
		return "raw-put"
	case StrategyRawPost:
		return "raw-post"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// IsValid returns true if the Strategy is a valid, defined value.
func (s Strategy) IsValid() bool {
	return s >= StrategyContent && s <= StrategyRawPost
}

// IsRaw reports whether the strategy sends requests without an identifier.
// Raw strategies never fall back to POST.
func (s Strategy) IsRaw() bool {
	return s == StrategyRawPut || s == StrategyRawPost
}

// Method returns the HTTP verb of the first request issued for a file.
func (s Strategy) Method() string {
	if s == StrategyRawPost {
		return MethodPost
	}
	return MethodPut
}

// ParseStrategy converts a manifest strategy name into a Strategy.
// The empty string selects StrategyContent.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "content":
		return StrategyContent, nil
	case "basename", "filename":
		return StrategyBasename, nil
	case "raw-put", "raw":
		return StrategyRawPut, nil
	case "raw-post", "post-only":
		return StrategyRawPost, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (expected content, basename, raw-put or raw-post): %w", name, ErrInvalidConfig)
	}
}

// ContentFilter rewrites file content before it is sent.
type ContentFilter func(content string) string

// LoadRule describes one directory of JSON files and the endpoint they are loaded to.
// A rule is treated as immutable once it has been added to a loader.
type LoadRule struct {
	// Key is the tenant flag that triggers the rule ("loadReference", "loadSample").
	Key string

	// Lead is the leading directory shared by related rules ("ref-data").
	Lead string

	// FilePath is the directory below Lead holding the files.
	FilePath string

	// URIPath is the endpoint path relative to the endpoint base, without leading slash.
	// A "%d" placeholder is replaced by the identifier instead of appending it.
	URIPath string

	Strategy Strategy

	// IDProperty is the JSON field holding the identifier for StrategyContent.
	IDProperty string

	// Filter is applied to the raw file content before identifier resolution.
	Filter ContentFilter

	// AcceptStatus lists status codes treated as success beyond 200, 201 and 204.
	AcceptStatus []int
}

// SourceDir returns the resource directory of the rule: Lead joined with FilePath.
func (r LoadRule) SourceDir() string {
	if r.FilePath == "" {
		return r.Lead
	}
	if r.Lead == "" {
		return r.FilePath
	}
	return path.Join(r.Lead, r.FilePath)
}

// Accepts reports whether a response status code counts as a successful load.
func (r LoadRule) Accepts(status int) bool {
	switch status {
	case 200, 201, 204:
		return true
	}
	for _, code := range r.AcceptStatus {
		if code == status {
			return true
		}
	}
	return false
}

// IDField returns the identifier property, defaulting to "id".
func (r LoadRule) IDField() string {
	if r.IDProperty == "" {
		return DefaultIDProperty
	}
	return r.IDProperty
}

// Clone returns a copy of the rule that shares no mutable state with r.
func (r LoadRule) Clone() LoadRule {
	c := r
	if r.AcceptStatus != nil {
		c.AcceptStatus = append([]int(nil), r.AcceptStatus...)
	}
	return c
}

// Validate checks that the rule is complete.
// It returns a multi-error if multiple validation failures occur.
func (r LoadRule) Validate() error {
	var errs []error

	if r.Key == "" {
		errs = append(errs, fmt.Errorf("rule key is required: %w", ErrInvalidConfig))
	}
	if r.URIPath == "" {
		errs = append(errs, fmt.Errorf("rule %q: uri path is required: %w", r.Key, ErrInvalidConfig))
	}
	if strings.HasPrefix(r.URIPath, "/") {
		errs = append(errs, fmt.Errorf("rule %q: uri path %q must not start with '/': %w", r.Key, r.URIPath, ErrInvalidConfig))
	}
	if r.SourceDir() == "" {
		errs = append(errs, fmt.Errorf("rule %q: source directory is required: %w", r.Key, ErrInvalidConfig))
	}
	if !r.Strategy.IsValid() {
		errs = append(errs, fmt.Errorf("rule %q: invalid strategy %s: %w", r.Key, r.Strategy, ErrInvalidConfig))
	}
	for _, code := range r.AcceptStatus {
		if code < 100 || code > 599 {
			errs = append(errs, fmt.Errorf("rule %q: accept status %d is not an HTTP status: %w", r.Key, code, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Flags holds the tenant init parameters that select which rules fire.
type Flags map[string]string

// Enabled reports whether key is present and set to "true".
func (f Flags) Enabled(key string) bool {
	return f[key] == "true"
}

// FlagsFromBools converts boolean flags into Flags.
func FlagsFromBools(m map[string]bool) Flags {
	f := make(Flags, len(m))
	for k, v := range m {
		if v {
			f[k] = "true"
		} else {
			f[k] = "false"
		}
	}
	return f
}

// Headers are the request headers supplied by the caller.
type Headers map[string]string

// Endpoint returns the endpoint base from X-Okapi-Url-to, falling back to X-Okapi-Url.
func (h Headers) Endpoint() (string, bool) {
	if v, ok := h.lookup(HeaderURLTo); ok && v != "" {
		return v, true
	}
	if v, ok := h.lookup(HeaderURL); ok && v != "" {
		return v, true
	}
	return "", false
}

// Forwarded returns the headers sent with every request: keys starting with "X-" or "x-".
func (h Headers) Forwarded() map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if strings.HasPrefix(k, "X-") || strings.HasPrefix(k, "x-") {
			out[k] = v
		}
	}
	return out
}

// Has reports whether a header is present, ignoring case.
func (h Headers) Has(name string) bool {
	_, ok := h.lookup(name)
	return ok
}

// Set replaces any header matching name case-insensitively.
func (h Headers) Set(name, value string) {
	for k := range h {
		if strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
	h[name] = value
}

func (h Headers) lookup(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// LoadRequest carries the per-call inputs of a load.
type LoadRequest struct {
	Flags   Flags
	Headers Headers

	// EndpointURL overrides the endpoint base taken from the headers.
	EndpointURL string
}

// ResolveEndpoint returns the endpoint base for the request without a trailing slash.
func (r LoadRequest) ResolveEndpoint() (string, error) {
	endpoint := r.EndpointURL
	if endpoint == "" {
		var ok bool
		endpoint, ok = r.Headers.Endpoint()
		if !ok {
			return "", fmt.Errorf("no %s header: %w", HeaderURL, ErrNoEndpoint)
		}
	}
	return strings.TrimRight(endpoint, "/"), nil
}

// Resource is a file discovered in a rule's source directory.
type Resource struct {
	// Path is the location of the file as seen by the resource provider.
	Path string

	// Name is the file name without directory.
	Name string
}

// RuleResult reports what one fired rule loaded.
type RuleResult struct {
	Key       string
	URIPath   string
	SourceDir string
	Files     int
}

// Outcome is the result of a load. Loaded counts the files of every rule
// that completed, including when a later rule failed.
type Outcome struct {
	Loaded int
	Rules  []RuleResult
}

// PlannedUpload describes the first request a load would issue for a file.
type PlannedUpload struct {
	Key      string
	Resource Resource
	ID       string
	Method   string
	URL      string
}
