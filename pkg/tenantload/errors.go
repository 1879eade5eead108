package tenantload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Perform(ctx, req)
//	if errors.Is(err, tenantload.ErrMissingProperty) {
//	    // a data file lacks its identifier
//	}
var (
	// ErrInvalidConfig indicates the provided rules, manifest or parameters are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrManifestNotFound indicates tenantload.yaml was not found in the bundle.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrNoEndpoint indicates neither an endpoint URL nor an endpoint header was supplied.
	ErrNoEndpoint = errors.New("no endpoint")

	// ErrMissingProperty indicates the identifier field is absent from a JSON resource.
	ErrMissingProperty = errors.New("missing property")

	// ErrInvalidIdentifier indicates an identifier could not be derived or encoded.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrResourceRead indicates a resource could not be listed or read.
	ErrResourceRead = errors.New("resource read failed")

	// ErrUnexpectedStatus indicates the endpoint answered with a status that is not accepted.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrTransport indicates the request could not be completed.
	ErrTransport = errors.New("transport failure")
)

// StatusError reports a response whose status code is not accepted by the rule.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// TransportError reports a request that failed before a response arrived.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap exposes both ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrManifestNotFound):
		return ExitManifestMissing
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrNoEndpoint):
		return ExitConfigError
	case errors.Is(err, ErrTransport):
		return ExitConnectionError
	case errors.Is(err, ErrUnexpectedStatus),
		errors.Is(err, ErrMissingProperty),
		errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrResourceRead):
		return ExitLoadFailed
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "required flag", "invalid argument", "missing required argument"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
