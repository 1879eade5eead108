package tenantload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, tenantload.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), tenantload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), tenantload.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), tenantload.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <bundle_dir>"), tenantload.ExitUsageError},
		{"invalid config", fmt.Errorf("rule: %w", tenantload.ErrInvalidConfig), tenantload.ExitConfigError},
		{"no endpoint", tenantload.ErrNoEndpoint, tenantload.ExitConfigError},
		{"manifest missing", fmt.Errorf("load: %w", tenantload.ErrManifestNotFound), tenantload.ExitManifestMissing},
		{"transport", fmt.Errorf("PUT http://x: %w", tenantload.ErrTransport), tenantload.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), tenantload.ExitConnectionError},
		{"status error", &tenantload.StatusError{Method: "PUT", URL: "http://x/a", StatusCode: 500}, tenantload.ExitLoadFailed},
		{"missing property", fmt.Errorf("x: %w", tenantload.ErrMissingProperty), tenantload.ExitLoadFailed},
		{"resource read", fmt.Errorf("x: %w", tenantload.ErrResourceRead), tenantload.ExitLoadFailed},
		{"general error", errors.New("something went wrong"), tenantload.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tenantload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	err := fmt.Errorf("rule groups: %w", &tenantload.StatusError{Method: "POST", URL: "http://okapi/groups", StatusCode: 422})

	if got, want := err.Error(), "rule groups: POST http://okapi/groups returned status 422"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, tenantload.ErrUnexpectedStatus) {
		t.Error("expected errors.Is(err, ErrUnexpectedStatus)")
	}

	var statusErr *tenantload.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatal("expected errors.As to find *StatusError")
	}
	if statusErr.StatusCode != 422 {
		t.Errorf("StatusCode = %d, want 422", statusErr.StatusCode)
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	err := &tenantload.TransportError{Method: "PUT", URL: "http://okapi/groups/g1", Err: cause}

	if got, want := err.Error(), "PUT http://okapi/groups/g1: dial tcp 127.0.0.1:1: connect: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, tenantload.ErrTransport) {
		t.Error("expected errors.Is(err, ErrTransport)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if got := tenantload.ExitCodeForError(err); got != tenantload.ExitConnectionError {
		t.Errorf("ExitCodeForError = %d, want %d", got, tenantload.ExitConnectionError)
	}
}
