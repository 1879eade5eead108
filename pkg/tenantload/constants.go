package tenantload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid manifest, flags or headers
	ExitConnectionError = 11 // Transport failure talking to the endpoint
	ExitLoadFailed      = 13 // Unexpected status, bad identifier or unreadable resource
	ExitManifestMissing = 14 // tenantload.yaml not found
)

// Header names understood by the loader.
const (
	HeaderURLTo     = "X-Okapi-Url-to"
	HeaderURL       = "X-Okapi-Url"
	HeaderTenant    = "X-Okapi-Tenant"
	HeaderRequestID = "X-Okapi-Request-Id"
)

const (
	MethodPut  = "PUT"
	MethodPost = "POST"

	ContentTypeJSON = "application/json"
	AcceptHeader    = "application/json, text/plain"

	// IDPlaceholder in a URI path is replaced by the identifier.
	IDPlaceholder = "%d"

	// DefaultIDProperty is the JSON field read by the content strategy.
	DefaultIDProperty = "id"

	// DefaultTimeout bounds a whole load when no timeout is configured.
	DefaultTimeout = 3 * time.Minute

	// ManifestFileName is the rule manifest at the root of a bundle.
	ManifestFileName = "tenantload.yaml"

	// Conventional trigger keys of the platform.
	KeyLoadReference = "loadReference"
	KeyLoadSample    = "loadSample"
)
