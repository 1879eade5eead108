package tenantload

import "context"

// ResourceScanner discovers and reads the files of a rule's source directory.
// Implementations must be safe for concurrent use by multiple goroutines.
type ResourceScanner interface {
	// ListResources returns the files directly under dir, sorted by name.
	// A missing directory yields an empty list.
	ListResources(dir string) ([]Resource, error)

	// ReadResource returns the content of a listed resource.
	ReadResource(res Resource) ([]byte, error)
}

// UploadRequest is a single file ready to be sent to the endpoint.
type UploadRequest struct {
	Rule     LoadRule
	Endpoint string // endpoint base joined with the rule's URI path
	ID       string // empty for raw strategies
	Content  []byte
	Headers  map[string]string
}

// Uploader sends one resource to its endpoint using the upsert policy.
// Implementations must be safe for concurrent use by multiple goroutines.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) error
}

// Loader is the main interface for loading tenant data.
type Loader interface {
	// AddRule appends a rule. Rules run in the order they were added.
	AddRule(rule LoadRule) error

	// Perform runs every rule whose trigger key is enabled in req.Flags.
	Perform(ctx context.Context, req LoadRequest) (Outcome, error)

	// Plan resolves what Perform would send without issuing requests.
	Plan(req LoadRequest) ([]PlannedUpload, error)
}
