package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/vvka-141/tenantload/internal/files/loader"
	"github.com/vvka-141/tenantload/internal/identity"
	"github.com/vvka-141/tenantload/pkg/tenantload"
	"golang.org/x/sync/errgroup"
)

// UploaderFactory binds an Uploader to the HTTP client of one load.
type UploaderFactory func(client *http.Client, logger tenantload.Logger) tenantload.Uploader

// Option configures a LoadService.
type Option func(*LoadService)

// WithConcurrency bounds the number of files of one rule uploaded at the same
// time. Zero or a negative value leaves the fan-out unbounded.
func WithConcurrency(n int) Option {
	return func(s *LoadService) {
		s.concurrency = n
	}
}

// WithUploaderFactory replaces the HTTP uploader.
func WithUploaderFactory(f UploaderFactory) Option {
	return func(s *LoadService) {
		if f != nil {
			s.uploaderFactory = f
		}
	}
}

// LoadService implements the Loader interface.
// Thread-Safety: AddRule may be called concurrently with Perform; a Perform
// call works on the rules present when it started.
type LoadService struct {
	scanner         tenantload.ResourceScanner
	clientFactory   loader.ClientFactory
	uploaderFactory UploaderFactory
	logger          tenantload.Logger
	concurrency     int

	mu    sync.Mutex
	rules []tenantload.LoadRule
}

// NewLoadService creates a new LoadService with all dependencies injected.
// It panics on nil dependencies: these are wiring mistakes, not runtime conditions.
func NewLoadService(
	scanner tenantload.ResourceScanner,
	clientFactory loader.ClientFactory,
	logger tenantload.Logger,
	opts ...Option,
) *LoadService {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if clientFactory == nil {
		panic("clientFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &LoadService{
		scanner:       scanner,
		clientFactory: clientFactory,
		logger:        logger,
		uploaderFactory: func(client *http.Client, logger tenantload.Logger) tenantload.Uploader {
			return loader.NewHTTPUploader(client, logger)
		},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AddRule validates rule and appends a copy of it.
func (s *LoadService) AddRule(rule tenantload.LoadRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = append(s.rules, rule.Clone())
	s.mu.Unlock()
	return nil
}

// AddRules adds each rule in order, stopping at the first invalid one.
func (s *LoadService) AddRules(rules []tenantload.LoadRule) error {
	for i, rule := range rules {
		if err := s.AddRule(rule); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}

// Rules returns copies of the configured rules.
func (s *LoadService) Rules() []tenantload.LoadRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tenantload.LoadRule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Clone()
	}
	return out
}

// Perform runs the enabled rules in order.
//
// The files of a rule are uploaded concurrently and all of them finish before
// the next rule starts. The first failure cancels the rule's remaining uploads
// and skips every later rule. The returned Outcome counts the files of the
// rules that completed, also when an error is returned.
func (s *LoadService) Perform(ctx context.Context, req tenantload.LoadRequest) (tenantload.Outcome, error) {
	var outcome tenantload.Outcome

	endpoint, err := req.ResolveEndpoint()
	if err != nil {
		return outcome, err
	}

	client := s.clientFactory()
	defer client.CloseIdleConnections()
	uploader := s.uploaderFactory(client, s.logger)
	headers := req.Headers.Forwarded()

	for _, rule := range s.Rules() {
		if !req.Flags.Enabled(rule.Key) {
			s.logger.Verbose("Skipping %s: %s is not enabled", rule.URIPath, rule.Key)
			continue
		}
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		s.logger.Info("loadData uri=%s dir=%s", rule.URIPath, rule.SourceDir())

		n, err := s.runRule(ctx, uploader, endpoint, headers, rule)
		if err != nil {
			s.logger.Error("Load of %s failed: %v", rule.SourceDir(), err)
			return outcome, err
		}

		outcome.Loaded += n
		outcome.Rules = append(outcome.Rules, tenantload.RuleResult{
			Key:       rule.Key,
			URIPath:   rule.URIPath,
			SourceDir: rule.SourceDir(),
			Files:     n,
		})
	}

	s.logger.Info("Loaded %d files", outcome.Loaded)
	return outcome, nil
}

func (s *LoadService) runRule(
	ctx context.Context,
	uploader tenantload.Uploader,
	base string,
	headers map[string]string,
	rule tenantload.LoadRule,
) (int, error) {
	resources, err := s.scanner.ListResources(rule.SourceDir())
	if err != nil {
		return 0, err
	}
	if len(resources) == 0 {
		s.logger.Verbose("No files in %s", rule.SourceDir())
		return 0, nil
	}

	endpoint := identity.EndpointFor(base, rule)

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for _, res := range resources {
		g.Go(func() error {
			upload, err := s.prepare(rule, res)
			if err != nil {
				return err
			}
			upload.Endpoint = endpoint
			upload.Headers = headers

			s.logger.Verbose("Loading %s", res.Path)
			return uploader.Upload(gctx, upload)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(resources), nil
}

// prepare reads a resource, applies the rule's filter and resolves its identifier.
func (s *LoadService) prepare(rule tenantload.LoadRule, res tenantload.Resource) (tenantload.UploadRequest, error) {
	content, err := s.scanner.ReadResource(res)
	if err != nil {
		return tenantload.UploadRequest{}, err
	}
	if rule.Filter != nil {
		content = []byte(rule.Filter(string(content)))
	}

	id, err := identity.Resolve(rule, res, content)
	if err != nil {
		return tenantload.UploadRequest{}, err
	}

	return tenantload.UploadRequest{Rule: rule, ID: id, Content: content}, nil
}

// Plan resolves the first request of every file an equivalent Perform call
// would load. No request is sent.
func (s *LoadService) Plan(req tenantload.LoadRequest) ([]tenantload.PlannedUpload, error) {
	base, err := req.ResolveEndpoint()
	if err != nil {
		return nil, err
	}

	var planned []tenantload.PlannedUpload
	for _, rule := range s.Rules() {
		if !req.Flags.Enabled(rule.Key) {
			continue
		}

		resources, err := s.scanner.ListResources(rule.SourceDir())
		if err != nil {
			return nil, err
		}

		endpoint := identity.EndpointFor(base, rule)
		for _, res := range resources {
			upload, err := s.prepare(rule, res)
			if err != nil {
				return nil, err
			}
			planned = append(planned, tenantload.PlannedUpload{
				Key:      rule.Key,
				Resource: res,
				ID:       upload.ID,
				Method:   rule.Strategy.Method(),
				URL:      identity.TargetURL(endpoint, upload.ID),
			})
		}
	}
	return planned, nil
}

var _ tenantload.Loader = (*LoadService)(nil)
