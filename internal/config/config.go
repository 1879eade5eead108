package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/pkg/tenantload"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the manifest does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound)
// or errors.Is(err, tenantload.ErrManifestNotFound).
var ErrConfigNotFound = fmt.Errorf("config file not found: %w", tenantload.ErrManifestNotFound)

type RuleConfig struct {
	Key          string            `yaml:"key" validate:"required"`
	Lead         string            `yaml:"lead,omitempty"`
	Path         string            `yaml:"path,omitempty"`
	URI          string            `yaml:"uri" validate:"required"`
	Strategy     string            `yaml:"strategy,omitempty" validate:"omitempty,oneof=content basename filename raw-put raw raw-post post-only"`
	IDProperty   string            `yaml:"id_property,omitempty"`
	AcceptStatus []int             `yaml:"accept_status,omitempty" validate:"dive,min=100,max=599"`
	Substitute   map[string]string `yaml:"substitute,omitempty" validate:"dive,keys,required,endkeys"`
}

type Manifest struct {
	Endpoint    string            `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	Timeout     string            `yaml:"timeout,omitempty"`
	Concurrency int               `yaml:"concurrency,omitempty" validate:"min=0"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	Rules       []RuleConfig      `yaml:"rules" validate:"required,min=1,dive"`
}

const ConfigFileName = tenantload.ManifestFileName

// Load reads and validates the manifest at the root of a bundle directory.
func Load(sourcePath string) (*Manifest, error) {
	return LoadFrom(filesystem.NewOSFileSystem(sourcePath))
}

// LoadFrom reads and validates the manifest at the root of a provider,
// which may be an embedded bundle.
func LoadFrom(provider filesystem.FileSystemProvider) (*Manifest, error) {
	data, err := provider.ReadFile(ConfigFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", ConfigFileName, err, tenantload.ErrInvalidConfig)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the manifest structure and its timeout.
// All problems are reported together.
func (m *Manifest) Validate() error {
	var errs []error

	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%v: %w", err, tenantload.ErrInvalidConfig)
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: %s: %w", fieldName(fe), describe(fe), tenantload.ErrInvalidConfig))
		}
	}

	if _, err := m.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%q must be one of %s", fe.Value(), fe.Param())
	case "url":
		return fmt.Sprintf("%q is not a URL", fe.Value())
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// TimeoutDuration returns the configured timeout, or DefaultTimeout when unset.
func (m *Manifest) TimeoutDuration() (time.Duration, error) {
	if m.Timeout == "" {
		return tenantload.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: invalid duration %q: %w", m.Timeout, tenantload.ErrInvalidConfig)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout: must be positive, got %s: %w", m.Timeout, tenantload.ErrInvalidConfig)
	}
	return d, nil
}

// LoadRules converts the manifest entries into validated rules, in order.
func (m *Manifest) LoadRules() ([]tenantload.LoadRule, error) {
	rules := make([]tenantload.LoadRule, 0, len(m.Rules))
	for i, rc := range m.Rules {
		rule, err := rc.toRule()
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (rc RuleConfig) toRule() (tenantload.LoadRule, error) {
	strategy, err := tenantload.ParseStrategy(rc.Strategy)
	if err != nil {
		return tenantload.LoadRule{}, err
	}

	filePath := rc.Path
	if filePath == "" {
		filePath = rc.URI
	}

	rule := tenantload.LoadRule{
		Key:          rc.Key,
		Lead:         rc.Lead,
		FilePath:     filePath,
		URIPath:      rc.URI,
		Strategy:     strategy,
		IDProperty:   rc.IDProperty,
		AcceptStatus: append([]int(nil), rc.AcceptStatus...),
	}
	if len(rc.Substitute) > 0 {
		rule.Filter = substituteFilter(rc.Substitute)
	}
	return rule, nil
}

// substituteFilter replaces every key of subs by its value. Longer keys are
// tried first so that overlapping placeholders resolve predictably.
func substituteFilter(subs map[string]string) tenantload.ContentFilter {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, subs[k])
	}
	replacer := strings.NewReplacer(pairs...)
	return replacer.Replace
}
