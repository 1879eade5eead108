// Package identity derives the identifier a resource is stored under.
//
// The identifier decides the URL of the first request of an upsert:
//
//   - StrategyContent: a string field of the JSON document, query-escaped
//   - StrategyBasename: the file name without directory and extension, path-escaped
//   - StrategyRawPut, StrategyRawPost: no identifier
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// Resolve returns the identifier of res for the rule's strategy. content is
// the file content after the rule's filter has been applied. Raw strategies
// return an empty identifier.
func Resolve(rule tenantload.LoadRule, res tenantload.Resource, content []byte) (string, error) {
	switch rule.Strategy {
	case tenantload.StrategyContent:
		return FromContent(content, rule.IDField(), res.Path)
	case tenantload.StrategyBasename:
		return FromBasename(res.Path)
	case tenantload.StrategyRawPut, tenantload.StrategyRawPost:
		return "", nil
	default:
		return "", fmt.Errorf("unknown strategy %s for url=%s: %w", rule.Strategy, res.Path, tenantload.ErrInvalidConfig)
	}
}

// FromContent extracts the string field from a JSON object and escapes it
// for use as a path segment. source names the resource in error messages.
// The whole document must be a well-formed JSON object.
func FromContent(content []byte, field, source string) (string, error) {
	if err := checkObject(content); err != nil {
		return "", fmt.Errorf("%w: cannot parse JSON for url=%s: %v", tenantload.ErrInvalidIdentifier, source, err)
	}

	value, dataType, _, err := jsonparser.Get(content, field)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return "", fmt.Errorf("%w %s for url=%s", tenantload.ErrMissingProperty, field, source)
		}
		return "", fmt.Errorf("%w: cannot parse JSON for url=%s: %v", tenantload.ErrInvalidIdentifier, source, err)
	}

	switch dataType {
	case jsonparser.NotExist, jsonparser.Null:
		return "", fmt.Errorf("%w %s for url=%s", tenantload.ErrMissingProperty, field, source)
	case jsonparser.String:
	default:
		return "", fmt.Errorf("%w: property %s for url=%s is a %s, not a string", tenantload.ErrInvalidIdentifier, field, source, dataType)
	}

	id, err := jsonparser.ParseString(value)
	if err != nil {
		return "", fmt.Errorf("%w: encoding of %s failed: %v", tenantload.ErrInvalidIdentifier, string(value), err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: property %s for url=%s is empty", tenantload.ErrInvalidIdentifier, field, source)
	}

	return url.QueryEscape(id), nil
}

// checkObject rejects documents that are truncated, carry trailing data or
// are not an object at the top level. jsonparser stops scanning at the
// requested key, so it cannot catch these on its own.
func checkObject(content []byte) error {
	if !json.Valid(content) {
		return errors.New("malformed JSON document")
	}
	if trimmed := bytes.TrimSpace(content); len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("document is not a JSON object")
	}
	return nil
}

// FromBasename strips the directory and the last extension from a resource
// path: "ref-data/users/a1b2.json" yields "a1b2".
func FromBasename(resourcePath string) (string, error) {
	base := path.Base(strings.ReplaceAll(resourcePath, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: no basename for %s", tenantload.ErrInvalidIdentifier, resourcePath)
	}

	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}

	return url.PathEscape(base), nil
}
