package params

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TenantAttributes is the body the platform posts when it enables a module
// for a tenant. Its parameters carry the load flags.
type TenantAttributes struct {
	ModuleFrom string      `json:"module_from,omitempty"`
	ModuleTo   string      `json:"module_to,omitempty"`
	Purge      bool        `json:"purge,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Parameter is a single key/value entry of TenantAttributes.
type Parameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseTenantAttributes decodes a TenantAttributes document and returns its
// parameters as flags. A key listed more than once is enabled when any of its
// entries is "true"; otherwise the last entry wins.
//
// Example input:
//
//	{"module_to": "mod-users-19.0.0", "parameters": [{"key": "loadSample", "value": "true"}]}
func ParseTenantAttributes(content []byte) (map[string]string, error) {
	var ta TenantAttributes
	if err := json.Unmarshal(content, &ta); err != nil {
		return nil, fmt.Errorf("invalid tenant attributes: %w", err)
	}

	result := make(map[string]string, len(ta.Parameters))
	for i, p := range ta.Parameters {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil, fmt.Errorf("invalid tenant attributes: parameters[%d] has empty key", i)
		}
		if result[key] == "true" {
			continue
		}
		result[key] = p.Value
	}
	return result, nil
}
