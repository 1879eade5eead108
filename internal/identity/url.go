package identity

import (
	"strings"

	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// TargetURL builds the URL of the first request for id.
// Every "%d" in endpoint is replaced by id; without a placeholder id is
// appended as the last path segment. An empty id leaves endpoint unchanged.
func TargetURL(endpoint, id string) string {
	if id == "" {
		return endpoint
	}
	if strings.Contains(endpoint, tenantload.IDPlaceholder) {
		return strings.ReplaceAll(endpoint, tenantload.IDPlaceholder, id)
	}
	return endpoint + "/" + id
}

// CreateURL returns the collection URL the fallback POST is sent to.
// "/%d" segments are dropped, then any placeholder left inside a segment.
func CreateURL(endpoint string) string {
	u := strings.ReplaceAll(endpoint, "/"+tenantload.IDPlaceholder, "")
	u = strings.ReplaceAll(u, tenantload.IDPlaceholder, "")
	return u
}

// EndpointFor joins the endpoint base with a rule's URI path.
func EndpointFor(base string, rule tenantload.LoadRule) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rule.URIPath, "/")
}
