// Package loader sends tenant resources to a remote API.
//
// The loader package is responsible for:
//   - Building the target URL from the endpoint and the resource identifier
//   - Issuing the first request (PUT, or POST for raw-post rules)
//   - Falling back to a single POST on 400 or 404 for identified resources
//   - Classifying responses as accepted, unexpected status or transport failure
//
// One HTTPUploader is shared by all goroutines of a load; the underlying
// http.Client owns the connection pool.
package loader
