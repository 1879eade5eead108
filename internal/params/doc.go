// Package params turns command-line and file inputs into tenant flags and headers.
//
// Flags select which load rules fire. They come from three sources, merged
// with Merge in increasing precedence:
//   - a TenantAttributes document (ParseTenantAttributes)
//   - .env flag files (ParseEnvFile), later files win
//   - --flag key=value arguments (ParseKeyValuePairs)
//
// Headers given with --header Name=value use ParseKeyValuePairs as well.
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package params
