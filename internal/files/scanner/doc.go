// Package scanner lists the data files of a rule and reads their content.
//
// The scanner package is responsible for:
//   - Listing the regular files directly under a source directory, in name order
//   - Skipping nested directories and dotfiles
//   - Treating a missing source directory as empty
//   - Wrapping read failures in tenantload.ErrResourceRead
//
// The scanner works through the filesystem.FileSystemProvider interface, so a
// bundle can come from disk, from an embedded tree or from memory in tests.
package scanner
