// Package filesystem resolves resource locations for tenant data bundles.
//
// A bundle is a tree of directories holding JSON files. Rules name a directory
// inside the bundle and the loader lists the files directly under it.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories and reads files relative to a root
//   - Directory: Lists its direct entries in name order
//   - File: An individual entry with metadata and content
//
// Implementations:
//   - EmbedFileSystem: Resources compiled into the binary with embed.FS
//   - OSFileSystem: A bundle directory on disk
//   - MemoryFileSystem: In-memory implementation for testing
//
// All paths handed out by this package use forward slashes and are relative
// to the provider root. A directory that does not exist is reported with an
// error matching fs.ErrNotExist.
package filesystem
