// Package files groups the packages that move bundle data from disk to the platform:
//   - filesystem: provider abstraction over embedded, OS and in-memory trees
//   - scanner: lists and reads the JSON files of a rule's source directory
//   - loader: sends one file to its endpoint with the PUT/POST upsert
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/tenantload/internal/files/filesystem"
//	    "github.com/vvka-141/tenantload/internal/files/loader"
//	    "github.com/vvka-141/tenantload/internal/files/scanner"
//	)
//
//	s := scanner.NewScanner(filesystem.NewOSFileSystem("./tenant-data"))
//	resources, err := s.ListResources("ref-data/groups")
//
//	u := loader.NewHTTPUploader(loader.DefaultClientFactory(), logger)
//	err = u.Upload(ctx, req)
package files
