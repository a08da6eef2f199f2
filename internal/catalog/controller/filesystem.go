package controller

import "os"

// FileSystem answers whether a file exists
type FileSystem interface {
	Exists(path string) bool
}

// OSFileSystem probes the local disk
type OSFileSystem struct{}

// Exists reports whether path names a regular file. Any stat failure,
// including permission errors, counts as missing.
func (OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
