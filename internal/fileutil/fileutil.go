// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrDirNameEmpty         = errors.New("directory name cannot be empty")
	ErrDirNamePathTraversal = errors.New("directory name contains path separator or null byte")
)

// EnsureDir creates a directory and any missing parents. It is idempotent:
// an already existing directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// ValidateDirName checks that a configured directory name is a bare name
// safe to join under the book source root.
func ValidateDirName(name string) error {
	if name == "" {
		return ErrDirNameEmpty
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrDirNamePathTraversal, name)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a
// bare name. A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
