// Package paths normalizes file paths relative to a project root.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a project-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to the project root
// - Converts backslashes to forward slashes
func Canonicalize(absolutePath string, projectRoot string) (string, error) {
	// Resolve symlinks
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(projectRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = projectRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	// Convert to forward slashes (platform independent)
	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot checks if a path is within the project root
func IsWithinRoot(path string, projectRoot string) bool {
	canonical, err := Canonicalize(path, projectRoot)
	if err != nil {
		return false
	}

	// Path is outside the project if it starts with ..
	return !strings.HasPrefix(canonical, "..")
}

// Normalize normalizes a path by converting backslashes to forward slashes
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// JoinProject joins a project root with a canonical path
func JoinProject(projectRoot string, canonicalPath string) string {
	normalizedPath := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}

// Absolute resolves path against base when it is not already absolute.
func Absolute(path string, base string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
