// Package project locates Java projects on disk: detection, source-root
// resolution, source discovery, entry-point lookup, and scaffolding of
// new type declarations.
package project

import (
	"os"
	"path/filepath"
	"strings"

	jreferrors "jref/internal/errors"
)

var buildMarkers = []string{"build.gradle", "build.gradle.kts", "pom.xml"}

// IsJavaProject reports whether root looks like a Java project: a Gradle
// or Maven build file, or a src/main/java tree.
func IsJavaProject(root string) bool {
	for _, marker := range buildMarkers {
		if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
			return true
		}
	}
	info, err := os.Stat(filepath.Join(root, "src", "main", "java"))
	return err == nil && info.IsDir()
}

// Require errors with NOT_A_PROJECT when root is not a Java project.
func Require(root string) error {
	if IsJavaProject(root) {
		return nil
	}
	return jreferrors.New(jreferrors.NotAProject, "no Java project at "+root)
}

// SourceRootMode selects which part of the source tree operations work on.
type SourceRootMode string

const (
	RootMain SourceRootMode = "main"
	RootTest SourceRootMode = "test"
	RootAll  SourceRootMode = "all"
)

// ParseSourceRootMode parses a mode name; empty means RootAll.
func ParseSourceRootMode(s string) (SourceRootMode, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return RootAll, nil
	case "main":
		return RootMain, nil
	case "test":
		return RootTest, nil
	}
	return "", jreferrors.New(jreferrors.InvalidArgument, "unknown source root "+s)
}

// SourceRoot resolves the directory discovery starts from: the first
// src/main (or src/test) directory under root, or root itself when the
// layout is absent or mode is RootAll.
func SourceRoot(root string, mode SourceRootMode) string {
	var want string
	switch mode {
	case RootMain:
		want = filepath.Join("src", "main")
	case RootTest:
		want = filepath.Join("src", "test")
	default:
		return root
	}

	found := root
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if rel == want || strings.HasSuffix(rel, string(filepath.Separator)+want) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
