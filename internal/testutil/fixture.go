// Package testutil scaffolds throwaway Java projects for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Project is a scaffolded Java project rooted in a temp directory.
type Project struct {
	Root string
}

// NewProject creates an empty Gradle-marked project that lives for the
// duration of the test.
func NewProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "build.gradle"), []byte("plugins { id 'java' }\n"), 0644); err != nil {
		t.Fatalf("write build.gradle: %v", err)
	}
	return &Project{Root: root}
}

// WriteSource adds a file under src/main/java. rel is slash-separated,
// for example "com/example/Foo.java". Returns the absolute path.
func (p *Project) WriteSource(t *testing.T, rel, content string) string {
	t.Helper()
	return p.Write(t, "src/main/java/"+rel, content)
}

// Write adds a file at a project-relative slash path.
func (p *Project) Write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// SourcePath returns the absolute path a WriteSource call produced.
func (p *Project) SourcePath(rel string) string {
	return filepath.Join(p.Root, "src", "main", "java", filepath.FromSlash(rel))
}

// ReadSource returns the content of a file under src/main/java, failing
// the test when it cannot be read.
func (p *Project) ReadSource(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(p.SourcePath(rel))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// HasSource reports whether a file exists under src/main/java.
func (p *Project) HasSource(rel string) bool {
	_, err := os.Stat(p.SourcePath(rel))
	return err == nil
}
