package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	jreferrors "jref/internal/errors"
	"jref/internal/naming"
)

// FileType selects which kind of type declaration to scaffold.
type FileType string

const (
	TypeClass      FileType = "class"
	TypeInterface  FileType = "interface"
	TypeEnum       FileType = "enum"
	TypeRecord     FileType = "record"
	TypeAnnotation FileType = "annotation"
)

// ParseFileType parses a type name; empty means TypeClass.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(s) {
	case "", "class":
		return TypeClass, nil
	case "interface":
		return TypeInterface, nil
	case "enum":
		return TypeEnum, nil
	case "record":
		return TypeRecord, nil
	case "annotation":
		return TypeAnnotation, nil
	}
	return "", jreferrors.New(jreferrors.InvalidArgument, "unknown file type "+s)
}

// Render returns the body of a freshly scaffolded type declaration.
func Render(ft FileType, pkg, name string) (string, error) {
	switch ft {
	case TypeClass:
		return fmt.Sprintf("package %s;\n\npublic class %s {\n\n}\n", pkg, name), nil
	case TypeInterface:
		return fmt.Sprintf("package %s;\n\npublic interface %s {\n\n}\n", pkg, name), nil
	case TypeEnum:
		return fmt.Sprintf("package %s;\n\npublic enum %s {\n\n}\n", pkg, name), nil
	case TypeRecord:
		return fmt.Sprintf("package %s;\n\npublic record %s(\n\n) {\n\n}\n", pkg, name), nil
	case TypeAnnotation:
		return fmt.Sprintf("package %s;\n\npublic @interface %s {\n\n}\n", pkg, name), nil
	}
	return "", jreferrors.New(jreferrors.InvalidArgument, "unknown file type "+string(ft))
}

var packagePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*(\.[a-z][a-zA-Z0-9_]*)*$`)

// Create scaffolds a new Java type under the chosen source root and
// returns the created path. The type name is normalized to PascalCase,
// and an existing file is never overwritten.
func Create(root, pkg, name string, ft FileType, mode SourceRootMode) (string, error) {
	if !packagePattern.MatchString(pkg) {
		return "", jreferrors.New(jreferrors.InvalidArgument, "invalid package name "+pkg)
	}
	typeName := naming.ToPascal(name)
	if typeName == "" {
		return "", jreferrors.New(jreferrors.InvalidArgument, "empty type name")
	}
	content, err := Render(ft, pkg, typeName)
	if err != nil {
		return "", err
	}

	base := SourceRoot(root, mode)
	if slash := filepath.ToSlash(base); strings.HasSuffix(slash, "src/main") || strings.HasSuffix(slash, "src/test") {
		base = filepath.Join(base, "java")
	}
	dir := filepath.Join(base, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", jreferrors.Wrap(jreferrors.IoError, "cannot create "+dir, err)
	}
	path := filepath.Join(dir, typeName+".java")
	if _, err := os.Stat(path); err == nil {
		return "", jreferrors.New(jreferrors.IoError, path+" already exists")
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", jreferrors.Wrap(jreferrors.IoError, "cannot write "+path, err)
	}
	return path, nil
}
