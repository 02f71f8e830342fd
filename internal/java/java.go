// Package java adapts the grammar-agnostic query engine to Java's
// declaration shapes: type declarations, fields, parameters, locals,
// imports, and the scope rules that connect a name to its declared type.
// The rename orchestrator talks to these narrow finders and never
// touches grammar node shapes directly.
package java

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"

	"jref/internal/sourcefile"
)

// Lang returns the Java grammar.
func Lang() *sitter.Language { return tsjava.GetLanguage() }

// Open loads and parses a Java file from disk.
func Open(ctx context.Context, path string) (*sourcefile.File, error) {
	return sourcefile.Load(ctx, tsjava.GetLanguage(), path)
}

// Parse parses Java source held in memory.
func Parse(ctx context.Context, src []byte) (*sourcefile.File, error) {
	return sourcefile.FromBytes(ctx, tsjava.GetLanguage(), src)
}

var classLikeNodeTypes = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// SameNode compares node identity by position and kind. Node pointers are
// not stable across query executions.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func sameNode(a, b *sitter.Node) bool { return SameNode(a, b) }

// ancestorOf walks upward from node until a type in want is found.
func ancestorOf(node *sitter.Node, want ...string) *sitter.Node {
	for cur := node; cur != nil; cur = cur.Parent() {
		for _, t := range want {
			if cur.Type() == t {
				return cur
			}
		}
	}
	return nil
}
