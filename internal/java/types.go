package java

import (
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

// TypeDecl is a located class-like declaration.
type TypeDecl struct {
	Node     *sitter.Node // the declaration itself
	NameNode *sitter.Node // its name identifier
}

const findTypeQuery = `([
  (class_declaration name: (identifier) @name)
  (interface_declaration name: (identifier) @name)
  (enum_declaration name: (identifier) @name)
  (record_declaration name: (identifier) @name)
  (annotation_type_declaration name: (identifier) @name)
] @decl (#eq? @name %q))`

// FindTypeByName locates the class, interface, enum, record, or annotation
// declared with the given simple name, or nil.
func FindTypeByName(f *sourcefile.File, name string) *TypeDecl {
	res := f.Query(fmt.Sprintf(findTypeQuery, name)).ReturningAllCaptures().Exec()
	if res.IsEmpty() {
		return nil
	}
	mapping := res.Mappings()[0]
	decl, nameNode := mapping["decl"], mapping["name"]
	if decl == nil || nameNode == nil {
		return nil
	}
	return &TypeDecl{Node: decl, NameNode: nameNode}
}

// PublicType returns the declaration matching the file's stem, which by
// Java convention is the file's public type. Nil for in-memory units or
// when no declaration matches.
func PublicType(f *sourcefile.File) *TypeDecl {
	stem := f.Stem()
	if stem == "" {
		return nil
	}
	return FindTypeByName(f, stem)
}

const methodsQuery = `(class_declaration body: (class_body (method_declaration) @method))`

// Methods returns the method declarations in the direct body of class.
func Methods(f *sourcefile.File, class *sitter.Node) []*sitter.Node {
	if class == nil || class.Type() != "class_declaration" {
		return nil
	}
	return f.Query(methodsQuery).Within(class).Returning("method").Exec().Nodes()
}

var mainMethodPattern = regexp.MustCompile(
	`(?s)public\s+static\s+void\s+main\s*\(\s*String\s*(\[\s*\]\s+|\s*\.\.\.\s*)\w+\s*\)`)

// IsMainMethod reports whether the method declaration is a runnable
// public static void main(String[] args) entry point, varargs included.
func IsMainMethod(f *sourcefile.File, method *sitter.Node) bool {
	if method == nil || method.Type() != "method_declaration" {
		return false
	}
	return mainMethodPattern.MatchString(f.TextOf(method))
}

// EnclosingTypeName returns the simple name of the nearest class-like
// declaration containing node, or "".
func EnclosingTypeName(f *sourcefile.File, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if classLikeNodeTypes[cur.Type()] {
			return f.TextOf(cur.ChildByFieldName("name"))
		}
	}
	return ""
}
