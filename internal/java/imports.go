package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

// Import is a direct (non-wildcard) import declaration split into its
// qualifier and simple name.
type Import struct {
	Node        *sitter.Node // import_declaration
	PackageNode *sitter.Node // qualifier before the final dot
	NameNode    *sitter.Node // imported simple name
}

// WildcardImport is an on-demand import of a whole package.
type WildcardImport struct {
	Node        *sitter.Node // import_declaration
	PackageNode *sitter.Node // the imported package
}

const packageQuery = `(package_declaration [ (scoped_identifier) (identifier) ] @name)`

// PackageName returns the declared package of the compilation unit, or "".
func PackageName(f *sourcefile.File) string {
	res := f.Query(packageQuery).Returning("name").Exec()
	return res.Text(res.First())
}

const importsQuery = `(import_declaration
  (scoped_identifier
    scope: (_) @package
    name: (identifier) @name)) @import`

// Imports returns every direct import of the unit. Wildcard imports also
// parse as a scoped identifier, so they are filtered out here.
func Imports(f *sourcefile.File) []Import {
	var out []Import
	for _, m := range f.Query(importsQuery).ReturningAllCaptures().Exec().Mappings() {
		imp := Import{Node: m["import"], PackageNode: m["package"], NameNode: m["name"]}
		if imp.Node == nil || imp.PackageNode == nil || imp.NameNode == nil {
			continue
		}
		if hasChildOfType(imp.Node, "asterisk") {
			continue
		}
		out = append(out, imp)
	}
	return out
}

func hasChildOfType(node *sitter.Node, childType string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if c := node.Child(i); c != nil && c.Type() == childType {
			return true
		}
	}
	return false
}

const wildcardImportsQuery = `(import_declaration
  (scoped_identifier) @package
  (asterisk)) @import`

// WildcardImports returns every on-demand import of the unit.
func WildcardImports(f *sourcefile.File) []WildcardImport {
	var out []WildcardImport
	for _, m := range f.Query(wildcardImportsQuery).ReturningAllCaptures().Exec().Mappings() {
		imp := WildcardImport{Node: m["import"], PackageNode: m["package"]}
		if imp.Node == nil || imp.PackageNode == nil {
			continue
		}
		out = append(out, imp)
	}
	return out
}
