package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

const scopeLocalsQuery = `(local_variable_declaration
  type: (_) @type
  declarator: (variable_declarator name: (identifier) @name)) @decl`

const scopeParamsQuery = `(formal_parameter name: (identifier) @name) @param`

// ResolveType returns the declared type of whatever the reference node
// denotes, or "" when nothing in scope declares that name. Precedence
// mirrors lexical shadowing: local variables visible at or before the
// reference win over the enclosing member's parameters, which win over
// the enclosing class's fields. The self-reference resolves to the
// enclosing class-like declaration.
//
// Callers must treat "" as "do not touch this occurrence", never as an
// error of the whole operation.
func ResolveType(f *sourcefile.File, ref *sitter.Node) string {
	if ref == nil {
		return ""
	}
	if ref.Type() == "this" {
		return EnclosingTypeName(f, ref)
	}
	name := f.TextOf(ref)
	if name == "" {
		return ""
	}

	scope := memberScope(ref)
	if scope == nil {
		return ""
	}
	if scope.Type() != "field_declaration" {
		if t := localType(f, scope, name, ref); t != "" {
			return t
		}
		if t := paramType(f, scope, name); t != "" {
			return t
		}
	}
	return fieldTypeFor(f, ref, name)
}

// memberScope returns the nearest enclosing method, constructor, or field
// initializer containing node.
func memberScope(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	return ancestorOf(node.Parent(),
		"method_declaration", "constructor_declaration", "field_declaration")
}

// localType finds the nearest local declaration of name whose enclosing
// block contains ref and whose name appears at or before it.
func localType(f *sourcefile.File, scope *sitter.Node, name string, ref *sitter.Node) string {
	var best *sitter.Node
	var bestStart uint32
	for _, m := range f.Query(scopeLocalsQuery).Within(scope).ReturningAllCaptures().Exec().Mappings() {
		nameNode, typeNode := m["name"], m["type"]
		if nameNode == nil || typeNode == nil || f.TextOf(nameNode) != name {
			continue
		}
		if nameNode.StartByte() > ref.StartByte() {
			continue
		}
		if !blockContains(m["decl"], ref) {
			continue
		}
		if best == nil || nameNode.StartByte() >= bestStart {
			best, bestStart = typeNode, nameNode.StartByte()
		}
	}
	return TypeSpelling(f, best)
}

// blockContains reports whether ref sits inside the block that makes decl
// visible.
func blockContains(decl, ref *sitter.Node) bool {
	block := ScopeOf(decl)
	if block == nil {
		return false
	}
	for cur := ref.Parent(); cur != nil; cur = cur.Parent() {
		if sameNode(cur, block) {
			return true
		}
	}
	return false
}

func paramType(f *sourcefile.File, scope *sitter.Node, name string) string {
	for _, m := range f.Query(scopeParamsQuery).Within(scope).ReturningAllCaptures().Exec().Mappings() {
		nameNode, param := m["name"], m["param"]
		if nameNode == nil || param == nil || f.TextOf(nameNode) != name {
			continue
		}
		return TypeSpelling(f, param.ChildByFieldName("type"))
	}
	return ""
}

func fieldTypeFor(f *sourcefile.File, ref *sitter.Node, name string) string {
	body := ancestorOf(ref.Parent(), "class_body")
	if body == nil {
		return ""
	}
	for _, m := range f.Query(classFieldsQuery).Within(body).ReturningAllCaptures().Exec().Mappings() {
		nameNode, typeNode := m["name"], m["type"]
		if nameNode == nil || typeNode == nil || f.TextOf(nameNode) != name {
			continue
		}
		return TypeSpelling(f, typeNode)
	}
	return ""
}

// TypeSpelling reduces a declared type node to the name the resolver
// reports: the first type identifier within it, so "List<Account>" spells
// "List". Types without one, primitives included, spell as their full
// text, keeping them distinct from a failed resolution.
func TypeSpelling(f *sourcefile.File, typeNode *sitter.Node) string {
	if typeNode == nil {
		return ""
	}
	if typeNode.Type() == "type_identifier" {
		return f.TextOf(typeNode)
	}
	res := f.Query(`(type_identifier) @t`).Within(typeNode).Returning("t").Exec()
	if res.IsEmpty() {
		return f.TextOf(typeNode)
	}
	return res.Text(res.First())
}
