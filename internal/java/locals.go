package java

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

// VarDecl describes one variable declaration of any shape: field, formal
// parameter, or local. ValueTypeNode points at the constructed type when
// the initializer is an object creation, e.g. "new ArrayList<Account>()".
type VarDecl struct {
	Node          *sitter.Node // the declaration
	TypeNode      *sitter.Node // element type
	FullTypeNode  *sitter.Node // declared type as written
	NameNode      *sitter.Node
	ValueTypeNode *sitter.Node // constructed element type, if any
}

const declsOfTypeQuery = `([
  (formal_parameter type: (_) @declType) @decl
  (local_variable_declaration type: (_) @declType) @decl
  (field_declaration type: (_) @declType) @decl
] (#eq? @declType %q))`

// DeclarationsOfType returns every variable declaration, of any shape,
// whose declared type text is exactly typeName.
func DeclarationsOfType(f *sourcefile.File, typeName string) []*sitter.Node {
	return f.Query(fmt.Sprintf(declsOfTypeQuery, typeName)).
		Returning("decl").
		Exec().
		Nodes()
}

const varInfoQuery = `[
  (formal_parameter
    type: [
      (type_identifier)
      (array_type)
      (generic_type
        (type_identifier)
        (type_arguments
          [
            (type_identifier) @varTypeArgument
            (generic_type) @varTypeArgument
          ]))
    ] @varType
    name: (identifier) @varName) @decl
  (local_variable_declaration
    type: [
      (type_identifier)
      (array_type)
      (generic_type
        (type_identifier)
        (type_arguments
          [
            (type_identifier) @varTypeArgument
            (generic_type) @varTypeArgument
          ]))
    ] @varType
    declarator: (variable_declarator
      name: (identifier) @varName
      value: (object_creation_expression
        type: [
          (type_identifier)
          (generic_type
            (type_identifier)
            (type_arguments
              [
                (type_identifier) @valueTypeArgument
                (generic_type) @valueTypeArgument
              ]))
        ] @valueType)?)) @decl
  (field_declaration
    type: [
      (type_identifier)
      (array_type)
      (generic_type
        (type_identifier)
        (type_arguments
          [
            (type_identifier) @varTypeArgument
            (generic_type) @varTypeArgument
          ]))
    ] @varType
    declarator: (variable_declarator
      name: (identifier) @varName
      value: (object_creation_expression
        type: [
          (type_identifier)
          (generic_type
            (type_identifier)
            (type_arguments
              [
                (type_identifier) @valueTypeArgument
                (generic_type) @valueTypeArgument
              ]))
        ] @valueType)?)) @decl
]`

// VarInfos describes a variable declaration of any shape, one entry per
// declarator. Declarations whose type is primitive are not described.
func VarInfos(f *sourcefile.File, decl *sitter.Node) []*VarDecl {
	if decl == nil {
		return nil
	}
	switch decl.Type() {
	case "formal_parameter", "local_variable_declaration", "field_declaration":
	default:
		return nil
	}
	var out []*VarDecl
	for _, m := range f.Query(varInfoQuery).Within(decl).ReturningAllCaptures().Exec().Mappings() {
		v := &VarDecl{
			Node:          m["decl"],
			TypeNode:      m["varTypeArgument"],
			FullTypeNode:  m["varType"],
			NameNode:      m["varName"],
			ValueTypeNode: m["valueType"],
		}
		if v.TypeNode == nil {
			v.TypeNode = v.FullTypeNode
		}
		if arg := m["valueTypeArgument"]; arg != nil {
			v.ValueTypeNode = arg
		}
		if v.Node == nil || v.TypeNode == nil || v.NameNode == nil {
			continue
		}
		if !sameNode(v.Node, decl) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ScopeOf returns the syntactic region in which a declared variable is
// visible: the innermost block for locals, the owning body for formal
// parameters, and the class body for fields.
func ScopeOf(decl *sitter.Node) *sitter.Node {
	if decl == nil {
		return nil
	}
	switch decl.Type() {
	case "local_variable_declaration":
		for cur := decl; cur != nil; cur = cur.Parent() {
			p := cur.Parent()
			if p == nil {
				return nil
			}
			switch p.Type() {
			case "block", "constructor_body":
				return p
			}
		}
		return nil
	case "formal_parameter":
		owner := ancestorOf(decl.Parent(), "method_declaration", "constructor_declaration")
		if owner == nil {
			return nil
		}
		return owner.ChildByFieldName("body")
	case "field_declaration":
		return ancestorOf(decl.Parent(), "class_body")
	}
	return nil
}

// Identifiers returns every identifier node spelled name within scope.
func Identifiers(f *sourcefile.File, scope *sitter.Node, name string) []*sitter.Node {
	pattern := fmt.Sprintf(`((identifier) @id (#eq? @id %q))`, name)
	return f.Query(pattern).Within(scope).Returning("id").Exec().Nodes()
}

// FieldAccessUsages returns the field-name identifiers of field accesses
// spelled name within scope, i.e. the x of this.x and obj.x.
func FieldAccessUsages(f *sourcefile.File, scope *sitter.Node, name string) []*sitter.Node {
	pattern := fmt.Sprintf(`((field_access field: (identifier) @usage) (#eq? @usage %q))`, name)
	return f.Query(pattern).Within(scope).Returning("usage").Exec().Nodes()
}
