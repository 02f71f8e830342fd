package java

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

// FieldDecl describes one declared field. For a generic declared type like
// List<Account>, TypeNode is the element type argument and FullTypeNode the
// whole generic type; for plain types both point at the same node.
type FieldDecl struct {
	Node         *sitter.Node // field_declaration
	TypeNode     *sitter.Node // element type
	FullTypeNode *sitter.Node // declared type as written
	NameNode     *sitter.Node
	ValueNode    *sitter.Node // initializer, if any
}

const fieldsOfTypeQuery = `((field_declaration
  type: [
    (type_identifier) @type
    (integral_type) @type
    (floating_point_type) @type
    (boolean_type) @type
    (void_type) @type
    (generic_type
      (type_arguments
        [
          (type_identifier) @type
          (integral_type) @type
          (floating_point_type) @type
          (boolean_type) @type
        ]))
  ]) @field
  (#eq? @type %q))`

// FieldsOfType returns the field declarations within scope whose declared
// type, or generic element type, is named typeName.
func FieldsOfType(f *sourcefile.File, scope *sitter.Node, typeName string) []*sitter.Node {
	return f.Query(fmt.Sprintf(fieldsOfTypeQuery, typeName)).
		Within(scope).
		Returning("field").
		Exec().
		Nodes()
}

const fieldInfoQuery = `(field_declaration
  type: [
    (type_identifier) @fieldType
    (integral_type) @fieldType
    (floating_point_type) @fieldType
    (boolean_type) @fieldType
    (void_type) @fieldType
    (generic_type
      (type_identifier)
      (type_arguments
        [
          (type_identifier) @fieldTypeArgument
          (integral_type) @fieldTypeArgument
          (floating_point_type) @fieldTypeArgument
          (generic_type) @fieldTypeArgument
        ])) @fieldType
  ]
  declarator: (variable_declarator
    name: (identifier) @fieldName
    value: (_)? @fieldValue)) @field`

// FieldInfos splits a field declaration into per-declarator descriptions;
// a declaration like "private int a, b;" yields one entry per name.
func FieldInfos(f *sourcefile.File, field *sitter.Node) []*FieldDecl {
	if field == nil || field.Type() != "field_declaration" {
		return nil
	}
	var out []*FieldDecl
	for _, m := range f.Query(fieldInfoQuery).Within(field).ReturningAllCaptures().Exec().Mappings() {
		decl := &FieldDecl{
			Node:         m["field"],
			TypeNode:     m["fieldTypeArgument"],
			FullTypeNode: m["fieldType"],
			NameNode:     m["fieldName"],
			ValueNode:    m["fieldValue"],
		}
		if decl.TypeNode == nil {
			decl.TypeNode = decl.FullTypeNode
		}
		if decl.Node == nil || decl.TypeNode == nil || decl.NameNode == nil {
			continue
		}
		// Scoped matching can reach nested declarations; keep only the
		// requested one.
		if !sameNode(decl.Node, field) {
			continue
		}
		out = append(out, decl)
	}
	return out
}

const classFieldsQuery = `(field_declaration
  type: (_) @type
  declarator: (variable_declarator name: (identifier) @name)) @decl`
