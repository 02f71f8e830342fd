package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

// ParamDecl describes one formal parameter of a class type. Parameters of
// primitive types carry no renameable type node and are not described.
type ParamDecl struct {
	Node         *sitter.Node // formal_parameter
	TypeNode     *sitter.Node // element type
	FullTypeNode *sitter.Node // declared type as written
	NameNode     *sitter.Node
}

const allParamsQuery = `(method_declaration
  parameters: (formal_parameters (formal_parameter) @param))`

// MethodParams returns the formal parameters of every method within scope.
func MethodParams(f *sourcefile.File, scope *sitter.Node) []*sitter.Node {
	b := f.Query(allParamsQuery)
	if scope != nil {
		b = b.Within(scope)
	}
	return b.Returning("param").Exec().Nodes()
}

const paramInfoQuery = `(formal_parameter
  type: [
    (type_identifier)
    (generic_type
      (type_identifier)
      (type_arguments
        [
          (type_identifier) @paramTypeArgument
          (generic_type) @paramTypeArgument
        ]))
  ] @paramType
  name: (identifier) @paramName) @param`

// ParamInfo describes a formal parameter, or nil when its type is not a
// class type.
func ParamInfo(f *sourcefile.File, param *sitter.Node) *ParamDecl {
	if param == nil || param.Type() != "formal_parameter" {
		return nil
	}
	for _, m := range f.Query(paramInfoQuery).Within(param).ReturningAllCaptures().Exec().Mappings() {
		decl := &ParamDecl{
			Node:         m["param"],
			TypeNode:     m["paramTypeArgument"],
			FullTypeNode: m["paramType"],
			NameNode:     m["paramName"],
		}
		if decl.TypeNode == nil {
			decl.TypeNode = decl.FullTypeNode
		}
		if decl.Node == nil || decl.TypeNode == nil || decl.NameNode == nil {
			continue
		}
		if !sameNode(decl.Node, param) {
			continue
		}
		return decl
	}
	return nil
}

const expressionUsageQuery = `[
  (method_invocation object: (identifier) @usage)
  (argument_list (identifier) @usage)
  (variable_declarator value: (identifier) @usage)
  (assignment_expression left: (identifier) @usage)
  (assignment_expression right: (identifier) @usage)
  (binary_expression left: (identifier) @usage)
  (binary_expression right: (identifier) @usage)
  (ternary_expression condition: (identifier) @usage)
  (ternary_expression consequence: (identifier) @usage)
  (ternary_expression alternative: (identifier) @usage)
]`

// ExpressionUsages returns identifiers spelled name appearing in expression
// positions within scope: call receivers, arguments, initializers,
// assignment and binary operands, and ternary parts.
func ExpressionUsages(f *sourcefile.File, scope *sitter.Node, name string) []*sitter.Node {
	var out []*sitter.Node
	res := f.Query(expressionUsageQuery).Within(scope).Returning("usage").Exec()
	for _, n := range res.Nodes() {
		if res.Text(n) == name {
			out = append(out, n)
		}
	}
	return out
}
