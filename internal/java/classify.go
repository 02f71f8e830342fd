package java

import sitter "github.com/smacker/go-tree-sitter"

// Kind labels what an identifier node declares, judged purely by its
// immediate parent (grandparent only to split fields from locals).
type Kind string

const (
	KindClassName         Kind = "class"
	KindInterfaceName     Kind = "interface"
	KindEnumName          Kind = "enum"
	KindRecordName        Kind = "record"
	KindAnnotationName    Kind = "annotation"
	KindMethodName        Kind = "method"
	KindFieldName         Kind = "field"
	KindParameterName     Kind = "parameter"
	KindLocalVariableName Kind = "local"
	KindUnknown           Kind = "unknown"
)

// IsTypeName reports whether the kind names a type declaration.
func (k Kind) IsTypeName() bool {
	switch k {
	case KindClassName, KindInterfaceName, KindEnumName, KindRecordName, KindAnnotationName:
		return true
	}
	return false
}

// IsVariableName reports whether the kind names a value declaration.
func (k Kind) IsVariableName() bool {
	switch k {
	case KindFieldName, KindParameterName, KindLocalVariableName:
		return true
	}
	return false
}

// Classify labels an identifier node. Anything that is not an identifier,
// or whose parent shape is not in the closed set, is KindUnknown.
func Classify(node *sitter.Node) Kind {
	if node == nil || node.Type() != "identifier" {
		return KindUnknown
	}
	parent := node.Parent()
	if parent == nil {
		return KindUnknown
	}
	switch parent.Type() {
	case "class_declaration":
		return KindClassName
	case "interface_declaration":
		return KindInterfaceName
	case "enum_declaration":
		return KindEnumName
	case "record_declaration":
		return KindRecordName
	case "annotation_type_declaration":
		return KindAnnotationName
	case "method_declaration":
		return KindMethodName
	case "formal_parameter":
		return KindParameterName
	case "variable_declarator":
		if gp := parent.Parent(); gp != nil && gp.Type() == "field_declaration" {
			return KindFieldName
		}
		return KindLocalVariableName
	}
	return KindUnknown
}
