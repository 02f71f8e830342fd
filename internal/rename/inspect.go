package rename

import (
	"context"
	"fmt"

	jreferrors "jref/internal/errors"
	"jref/internal/java"
	"jref/internal/sourcefile"
)

// Inspection describes the node under a cursor: what it is, what type
// it resolves to, and whether a rename could start there.
type Inspection struct {
	Name       string `json:"name,omitempty"`
	NodeType   string `json:"nodeType"`
	Kind       string `json:"kind"`
	Type       string `json:"type,omitempty"`
	Class      string `json:"enclosingClass,omitempty"`
	Package    string `json:"package,omitempty"`
	Renameable bool   `json:"renameable"`
	Span       Span   `json:"span"`
}

// Inspect resolves a cursor position without changing anything.
func (e *Engine) Inspect(ctx context.Context, file string, line, column int, conv sourcefile.Convention) (*Inspection, error) {
	f, err := java.Open(ctx, file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	node := f.NodeAt(line, column, conv)
	if node == nil {
		return nil, jreferrors.New(jreferrors.NotFound,
			fmt.Sprintf("no node at line %d column %d", line, column))
	}
	kind := java.Classify(node)
	info := &Inspection{
		NodeType:   node.Type(),
		Kind:       string(kind),
		Package:    java.PackageName(f),
		Class:      java.EnclosingTypeName(f, node),
		Span:       NodeSpan(node),
		Renameable: kind.IsTypeName() || kind.IsVariableName(),
	}
	switch node.Type() {
	case "identifier", "this":
		info.Name = f.TextOf(node)
		info.Type = java.ResolveType(f, node)
	case "type_identifier":
		info.Name = f.TextOf(node)
	}
	return info, nil
}
