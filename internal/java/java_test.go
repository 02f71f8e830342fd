package java

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/sourcefile"
)

func parseSrc(t *testing.T, src string) *sourcefile.File {
	t.Helper()
	f, err := Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

// identifierAt returns the index-th identifier spelled name, in document
// order.
func identifierAt(t *testing.T, f *sourcefile.File, name string, index int) *sitter.Node {
	t.Helper()
	nodes := Identifiers(f, f.Root(), name)
	if index >= len(nodes) {
		t.Fatalf("identifier %q occurs %d times, want index %d", name, len(nodes), index)
	}
	return nodes[index]
}

// receiverAt returns the index-th identifier spelled name that is the
// receiver of a method invocation, in document order.
func receiverAt(t *testing.T, f *sourcefile.File, name string, index int) *sitter.Node {
	t.Helper()
	var out []*sitter.Node
	for _, n := range Identifiers(f, f.Root(), name) {
		p := n.Parent()
		if p != nil && p.Type() == "method_invocation" && sameNode(p.ChildByFieldName("object"), n) {
			out = append(out, n)
		}
	}
	if index >= len(out) {
		t.Fatalf("receiver %q occurs %d times, want index %d", name, len(out), index)
	}
	return out[index]
}

func typeIdentifier(t *testing.T, f *sourcefile.File, text string) *sitter.Node {
	t.Helper()
	res := f.Query(`(type_identifier) @t`).Within(f.Root()).Returning("t").Exec()
	for _, n := range res.Nodes() {
		if res.Text(n) == text {
			return n
		}
	}
	t.Fatalf("no type identifier %q in fixture", text)
	return nil
}
