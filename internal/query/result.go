package query

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Result is the outcome of executing one query.
// It holds either a node sequence or a sequence of capture mappings,
// depending on the builder's returning mode.
type Result struct {
	source   []byte
	nodes    []*sitter.Node
	mappings []map[string]*sitter.Node
}

// Nodes returns the matched node sequence.
func (r *Result) Nodes() []*sitter.Node {
	return r.nodes
}

// Mappings returns one capture-name mapping per match.
func (r *Result) Mappings() []map[string]*sitter.Node {
	return r.mappings
}

// Len reports the number of results in whichever mode was selected.
func (r *Result) Len() int {
	if r.mappings != nil {
		return len(r.mappings)
	}
	return len(r.nodes)
}

// IsEmpty reports whether the query matched nothing.
func (r *Result) IsEmpty() bool {
	return r.Len() == 0
}

// First returns the first matched node, or nil when there is none.
func (r *Result) First() *sitter.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// Single returns the only matched node, erroring unless exactly one matched.
func (r *Result) Single() (*sitter.Node, error) {
	if len(r.nodes) != 1 {
		return nil, fmt.Errorf("query: expected exactly one result, got %d", len(r.nodes))
	}
	return r.nodes[0], nil
}

// Filter returns a new Result keeping only nodes for which pred is true.
func (r *Result) Filter(pred func(*sitter.Node) bool) *Result {
	out := &Result{source: r.source}
	for _, n := range r.nodes {
		if pred(n) {
			out.nodes = append(out.nodes, n)
		}
	}
	return out
}

// Text returns the source text covered by node.
func (r *Result) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(r.source[node.StartByte():node.EndByte()])
}

// Texts returns the source text of every matched node, in result order.
func (r *Result) Texts() []string {
	out := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		out[i] = r.Text(n)
	}
	return out
}
