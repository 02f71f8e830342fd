// Package query runs tree-sitter pattern queries against a parsed source file.
//
// A Builder pairs an immutable pattern string with an optional scoping node
// and a capture-selection mode. Failures never surface as errors: a malformed
// pattern, a nil scope, or a missing tree all execute to an empty Result, so
// callers can treat every miss uniformly as "nothing found".
package query

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

type mode int

const (
	modeNodes mode = iota
	modeReturning
	modeAllCaptures
	modeSomeCaptures
)

// Builder accumulates the parts of one query execution.
type Builder struct {
	source  []byte
	root    *sitter.Node
	lang    *sitter.Language
	pattern string

	scope    *sitter.Node
	nilScope bool

	mode     mode
	captures []string
}

// New creates a query builder against the tree rooted at root.
func New(source []byte, root *sitter.Node, lang *sitter.Language, pattern string) *Builder {
	return &Builder{
		source:  source,
		root:    root,
		lang:    lang,
		pattern: pattern,
	}
}

// Within restricts matching to the subtree rooted at node.
// A nil node poisons the query into an empty result.
func (b *Builder) Within(node *sitter.Node) *Builder {
	if node == nil {
		b.nilScope = true
		return b
	}
	b.scope = node
	return b
}

// Returning selects a single named capture as the result node sequence.
func (b *Builder) Returning(capture string) *Builder {
	b.mode = modeReturning
	b.captures = []string{capture}
	return b
}

// ReturningAllCaptures yields one mapping per match with every named capture.
// Captures that did not bind in a match are simply absent from its mapping.
func (b *Builder) ReturningAllCaptures() *Builder {
	b.mode = modeAllCaptures
	b.captures = nil
	return b
}

// ReturningCaptures filters each match's mapping down to the named subset.
// Matches whose filtered mapping is entirely empty are dropped.
func (b *Builder) ReturningCaptures(names ...string) *Builder {
	b.mode = modeSomeCaptures
	b.captures = names
	return b
}

// Exec runs the query. It never mutates the underlying tree and is safe to
// call repeatedly against the same unmutated source.
func (b *Builder) Exec() *Result {
	res := &Result{source: b.source}
	if b.root == nil || b.nilScope || b.pattern == "" {
		return res
	}

	q, err := sitter.NewQuery([]byte(b.pattern), b.lang)
	if err != nil {
		// Malformed pattern degrades to an empty result.
		return res
	}
	defer q.Close()

	scope := b.scope
	if scope == nil {
		scope = b.root
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, scope)

	switch b.mode {
	case modeReturning:
		b.collectNamed(q, qc, res)
	case modeAllCaptures, modeSomeCaptures:
		b.collectMappings(q, qc, res)
	default:
		b.collectAll(q, qc, res)
	}
	return res
}

// collectAll appends every capture of every match in document order.
func (b *Builder) collectAll(q *sitter.Query, qc *sitter.QueryCursor, res *Result) {
	for {
		match, ok := qc.NextMatch()
		if !ok {
			return
		}
		match = qc.FilterPredicates(match, b.source)
		if len(match.Captures) == 0 {
			continue
		}
		for _, c := range match.Captures {
			res.nodes = append(res.nodes, c.Node)
		}
	}
}

// collectNamed appends nodes bound to the selected capture, preserving
// document order and dropping duplicate byte ranges.
func (b *Builder) collectNamed(q *sitter.Query, qc *sitter.QueryCursor, res *Result) {
	want := b.captures[0]
	seen := make(map[[2]uint32]bool)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			return
		}
		match = qc.FilterPredicates(match, b.source)
		if len(match.Captures) == 0 {
			continue
		}
		for _, c := range match.Captures {
			if q.CaptureNameForId(c.Index) != want {
				continue
			}
			key := [2]uint32{c.Node.StartByte(), c.Node.EndByte()}
			if seen[key] {
				continue
			}
			seen[key] = true
			res.nodes = append(res.nodes, c.Node)
		}
	}
}

// collectMappings builds one capture-name mapping per match, then orders the
// mappings by the smallest start byte they cover.
func (b *Builder) collectMappings(q *sitter.Query, qc *sitter.QueryCursor, res *Result) {
	var keep map[string]bool
	if b.mode == modeSomeCaptures {
		keep = make(map[string]bool, len(b.captures))
		for _, name := range b.captures {
			keep[name] = true
		}
	}

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, b.source)
		if len(match.Captures) == 0 {
			continue
		}
		m := make(map[string]*sitter.Node)
		for _, c := range match.Captures {
			name := q.CaptureNameForId(c.Index)
			if keep != nil && !keep[name] {
				continue
			}
			m[name] = c.Node
		}
		if len(m) == 0 {
			continue
		}
		res.mappings = append(res.mappings, m)
	}

	sort.SliceStable(res.mappings, func(i, j int) bool {
		return mappingStart(res.mappings[i]) < mappingStart(res.mappings[j])
	})
}

func mappingStart(m map[string]*sitter.Node) uint32 {
	first := true
	var min uint32
	for _, n := range m {
		if first || n.StartByte() < min {
			min = n.StartByte()
			first = false
		}
	}
	return min
}
