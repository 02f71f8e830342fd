// Package rename computes and applies project-wide rename refactorings.
// A rename runs in two strict phases: first the whole plan is built
// against one immutable parse snapshot per file, then the plan is
// applied file by file. No file is mutated while the plan is still
// growing.
package rename

import (
	"sort"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
)

// Span is the byte and point range of one node in its file's snapshot.
type Span struct {
	StartByte uint32 `json:"startByte"`
	EndByte   uint32 `json:"endByte"`
	StartRow  uint32 `json:"startRow"`
	StartCol  uint32 `json:"startCol"`
	EndRow    uint32 `json:"endRow"`
	EndCol    uint32 `json:"endCol"`
}

// NodeSpan captures a node's position for staging into a plan.
func NodeSpan(n *sitter.Node) Span {
	start := n.StartPoint()
	end := n.EndPoint()
	return Span{
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		StartRow:  start.Row,
		StartCol:  start.Column,
		EndRow:    end.Row,
		EndCol:    end.Column,
	}
}

// Edit replaces one byte range of one file.
type Edit struct {
	Path string `json:"path"`
	Span
	Replacement string `json:"replacement"`
}

// Move renames a file on disk as part of applying the plan.
type Move struct {
	Path    string `json:"path"`
	NewStem string `json:"newStem"`
}

type editKey struct {
	path  string
	start uint32
	end   uint32
}

// Plan is the complete set of changes one rename request will make,
// collected before any file is touched. Duplicate edits of the same
// range collapse; the first staged replacement wins.
type Plan struct {
	id      string
	kind    string
	oldName string
	newName string
	edits   []Edit
	moves   []Move
	seen    map[editKey]bool
}

// NewPlan starts an empty plan for renaming oldName to newName.
func NewPlan(kind, oldName, newName string) *Plan {
	return &Plan{
		id:      uuid.New().String(),
		kind:    kind,
		oldName: oldName,
		newName: newName,
		seen:    make(map[editKey]bool),
	}
}

func (p *Plan) ID() string      { return p.id }
func (p *Plan) Kind() string    { return p.kind }
func (p *Plan) OldName() string { return p.oldName }
func (p *Plan) NewName() string { return p.newName }

// Add stages an edit and reports whether it was new.
func (p *Plan) Add(path string, span Span, replacement string) bool {
	key := editKey{path: path, start: span.StartByte, end: span.EndByte}
	if p.seen[key] {
		return false
	}
	p.seen[key] = true
	p.edits = append(p.edits, Edit{Path: path, Span: span, Replacement: replacement})
	return true
}

// AddNode stages an edit replacing a node's range.
func (p *Plan) AddNode(path string, n *sitter.Node, replacement string) bool {
	return p.Add(path, NodeSpan(n), replacement)
}

// AddMove stages a file rename.
func (p *Plan) AddMove(path, newStem string) {
	for _, m := range p.moves {
		if m.Path == path {
			return
		}
	}
	p.moves = append(p.moves, Move{Path: path, NewStem: newStem})
}

// Edits returns all staged edits in staging order.
func (p *Plan) Edits() []Edit { return p.edits }

// Moves returns all staged file renames.
func (p *Plan) Moves() []Move { return p.moves }

// Len is the number of staged edits.
func (p *Plan) Len() int { return len(p.edits) }

// IsEmpty reports whether the plan stages no change at all.
func (p *Plan) IsEmpty() bool { return len(p.edits) == 0 && len(p.moves) == 0 }

// Files returns every file the plan touches, sorted.
func (p *Plan) Files() []string {
	set := make(map[string]bool)
	for _, e := range p.edits {
		set[e.Path] = true
	}
	for _, m := range p.moves {
		set[m.Path] = true
	}
	out := make([]string, 0, len(set))
	for path := range set {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// EditsFor returns the edits of one file sorted by descending start
// byte, the only order in which they can be spliced safely.
func (p *Plan) EditsFor(path string) []Edit {
	var out []Edit
	for _, e := range p.edits {
		if e.Path == path {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartByte > out[j].StartByte })
	return out
}

// MoveFor returns the staged rename of one file, if any.
func (p *Plan) MoveFor(path string) (Move, bool) {
	for _, m := range p.moves {
		if m.Path == path {
			return m, true
		}
	}
	return Move{}, false
}
