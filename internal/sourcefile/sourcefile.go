// Package sourcefile wraps one file's text and its tree-sitter parse.
//
// A File owns the current text, the tree it was last parsed from, and the
// path/dirty bookkeeping for staged renames. Edits splice the text
// immediately without re-parsing; node handles stay valid against the
// snapshot their tree was parsed from, which is why plans are computed
// entirely before the first edit is applied.
package sourcefile

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	jreferrors "jref/internal/errors"
	"jref/internal/query"
)

// Convention identifies how a caller numbers cursor positions.
type Convention int

const (
	// RowColOneBased is the CLI convention: line and column both start at 1.
	RowColOneBased Convention = iota
	// RowOneColZero is the editor convention (Neovim, VS Code): lines start
	// at 1, columns at 0.
	RowOneColZero
)

// File is an in-memory source unit: text, tree, and path/dirty state.
type File struct {
	lang *sitter.Language

	path       string // bound path, "" for in-memory units
	stagedPath string // non-empty when a rename or move is staged

	original []byte // text at construction
	source   []byte // current text, reflects all applied edits
	parsed   []byte // text the current tree was parsed from

	tree  *sitter.Tree
	dirty bool
}

// FromBytes parses src into a new in-memory unit.
// The parser is tolerant: syntactically broken input still yields a tree.
func FromBytes(ctx context.Context, lang *sitter.Language, src []byte) (*File, error) {
	tree, err := parse(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, len(src))
	copy(cp, src)
	return &File{
		lang:     lang,
		original: cp,
		source:   cp,
		parsed:   cp,
		tree:     tree,
	}, nil
}

// Load reads and parses the file at path.
func Load(ctx context.Context, lang *sitter.Language, path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot resolve path", err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot read "+path, err)
	}
	f, err := FromBytes(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	f.path = abs
	return f, nil
}

func parse(ctx context.Context, lang *sitter.Language, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.InternalError, "parse aborted", err)
	}
	return tree, nil
}

// Root returns the root node of the current tree, or nil without one.
func (f *File) Root() *sitter.Node {
	if f.tree == nil {
		return nil
	}
	return f.tree.RootNode()
}

// Source returns the current text.
func (f *File) Source() []byte { return f.source }

// Original returns the text the unit was constructed with.
func (f *File) Original() []byte { return f.original }

// Dirty reports whether the unit differs from what is persisted.
func (f *File) Dirty() bool { return f.dirty }

// Path returns the effective path: the staged one when a rename or move
// is pending, else the bound path. Empty for in-memory units.
func (f *File) Path() string {
	if f.stagedPath != "" {
		return f.stagedPath
	}
	return f.path
}

// BoundPath returns the path the unit was loaded from, ignoring staged
// renames. Empty for in-memory units.
func (f *File) BoundPath() string { return f.path }

// Stem returns the effective file name without its extension.
func (f *File) Stem() string {
	p := f.Path()
	if p == "" {
		return ""
	}
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Lang returns the grammar this unit was parsed with.
func (f *File) Lang() *sitter.Language { return f.lang }

// NodeAt returns the smallest named node covering the position, or nil when
// either axis is non-positive for the convention or the position lies beyond
// the end of the tree.
func (f *File) NodeAt(line, column int, conv Convention) *sitter.Node {
	root := f.Root()
	if root == nil {
		return nil
	}
	if line <= 0 || column <= 0 {
		return nil
	}
	if conv == RowOneColZero {
		column++
	}
	row := uint32(line - 1)
	col := uint32(column)

	end := root.EndPoint()
	if row > end.Row || (row == end.Row && col > end.Column) {
		return nil
	}
	p := sitter.Point{Row: row, Column: col}
	return root.NamedDescendantForPointRange(p, p)
}

// TextOf returns the exact text covered by node in the snapshot its tree
// was parsed from. Nil nodes yield the empty string.
func (f *File) TextOf(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(f.parsed[node.StartByte():node.EndByte()])
}

// Slice returns the current text in [start, end).
func (f *File) Slice(start, end int) (string, error) {
	if err := f.checkRange(start, end); err != nil {
		return "", err
	}
	return string(f.source[start:end]), nil
}

// Update splices replacement text over [start, end) immediately, without
// re-parsing, and marks the unit dirty.
func (f *File) Update(start, end int, replacement string) error {
	if err := f.checkRange(start, end); err != nil {
		return err
	}
	out := make([]byte, 0, len(f.source)-(end-start)+len(replacement))
	out = append(out, f.source[:start]...)
	out = append(out, replacement...)
	out = append(out, f.source[end:]...)
	f.source = out
	f.dirty = true
	return nil
}

// UpdateNode splices replacement text over node's byte range.
func (f *File) UpdateNode(node *sitter.Node, replacement string) error {
	if node == nil {
		return jreferrors.New(jreferrors.RangeError, "nil node")
	}
	return f.Update(int(node.StartByte()), int(node.EndByte()), replacement)
}

func (f *File) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(f.source) {
		return jreferrors.New(jreferrors.RangeError, "invalid range").WithDetails(map[string]int{
			"start": start,
			"end":   end,
			"len":   len(f.source),
		})
	}
	return nil
}

// Rename stages a file rename to newStem within the current directory.
// The disk is not touched until Save.
func (f *File) Rename(newStem string) error {
	if f.path == "" {
		return jreferrors.New(jreferrors.IoError, "cannot rename an unbound unit")
	}
	cur := f.Path()
	ext := filepath.Ext(cur)
	f.stagedPath = filepath.Join(filepath.Dir(cur), newStem+ext)
	f.dirty = true
	return nil
}

// Move stages relocation into newDir, keeping the file name.
// The disk is not touched until Save.
func (f *File) Move(newDir string) error {
	if f.path == "" {
		return jreferrors.New(jreferrors.IoError, "cannot move an unbound unit")
	}
	f.stagedPath = filepath.Join(newDir, filepath.Base(f.Path()))
	f.dirty = true
	return nil
}

// Save writes the current text to the effective path, completing any staged
// rename or move, and clears the dirty flag.
func (f *File) Save() error {
	if f.path == "" {
		return jreferrors.New(jreferrors.IoError, "in-memory unit has no path")
	}
	target := f.Path()
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return jreferrors.Wrap(jreferrors.IoError, "cannot create "+filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, f.source, 0644); err != nil {
		return jreferrors.Wrap(jreferrors.IoError, "cannot save "+target, err)
	}
	if f.stagedPath != "" && f.stagedPath != f.path {
		if _, err := os.Stat(f.path); err == nil {
			if err := os.Remove(f.path); err != nil {
				return jreferrors.Wrap(jreferrors.IoError, "cannot remove "+f.path, err)
			}
		}
	}
	f.path = target
	f.stagedPath = ""
	f.dirty = false
	return nil
}

// SaveAs binds path to the unit and writes it.
func (f *File) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return jreferrors.Wrap(jreferrors.IoError, "cannot resolve path", err)
	}
	f.path = abs
	f.stagedPath = ""
	return f.Save()
}

// Reparse re-parses the current text into a fresh tree. Node handles from
// the previous tree become stale.
func (f *File) Reparse(ctx context.Context) error {
	tree, err := parse(ctx, f.lang, f.source)
	if err != nil {
		return err
	}
	if f.tree != nil {
		f.tree.Close()
	}
	f.tree = tree
	cp := make([]byte, len(f.source))
	copy(cp, f.source)
	f.parsed = cp
	return nil
}

// Query starts a pattern query against the snapshot the tree was parsed from.
func (f *File) Query(pattern string) *query.Builder {
	return query.New(f.parsed, f.Root(), f.lang, pattern)
}

// Close releases the tree. The File must not be queried afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}
