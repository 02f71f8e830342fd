package rename

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"jref/internal/config"
	jreferrors "jref/internal/errors"
	"jref/internal/java"
	"jref/internal/naming"
	"jref/internal/slogutil"
	"jref/internal/sourcefile"
)

// State tracks how far a rename request has progressed.
type State string

const (
	StateStart      State = "start"
	StateLocated    State = "located"
	StateClassified State = "classified"
	StatePlanBuilt  State = "plan_built"
	StateApplied    State = "applied"
	StateError      State = "error"
)

// Outcome is the caller-visible summary of a finished request.
type Outcome string

const (
	OutcomeApplied    Outcome = "fully applied"
	OutcomePartial    Outcome = "partially applied"
	OutcomePlanFailed Outcome = "plan build failed"
	OutcomeDryRun     Outcome = "dry run"
)

// Request names an identifier by cursor position and the name it should
// get.
type Request struct {
	File       string
	Line       int
	Column     int
	Convention sourcefile.Convention
	NewName    string
	DryRun     bool
}

// MoveResult records a file rename that was part of applying a plan.
type MoveResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Report is the full account of one rename request. Paths are relative
// to the project root.
type Report struct {
	PlanID     string       `json:"planId,omitempty"`
	Kind       string       `json:"kind,omitempty"`
	OldName    string       `json:"oldName,omitempty"`
	NewName    string       `json:"newName,omitempty"`
	State      State        `json:"state"`
	Outcome    Outcome      `json:"outcome"`
	Message    string       `json:"message"`
	EditCount  int          `json:"editCount"`
	Applied    int          `json:"appliedEdits"`
	Files      []string     `json:"files,omitempty"`
	Saved      []string     `json:"saved,omitempty"`
	FailedFile string       `json:"failedFile,omitempty"`
	Moves      []MoveResult `json:"moves,omitempty"`
	BackupID   string       `json:"backupId,omitempty"`
	DryRun     bool         `json:"dryRun,omitempty"`
	Previews   []FileDiff   `json:"previews,omitempty"`
	Package    string       `json:"package,omitempty"`

	Plan *Plan `json:"-"`

	defPath string
	defSpan Span
}

// Engine drives a rename request through locate, classify, plan, and
// apply. Collaborators are injected so callers and tests can swap file
// discovery and backups.
type Engine struct {
	root  string
	cfg   *config.Config
	namer *naming.Engine
	log   *slog.Logger
	list  Lister
	snaps Snapshotter
}

// New builds an engine for the project at root. A nil lister walks the
// project tree; a nil snapshotter disables backups.
func New(root string, cfg *config.Config, namer *naming.Engine, log *slog.Logger, list Lister, snaps Snapshotter) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if namer == nil {
		namer = naming.NewEngine(nil)
	}
	if log == nil {
		log = slogutil.NewDiscardLogger()
	}
	if list == nil {
		list = ProjectLister{Cfg: cfg}
	}
	return &Engine{root: root, cfg: cfg, namer: namer, log: log, list: list, snaps: snaps}
}

// Rename resolves the cursor, builds the full plan, and applies it.
// Plan-building failures abort before any file is touched; apply
// failures leave already-saved files saved and report how far it got.
func (e *Engine) Rename(ctx context.Context, req Request) (*Report, error) {
	rep := &Report{State: StateStart, DryRun: req.DryRun}
	fail := func(err error) (*Report, error) {
		rep.State = StateError
		rep.Outcome = OutcomePlanFailed
		rep.Message = "plan build failed, no files touched"
		return rep, err
	}

	f, err := java.Open(ctx, req.File)
	if err != nil {
		return fail(err)
	}
	units := newUnitSet()
	units.add(f)
	defer units.closeAll()

	node := f.NodeAt(req.Line, req.Column, req.Convention)
	if node == nil || f.TextOf(node) == "" {
		return fail(jreferrors.New(jreferrors.NotFound,
			fmt.Sprintf("no identifier at line %d column %d", req.Line, req.Column)))
	}
	rep.State = StateLocated
	oldName := f.TextOf(node)
	rep.OldName = oldName

	kind := java.Classify(node)
	rep.Kind = string(kind)
	rep.State = StateClassified

	var plan *Plan
	switch {
	case kind.IsTypeName():
		plan, err = e.buildClassPlan(ctx, rep, units, f, oldName, req.NewName)
	case kind.IsVariableName():
		plan, err = e.buildVariablePlan(rep, f, node, kind, oldName, req.NewName)
	case kind == java.KindMethodName:
		err = jreferrors.New(jreferrors.UnsupportedKind, "method rename is not supported")
	default:
		err = jreferrors.New(jreferrors.UnsupportedKind, "no renameable identifier at the cursor")
	}
	if err != nil {
		return fail(err)
	}
	rep.State = StatePlanBuilt
	rep.Plan = plan
	rep.PlanID = plan.ID()
	rep.NewName = plan.NewName()
	rep.EditCount = plan.Len()
	for _, path := range plan.Files() {
		rep.Files = append(rep.Files, e.rel(path))
	}
	e.log.Debug("plan built",
		"plan", plan.ID(), "kind", plan.Kind(),
		"old", oldName, "new", plan.NewName(),
		"edits", plan.Len(), "files", len(rep.Files))

	if req.DryRun {
		rep.Outcome = OutcomeDryRun
		rep.Message = fmt.Sprintf("dry run: %d edits across %d files", plan.Len(), len(rep.Files))
		rep.Previews = e.previews(plan, units)
		for _, mv := range plan.Moves() {
			rep.Moves = append(rep.Moves, MoveResult{From: e.rel(mv.Path), To: e.rel(movedPath(mv))})
		}
		return rep, nil
	}

	if e.snaps != nil && e.cfg.Backup.Enabled && !plan.IsEmpty() {
		m, err := e.snaps.Snapshot(
			fmt.Sprintf("rename %s %s -> %s", plan.Kind(), oldName, plan.NewName()),
			plan.Files())
		if err != nil {
			return fail(err)
		}
		rep.BackupID = m.ID
	}

	out := e.applyPlan(plan, units)
	rep.Applied = out.applied
	for _, path := range out.saved {
		rep.Saved = append(rep.Saved, e.rel(path))
	}
	rep.Moves = out.moves
	if out.err != nil {
		rep.State = StateError
		rep.Outcome = OutcomePartial
		rep.FailedFile = e.rel(out.failed)
		rep.Message = fmt.Sprintf("partially applied with %d files saved, error on file %s",
			len(out.saved), rep.FailedFile)
		return rep, out.err
	}
	rep.State = StateApplied
	rep.Outcome = OutcomeApplied
	rep.Message = fmt.Sprintf("fully applied: %d edits across %d files", out.applied, len(out.saved))
	e.log.Info("rename applied",
		"plan", plan.ID(), "old", oldName, "new", plan.NewName(),
		"edits", out.applied, "files", len(out.saved))
	return rep, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// buildVariablePlan renames one field, parameter, or local within its
// declaring file. The requested name is taken as given, no convention
// is imposed.
func (e *Engine) buildVariablePlan(rep *Report, f *sourcefile.File, nameNode *sitter.Node, kind java.Kind, oldName, newName string) (*Plan, error) {
	if !identPattern.MatchString(newName) {
		return nil, jreferrors.New(jreferrors.InvalidArgument, "not a valid identifier: "+newName)
	}
	if newName == oldName {
		return nil, jreferrors.New(jreferrors.InvalidArgument, "new name equals the current name")
	}

	decl := declarationOf(nameNode, kind)
	if decl == nil {
		return nil, jreferrors.New(jreferrors.NotFound, "no declaration for "+oldName)
	}
	wantType := java.TypeSpelling(f, decl.ChildByFieldName("type"))

	plan := NewPlan("variable", oldName, newName)
	path := f.BoundPath()
	plan.AddNode(path, nameNode, newName)
	rep.Package = java.PackageName(f)
	rep.defPath = path
	rep.defSpan = NodeSpan(nameNode)

	scope := java.ScopeOf(decl)
	if scope != nil {
		for _, id := range java.Identifiers(f, scope, oldName) {
			if e.isUsage(f, id, nameNode, wantType) {
				plan.AddNode(path, id, newName)
			}
		}
		if kind == java.KindFieldName {
			class := java.EnclosingTypeName(f, decl)
			for _, usage := range java.FieldAccessUsages(f, scope, oldName) {
				if fieldReceiverIs(f, usage, class) {
					plan.AddNode(path, usage, newName)
				}
			}
		}
	}
	return plan, nil
}

// declarationOf maps a declaration's name node to the declaration
// statement that owns it.
func declarationOf(nameNode *sitter.Node, kind java.Kind) *sitter.Node {
	parent := nameNode.Parent()
	if parent == nil {
		return nil
	}
	switch kind {
	case java.KindParameterName:
		return parent
	case java.KindFieldName, java.KindLocalVariableName:
		return parent.Parent()
	}
	return nil
}

// isUsage reports whether an identifier occurrence really references the
// declared variable: not a declaration of something else, not a member
// or method name, and resolving to the same declared type.
func (e *Engine) isUsage(f *sourcefile.File, id, declName *sitter.Node, wantType string) bool {
	if id == nil || java.SameNode(id, declName) {
		return false
	}
	parent := id.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "variable_declarator", "formal_parameter":
		if java.SameNode(parent.ChildByFieldName("name"), id) {
			return false
		}
	case "method_invocation":
		if java.SameNode(parent.ChildByFieldName("name"), id) {
			return false
		}
	case "field_access":
		// The member side of obj.member goes through the
		// receiver-checked scan, only the receiver side counts here.
		if java.SameNode(parent.ChildByFieldName("field"), id) {
			return false
		}
	case "scoped_identifier":
		return false
	}
	return java.ResolveType(f, id) == wantType
}

// fieldReceiverIs reports whether a field-access usage reads the field
// through this or through a variable of the declaring class.
func fieldReceiverIs(f *sourcefile.File, usage *sitter.Node, class string) bool {
	access := usage.Parent()
	if access == nil || access.Type() != "field_access" {
		return false
	}
	obj := access.ChildByFieldName("object")
	if obj == nil {
		return false
	}
	switch obj.Type() {
	case "this":
		return true
	case "identifier":
		return class != "" && java.ResolveType(f, obj) == class
	}
	return false
}

func (e *Engine) rel(path string) string {
	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// movedPath is where a staged file rename will land.
func movedPath(mv Move) string {
	return filepath.Join(filepath.Dir(mv.Path), mv.NewStem+filepath.Ext(mv.Path))
}
