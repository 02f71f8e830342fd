package rename

import (
	"context"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	jreferrors "jref/internal/errors"
	"jref/internal/java"
	"jref/internal/naming"
	"jref/internal/sourcefile"
)

// classTarget is the class being renamed, as candidate files see it.
type classTarget struct {
	oldName string
	newName string
	pkg     string
}

// scanWorkers bounds the parallel candidate scan.
const scanWorkers = 8

// buildClassPlan stages a project-wide class rename: the declaration and
// its file, then for every file that can see the class by simple name,
// its imports, declared variables of the type, and their usages.
func (e *Engine) buildClassPlan(ctx context.Context, rep *Report, units *unitSet, f *sourcefile.File, oldName, requested string) (*Plan, error) {
	newName := naming.ToPascal(requested)
	if newName == "" {
		return nil, jreferrors.New(jreferrors.InvalidArgument, "empty replacement name")
	}
	if newName == oldName {
		return nil, jreferrors.New(jreferrors.InvalidArgument, "new name equals the current name")
	}

	decl := java.FindTypeByName(f, oldName)
	if decl == nil {
		return nil, jreferrors.New(jreferrors.NotFound, "no declaration of "+oldName+" in "+e.rel(f.BoundPath()))
	}

	target := classTarget{oldName: oldName, newName: newName, pkg: java.PackageName(f)}
	plan := NewPlan("class", oldName, newName)
	declPath := f.BoundPath()
	rep.Package = target.pkg
	rep.defPath = declPath
	rep.defSpan = NodeSpan(decl.NameNode)

	plan.AddNode(declPath, decl.NameNode, newName)
	if f.Stem() == oldName {
		plan.AddMove(declPath, newName)
	}
	for _, ed := range e.classEdits(f, target) {
		plan.Add(ed.Path, ed.Span, ed.Replacement)
	}

	files, err := e.list.JavaFiles(e.root)
	if err != nil {
		return nil, err
	}
	scans, err := e.scanCandidates(ctx, files, declPath, target)
	if err != nil {
		return nil, err
	}
	for _, scan := range scans {
		units.add(scan.unit)
		for _, ed := range scan.edits {
			plan.Add(ed.Path, ed.Span, ed.Replacement)
		}
	}
	return plan, nil
}

type fileScan struct {
	path  string
	unit  *sourcefile.File
	edits []Edit
	err   error
}

// scanCandidates parses and scans candidate files in parallel. Scanning
// is read-only; results merge in path order so plans are deterministic.
// Any read failure aborts the whole build.
func (e *Engine) scanCandidates(ctx context.Context, files []string, skip string, target classTarget) ([]fileScan, error) {
	var paths []string
	for _, path := range files {
		if path != skip {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	jobs := make(chan string)
	results := make(chan fileScan, len(paths))

	workers := scanWorkers
	if len(paths) < workers {
		workers = len(paths)
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- e.scanOne(ctx, path, target)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var out []fileScan
	var firstErr error
	for res := range results {
		switch {
		case res.err != nil:
			if firstErr == nil {
				firstErr = res.err
			}
		case res.unit != nil:
			out = append(out, res)
		}
	}
	if firstErr == nil && ctx.Err() != nil {
		firstErr = jreferrors.Wrap(jreferrors.InternalError, "candidate scan cancelled", ctx.Err())
	}
	if firstErr != nil {
		for _, res := range out {
			res.unit.Close()
		}
		return nil, firstErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

func (e *Engine) scanOne(ctx context.Context, path string, target classTarget) fileScan {
	f, err := java.Open(ctx, path)
	if err != nil {
		return fileScan{path: path, err: err}
	}
	edits := e.classEdits(f, target)
	if len(edits) == 0 {
		f.Close()
		return fileScan{path: path}
	}
	return fileScan{path: path, unit: f, edits: edits}
}

// classEdits stages everything a class rename changes inside one file.
// A file participates only when it can see the class by simple name:
// same package, a direct import, or a wildcard import of the class's
// package. Direct imports are rewritten; wildcard imports already cover
// the new name and stay untouched.
func (e *Engine) classEdits(f *sourcefile.File, target classTarget) []Edit {
	samePkg := java.PackageName(f) == target.pkg
	var direct *java.Import
	imports := java.Imports(f)
	for i := range imports {
		if f.TextOf(imports[i].NameNode) == target.oldName && f.TextOf(imports[i].PackageNode) == target.pkg {
			direct = &imports[i]
			break
		}
	}
	wildcard := false
	for _, w := range java.WildcardImports(f) {
		if f.TextOf(w.PackageNode) == target.pkg {
			wildcard = true
			break
		}
	}
	if !samePkg && direct == nil && !wildcard {
		return nil
	}

	path := f.BoundPath()
	var edits []Edit
	add := func(n *sitter.Node, replacement string) {
		edits = append(edits, Edit{Path: path, Span: NodeSpan(n), Replacement: replacement})
	}

	if direct != nil {
		add(direct.NameNode, target.newName)
	}
	e.fieldEdits(f, target, add)
	e.paramEdits(f, target, add)
	e.declEdits(f, target, add)
	return edits
}

type addFunc func(n *sitter.Node, replacement string)

// fieldEdits stages fields declared with the target type, including
// collection fields whose element type matches.
func (e *Engine) fieldEdits(f *sourcefile.File, target classTarget, add addFunc) {
	for _, field := range java.FieldsOfType(f, f.Root(), target.oldName) {
		for _, info := range java.FieldInfos(f, field) {
			if info.TypeNode == nil || f.TextOf(info.TypeNode) != target.oldName {
				continue
			}
			add(info.TypeNode, target.newName)
			e.variableNameEdits(f, field, info.NameNode, info.FullTypeNode, target, add, java.Identifiers, true)
		}
	}
}

// paramEdits stages formal parameters of the target type, with usages
// found through expression positions.
func (e *Engine) paramEdits(f *sourcefile.File, target classTarget, add addFunc) {
	for _, param := range java.MethodParams(f, nil) {
		info := java.ParamInfo(f, param)
		if info == nil || info.TypeNode == nil || f.TextOf(info.TypeNode) != target.oldName {
			continue
		}
		add(info.TypeNode, target.newName)
		e.variableNameEdits(f, param, info.NameNode, info.FullTypeNode, target, add, java.ExpressionUsages, false)
	}
}

// declEdits stages declarations whose full declared type text equals the
// target name, across fields, parameters, and locals. Initializers that
// construct the type are rewritten along with the declaration.
func (e *Engine) declEdits(f *sourcefile.File, target classTarget, add addFunc) {
	for _, decl := range java.DeclarationsOfType(f, target.oldName) {
		for _, info := range java.VarInfos(f, decl) {
			if info.TypeNode != nil && f.TextOf(info.TypeNode) == target.oldName {
				add(info.TypeNode, target.newName)
			}
			if info.ValueTypeNode != nil && f.TextOf(info.ValueTypeNode) == target.oldName {
				add(info.ValueTypeNode, target.newName)
			}
			e.variableNameEdits(f, decl, info.NameNode, info.FullTypeNode, target, add,
				java.Identifiers, decl.Type() == "field_declaration")
		}
	}
}

type usageLister func(f *sourcefile.File, scope *sitter.Node, name string) []*sitter.Node

// variableNameEdits renames one matched variable and its in-scope usages
// when its current name follows the convention for the old type.
// Hand-chosen names keep their name; only the type changes.
func (e *Engine) variableNameEdits(f *sourcefile.File, decl *sitter.Node, nameNode, fullTypeNode *sitter.Node, target classTarget, add addFunc, usages usageLister, field bool) {
	if nameNode == nil || fullTypeNode == nil {
		return
	}
	current := f.TextOf(nameNode)
	collection := e.namer.IsCollectionType(f.TextOf(fullTypeNode))
	newVar := e.namer.NewName(current, target.oldName, target.newName, collection)
	if newVar == current {
		return
	}
	add(nameNode, newVar)

	scope := java.ScopeOf(decl)
	if scope == nil {
		return
	}
	wantType := java.TypeSpelling(f, fullTypeNode)
	for _, id := range usages(f, scope, current) {
		if e.isUsage(f, id, nameNode, wantType) {
			add(id, newVar)
		}
	}
	if field {
		class := java.EnclosingTypeName(f, decl)
		for _, usage := range java.FieldAccessUsages(f, scope, current) {
			if fieldReceiverIs(f, usage, class) {
				add(usage, newVar)
			}
		}
	}
}
