package rename

import (
	"fmt"
	"sort"

	jreferrors "jref/internal/errors"
)

type applyOutcome struct {
	applied int
	saved   []string
	moves   []MoveResult
	failed  string
	err     error
}

// applyPlan executes a built plan. Edits are grouped per file and
// spliced in descending start-byte order, then each touched unit is
// saved. Nothing is undone on failure: files saved before the failing
// one stay saved, and the outcome says exactly how far it got.
func (e *Engine) applyPlan(plan *Plan, units *unitSet) *applyOutcome {
	out := &applyOutcome{}
	paths := plan.Files()

	if err := checkPlan(plan, units, paths); err != nil {
		out.err = err
		return out
	}

	fail := func(path string, err error) *applyOutcome {
		out.failed = path
		out.err = jreferrors.Wrap(jreferrors.PartialApply,
			fmt.Sprintf("partially applied with %d files saved, error on file %s", len(out.saved), e.rel(path)),
			err)
		return out
	}

	for _, path := range paths {
		unit := units.get(path)
		for _, ed := range plan.EditsFor(path) {
			if err := unit.Update(int(ed.StartByte), int(ed.EndByte), ed.Replacement); err != nil {
				return fail(path, err)
			}
			out.applied++
		}
		if mv, ok := plan.MoveFor(path); ok {
			if err := unit.Rename(mv.NewStem); err != nil {
				return fail(path, err)
			}
		}
		if err := unit.Save(); err != nil {
			return fail(path, err)
		}
		out.saved = append(out.saved, path)
		if _, ok := plan.MoveFor(path); ok {
			out.moves = append(out.moves, MoveResult{From: e.rel(path), To: e.rel(unit.BoundPath())})
		}
	}
	return out
}

// checkPlan rejects a plan before any mutation: every touched file must
// have a unit, and no two edits of a file may overlap.
func checkPlan(plan *Plan, units *unitSet, paths []string) error {
	for _, path := range paths {
		if units.get(path) == nil {
			return jreferrors.New(jreferrors.InternalError, "no parsed unit for "+path)
		}
		edits := plan.EditsFor(path)
		sort.Slice(edits, func(i, j int) bool { return edits[i].StartByte < edits[j].StartByte })
		for i := 1; i < len(edits); i++ {
			if edits[i].StartByte < edits[i-1].EndByte {
				return jreferrors.New(jreferrors.PlanConflict,
					fmt.Sprintf("overlapping edits in %s at byte %d", path, edits[i].StartByte))
			}
		}
	}
	return nil
}
