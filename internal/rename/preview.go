package rename

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FileDiff is the rendered preview of one file's planned changes.
type FileDiff struct {
	Path    string `json:"path"`
	NewPath string `json:"newPath,omitempty"`
	Unified string `json:"unified"`
}

// previews renders a patch per touched file without mutating anything.
func (e *Engine) previews(plan *Plan, units *unitSet) []FileDiff {
	dmp := diffmatchpatch.New()
	var out []FileDiff
	for _, path := range plan.Files() {
		unit := units.get(path)
		if unit == nil {
			continue
		}
		before := string(unit.Source())
		after := string(splice(unit.Source(), plan.EditsFor(path)))
		diffs := dmp.DiffMain(before, after, false)
		fd := FileDiff{
			Path:    e.rel(path),
			Unified: dmp.PatchToText(dmp.PatchMake(before, diffs)),
		}
		if mv, ok := plan.MoveFor(path); ok {
			fd.NewPath = e.rel(movedPath(mv))
		}
		out = append(out, fd)
	}
	return out
}

// splice applies edits, already sorted by descending start byte, to a
// copy of src.
func splice(src []byte, edits []Edit) []byte {
	out := append([]byte(nil), src...)
	for _, ed := range edits {
		next := make([]byte, 0, len(out)+len(ed.Replacement)-int(ed.EndByte-ed.StartByte))
		next = append(next, out[:ed.StartByte]...)
		next = append(next, ed.Replacement...)
		next = append(next, out[ed.EndByte:]...)
		out = next
	}
	return out
}
