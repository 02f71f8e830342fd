package rename

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	jreferrors "jref/internal/errors"
	"jref/internal/version"
)

// WriteSCIP exports the occurrences a plan touches as a SCIP index, so
// code-intel tooling can ingest the rename like any other indexer run.
// The definition site carries the definition role; every other staged
// occurrence is recorded as a reference to the same symbol.
func (e *Engine) WriteSCIP(rep *Report, out string) error {
	if rep == nil || rep.Plan == nil {
		return jreferrors.New(jreferrors.InvalidArgument, "no plan to export")
	}
	plan := rep.Plan

	index := &scippb.Index{
		Metadata: &scippb.Metadata{
			Version: scippb.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scippb.ToolInfo{
				Name:      "jref",
				Version:   version.Version,
				Arguments: []string{"rename", plan.OldName(), plan.NewName()},
			},
			ProjectRoot:          "file://" + filepath.ToSlash(e.root),
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}

	symbol := scipSymbol(plan.Kind(), rep.Package, plan.OldName())
	for _, path := range plan.Files() {
		edits := plan.EditsFor(path)
		if len(edits) == 0 {
			continue
		}
		sort.Slice(edits, func(i, j int) bool { return edits[i].StartByte < edits[j].StartByte })

		doc := &scippb.Document{
			Language:     "java",
			RelativePath: e.rel(path),
		}
		for _, ed := range edits {
			occ := &scippb.Occurrence{
				Range:  scipRange(ed.Span),
				Symbol: symbol,
			}
			if path == rep.defPath && ed.StartByte == rep.defSpan.StartByte && ed.EndByte == rep.defSpan.EndByte {
				occ.SymbolRoles = int32(scippb.SymbolRole_Definition)
			}
			doc.Occurrences = append(doc.Occurrences, occ)
		}
		if path == rep.defPath {
			doc.Symbols = []*scippb.SymbolInformation{{
				Symbol:      symbol,
				DisplayName: plan.NewName(),
			}}
		}
		index.Documents = append(index.Documents, doc)
	}

	data, err := proto.Marshal(index)
	if err != nil {
		return jreferrors.Wrap(jreferrors.InternalError, "cannot encode SCIP index", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return jreferrors.Wrap(jreferrors.IoError, "cannot write "+out, err)
	}
	e.log.Debug("SCIP index written", "path", out, "documents", len(index.Documents))
	return nil
}

// scipRange encodes a span the compact SCIP way: three elements when the
// occurrence stays on one line.
func scipRange(s Span) []int32 {
	if s.StartRow == s.EndRow {
		return []int32{int32(s.StartRow), int32(s.StartCol), int32(s.EndCol)}
	}
	return []int32{int32(s.StartRow), int32(s.StartCol), int32(s.EndRow), int32(s.EndCol)}
}

// scipSymbol builds the symbol string for the renamed declaration.
// Variables are file-local symbols; types get a package-qualified
// descriptor.
func scipSymbol(kind, pkg, name string) string {
	if kind == "variable" {
		return "local " + name
	}
	pkgPath := strings.ReplaceAll(pkg, ".", "/")
	if pkgPath == "" {
		pkgPath = "_"
	}
	return "scip-java . . . " + pkgPath + "/" + name + "#"
}
