package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"jref/internal/envelope"
	"jref/internal/project"
	"jref/internal/rename"
	"jref/internal/version"
)

// emit renders one command's outcome and terminates the process with a
// non-zero status when err is set. Machine formats always carry the full
// envelope; text mode renders a per-command summary.
func emit(s *session, command string, data interface{}, err error) {
	format, ferr := envelope.ParseFormat(formatFlag)
	if ferr != nil {
		s.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
		os.Exit(1)
	}

	b := envelope.New().
		Data(data).
		Command(command).
		ProjectRoot(s.root).
		Duration(s.durationMs())
	for _, w := range s.warnings {
		b.Warn(w)
	}
	if err != nil {
		b.Error(err.Error())
	}
	resp := b.Build()

	if format == envelope.FormatText {
		renderText(os.Stdout, resp, data, err)
	} else if encErr := envelope.Encode(os.Stdout, resp, format); encErr != nil {
		s.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", encErr)
		os.Exit(1)
	}

	s.close()
	if err != nil {
		os.Exit(1)
	}
}

// setupColor disables colors when stdout is not a terminal.
func setupColor() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// renderText formats a response for humans. Types without a dedicated
// renderer fall back to the JSON envelope.
func renderText(w io.Writer, resp *envelope.Response, data interface{}, err error) {
	setupColor()

	switch v := data.(type) {
	case *rename.Report:
		renderRenameText(w, v)
	case *rename.Inspection:
		renderInspectionText(w, v)
	case *project.MainClass:
		renderMainClassText(w, v)
	case *BackupListCLI:
		renderBackupListText(w, v)
	case *RestoreResultCLI:
		renderRestoreText(w, v)
	case *NewFileCLI:
		renderNewFileText(w, v)
	case *VersionCLI:
		renderVersionText(w, v)
	default:
		envelope.Encode(w, resp, envelope.FormatJSON)
	}

	for _, warn := range resp.Warnings {
		color.New(color.FgYellow).Fprintf(w, "! %s\n", warn.Message)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
	}
}

func renderRenameText(w io.Writer, rep *rename.Report) {
	if rep == nil {
		return
	}
	switch rep.Outcome {
	case rename.OutcomeDryRun:
		color.New(color.FgCyan).Fprintf(w, "%s\n", rep.Message)
		for _, fd := range rep.Previews {
			fmt.Fprintf(w, "\n--- %s\n", fd.Path)
			if fd.NewPath != "" {
				fmt.Fprintf(w, "+++ %s\n", fd.NewPath)
			}
			fmt.Fprint(w, fd.Unified)
		}
	case rename.OutcomeApplied:
		color.New(color.FgGreen).Fprintf(w, "%s\n", rep.Message)
		for _, path := range rep.Saved {
			fmt.Fprintf(w, "  %s\n", path)
		}
	case rename.OutcomePartial:
		color.New(color.FgYellow).Fprintf(w, "%s\n", rep.Message)
		for _, path := range rep.Saved {
			fmt.Fprintf(w, "  saved %s\n", path)
		}
		color.New(color.FgRed).Fprintf(w, "  failed %s\n", rep.FailedFile)
	default:
		color.New(color.FgRed).Fprintf(w, "%s\n", rep.Message)
	}
	for _, mv := range rep.Moves {
		fmt.Fprintf(w, "  %s -> %s\n", mv.From, mv.To)
	}
	if rep.BackupID != "" {
		fmt.Fprintf(w, "  backup %s\n", rep.BackupID)
	}
}

func renderInspectionText(w io.Writer, info *rename.Inspection) {
	if info == nil {
		return
	}
	name := info.Name
	if name == "" {
		name = "(" + info.NodeType + ")"
	}
	color.New(color.Bold).Fprintf(w, "%s", name)
	fmt.Fprintf(w, " [%s]", info.Kind)
	if info.Type != "" {
		fmt.Fprintf(w, " : %s", info.Type)
	}
	fmt.Fprintln(w)
	if info.Class != "" {
		fmt.Fprintf(w, "  class   %s\n", info.Class)
	}
	if info.Package != "" {
		fmt.Fprintf(w, "  package %s\n", info.Package)
	}
	fmt.Fprintf(w, "  span    bytes %d..%d, line %d col %d\n",
		info.Span.StartByte, info.Span.EndByte, info.Span.StartRow+1, info.Span.StartCol)
	fmt.Fprintf(w, "  renameable: %v\n", info.Renameable)
}

func renderMainClassText(w io.Writer, mc *project.MainClass) {
	if mc == nil {
		return
	}
	qualified := mc.ClassName
	if mc.Package != "" {
		qualified = mc.Package + "." + mc.ClassName
	}
	color.New(color.Bold).Fprintf(w, "%s\n", qualified)
	fmt.Fprintf(w, "  %s\n", mc.Path)
}

func renderBackupListText(w io.Writer, list *BackupListCLI) {
	if list == nil || len(list.Backups) == 0 {
		fmt.Fprintln(w, "no backups")
		return
	}
	for _, b := range list.Backups {
		color.New(color.Bold).Fprintf(w, "%s\n", b.Id)
		fmt.Fprintf(w, "  %s\n", b.Operation)
		fmt.Fprintf(w, "  %s, %d files, %s\n",
			humanize.Time(b.CreatedAt), b.Files, humanize.Bytes(uint64(b.SizeBytes)))
	}
}

func renderRestoreText(w io.Writer, res *RestoreResultCLI) {
	if res == nil {
		return
	}
	color.New(color.FgGreen).Fprintf(w, "restored %d files from %s\n", len(res.Restored), res.Id)
	for _, path := range res.Restored {
		fmt.Fprintf(w, "  %s\n", path)
	}
}

func renderNewFileText(w io.Writer, nf *NewFileCLI) {
	if nf == nil {
		return
	}
	color.New(color.FgGreen).Fprintf(w, "created %s\n", nf.Path)
	fmt.Fprintf(w, "  %s %s in package %s\n", nf.Type, nf.Name, nf.Package)
}

func renderVersionText(w io.Writer, v *VersionCLI) {
	if v == nil {
		return
	}
	fmt.Fprintln(w, version.Full())
}
