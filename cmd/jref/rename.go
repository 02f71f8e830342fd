package main

import (
	"strings"

	"github.com/spf13/cobra"

	"jref/internal/backup"
	jreferrors "jref/internal/errors"
	"jref/internal/paths"
	"jref/internal/rename"
	"jref/internal/sourcefile"
)

var (
	renameFile    string
	renameLine    int
	renameColumn  int
	renameNewName string
	renameIDE     string
	renameDryRun  bool
	renameSCIP    string
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename the identifier under a cursor across the project",
	Long: `Rename the identifier at a cursor position.

Classes are renamed project-wide: the declaration and its file, direct
imports, and declared variables of the type whose names follow the
type's naming convention. Fields, parameters, and locals are renamed
within their declaring file. Method renames are not supported.

Cursor coordinates are interpreted per --ide: cli sends 1-based line
and column, nvim and vscode send a 1-based line with a 0-based column.

Examples:
  jref rename -f src/main/java/com/example/Account.java -l 3 -c 14 -n Wallet
  jref rename -f Account.java -l 3 -c 14 -n Wallet --dry-run --format text
  jref rename -f Account.java -l 3 -c 14 -n wallet_v2 --ide nvim`,
	Run: runRename,
}

func init() {
	renameCmd.Flags().StringVarP(&renameFile, "file", "f", "", "Source file under the cursor")
	renameCmd.Flags().IntVarP(&renameLine, "line", "l", 0, "Cursor line")
	renameCmd.Flags().IntVarP(&renameColumn, "column", "c", 0, "Cursor column")
	renameCmd.Flags().StringVarP(&renameNewName, "new-name", "n", "", "Replacement name")
	renameCmd.Flags().StringVar(&renameIDE, "ide", "cli", "Cursor convention: cli, nvim, or vscode")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Build and show the plan without applying it")
	renameCmd.Flags().StringVar(&renameSCIP, "scip", "", "Also write the plan as a SCIP index to this path")
	renameCmd.MarkFlagRequired("file")
	renameCmd.MarkFlagRequired("line")
	renameCmd.MarkFlagRequired("column")
	renameCmd.MarkFlagRequired("new-name")
	rootCmd.AddCommand(renameCmd)
}

// conventionFor maps an --ide value to a cursor numbering convention.
func conventionFor(ide string) (sourcefile.Convention, error) {
	switch strings.ToLower(ide) {
	case "", "cli":
		return sourcefile.RowColOneBased, nil
	case "nvim", "vscode":
		return sourcefile.RowOneColZero, nil
	}
	return sourcefile.RowColOneBased, jreferrors.New(jreferrors.InvalidArgument,
		"unknown --ide "+ide+" (want cli, nvim or vscode)")
}

func runRename(cmd *cobra.Command, args []string) {
	s := mustSession(true)

	conv, err := conventionFor(renameIDE)
	if err != nil {
		emit(s, "rename", nil, err)
		return
	}
	file := paths.Absolute(renameFile, s.root)

	var snaps rename.Snapshotter
	if s.cfg.Backup.Enabled {
		snaps = backup.NewStore(s.root, s.cfg, s.log)
	}
	engine := rename.New(s.root, s.cfg, s.namer(), s.log, nil, snaps)

	rep, err := engine.Rename(cmd.Context(), rename.Request{
		File:       file,
		Line:       renameLine,
		Column:     renameColumn,
		Convention: conv,
		NewName:    renameNewName,
		DryRun:     renameDryRun,
	})
	if renameSCIP != "" && rep != nil && rep.Plan != nil {
		if werr := engine.WriteSCIP(rep, renameSCIP); werr != nil {
			s.warnings = append(s.warnings, "SCIP index not written: "+werr.Error())
		}
	}
	emit(s, "rename", rep, err)
}
