package main

import (
	"github.com/spf13/cobra"

	"jref/internal/paths"
	"jref/internal/rename"
)

var (
	infoFile   string
	infoLine   int
	infoColumn int
	infoIDE    string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the identifier under a cursor",
	Long: `Describe the node at a cursor position: its text, declaration kind,
resolved type, enclosing class, and whether a rename could start there.

Examples:
  jref info -f src/main/java/com/example/Account.java -l 3 -c 14
  jref info -f Account.java -l 3 -c 14 --ide vscode --format text`,
	Run: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFile, "file", "f", "", "Source file under the cursor")
	infoCmd.Flags().IntVarP(&infoLine, "line", "l", 0, "Cursor line")
	infoCmd.Flags().IntVarP(&infoColumn, "column", "c", 0, "Cursor column")
	infoCmd.Flags().StringVar(&infoIDE, "ide", "cli", "Cursor convention: cli, nvim, or vscode")
	infoCmd.MarkFlagRequired("file")
	infoCmd.MarkFlagRequired("line")
	infoCmd.MarkFlagRequired("column")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	s := mustSession(false)

	conv, err := conventionFor(infoIDE)
	if err != nil {
		emit(s, "info", nil, err)
		return
	}
	file := paths.Absolute(infoFile, s.root)

	engine := rename.New(s.root, s.cfg, nil, s.log, nil, nil)
	info, err := engine.Inspect(cmd.Context(), file, infoLine, infoColumn, conv)
	emit(s, "info", info, err)
}
