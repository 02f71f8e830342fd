package main

import (
	"github.com/spf13/cobra"

	"jref/internal/project"
)

var mainClassCmd = &cobra.Command{
	Use:   "main-class",
	Short: "Locate the project's runnable entry point",
	Long: `Scan the main sources for the first public class declaring a
public static void main(String[] args) method.

Examples:
  jref main-class
  jref main-class --cwd ~/work/billing --format text`,
	Run: runMainClass,
}

func init() {
	rootCmd.AddCommand(mainClassCmd)
}

func runMainClass(cmd *cobra.Command, args []string) {
	s := mustSession(true)
	mc, err := project.FindMainClass(cmd.Context(), s.root, s.cfg)
	emit(s, "main-class", mc, err)
}
