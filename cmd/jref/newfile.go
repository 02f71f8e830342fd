package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jref/internal/project"
)

var (
	newFilePackage    string
	newFileName       string
	newFileType       string
	newFileSourceRoot string
)

// NewFileCLI is the new-file command payload.
type NewFileCLI struct {
	Path    string `json:"path"`
	Package string `json:"package"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

var newFileCmd = &cobra.Command{
	Use:   "new-file",
	Short: "Create a package-correct Java source file",
	Long: `Create a new Java type under the chosen source root, with the
package directories and declaration skeleton filled in. The name is
normalized to PascalCase; existing files are never overwritten.

Examples:
  jref new-file -p com.example.service -n payment_service
  jref new-file -p com.example.model -n Account -t record
  jref new-file -p com.example -n MainTest -t class --source-root test`,
	Run: runNewFile,
}

func init() {
	newFileCmd.Flags().StringVarP(&newFilePackage, "package", "p", "", "Package for the new type")
	newFileCmd.Flags().StringVarP(&newFileName, "name", "n", "", "Type name (normalized to PascalCase)")
	newFileCmd.Flags().StringVarP(&newFileType, "type", "t", "class",
		"Kind of type: class, interface, enum, record, or annotation")
	newFileCmd.Flags().StringVar(&newFileSourceRoot, "source-root", "main",
		"Source root to create under: main or test")
	newFileCmd.MarkFlagRequired("package")
	newFileCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(newFileCmd)
}

func runNewFile(cmd *cobra.Command, args []string) {
	s := mustSession(true)

	ft, err := project.ParseFileType(newFileType)
	if err != nil {
		emit(s, "new-file", nil, err)
		return
	}
	mode, err := project.ParseSourceRootMode(newFileSourceRoot)
	if err != nil {
		emit(s, "new-file", nil, err)
		return
	}

	path, err := project.Create(s.root, newFilePackage, newFileName, ft, mode)
	if err != nil {
		emit(s, "new-file", nil, err)
		return
	}
	rel, rerr := filepath.Rel(s.root, path)
	if rerr != nil {
		rel = path
	}
	emit(s, "new-file", &NewFileCLI{
		Path:    filepath.ToSlash(rel),
		Package: newFilePackage,
		Name:    strings.TrimSuffix(filepath.Base(path), ".java"),
		Type:    string(ft),
	}, nil)
}
