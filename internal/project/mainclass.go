package project

import (
	"context"
	"path/filepath"

	"jref/internal/config"
	jreferrors "jref/internal/errors"
	"jref/internal/java"
	"jref/internal/sourcefile"
)

// MainClass is a runnable entry point of the project.
type MainClass struct {
	Path      string `json:"path"` // relative to the search root
	ClassName string `json:"className"`
	Package   string `json:"package,omitempty"`
}

// FindMainClass scans the project's main sources for a public static void
// main entry point and returns the first match in path order.
func FindMainClass(ctx context.Context, root string, cfg *config.Config) (*MainClass, error) {
	base := SourceRoot(root, RootMain)
	files, err := Files(base, cfg)
	if err != nil {
		return nil, err
	}
	for _, rel := range files {
		select {
		case <-ctx.Done():
			return nil, jreferrors.Wrap(jreferrors.InternalError, "scan cancelled", ctx.Err())
		default:
		}
		f, err := java.Open(ctx, filepath.Join(base, rel))
		if err != nil {
			continue
		}
		mc := mainClassIn(f, rel)
		f.Close()
		if mc != nil {
			return mc, nil
		}
	}
	return nil, jreferrors.New(jreferrors.NotFound, "no runnable main method found")
}

func mainClassIn(f *sourcefile.File, rel string) *MainClass {
	decl := java.PublicType(f)
	if decl == nil || decl.Node.Type() != "class_declaration" {
		return nil
	}
	for _, m := range java.Methods(f, decl.Node) {
		if java.IsMainMethod(f, m) {
			return &MainClass{
				Path:      rel,
				ClassName: f.TextOf(decl.NameNode),
				Package:   java.PackageName(f),
			}
		}
	}
	return nil
}
