package rename

import (
	"path/filepath"

	"jref/internal/backup"
	"jref/internal/config"
	"jref/internal/project"
	"jref/internal/sourcefile"
)

// Lister enumerates candidate source files for a project-wide rename.
// The engine treats the result as an opaque snapshot of the project.
type Lister interface {
	JavaFiles(root string) ([]string, error)
}

// Snapshotter captures file state before a plan is applied.
type Snapshotter interface {
	Snapshot(operation string, files []string) (*backup.Manifest, error)
}

// ProjectLister walks the project tree, honoring the configured source
// root and ignore rules.
type ProjectLister struct {
	Cfg *config.Config
}

func (l ProjectLister) JavaFiles(root string) ([]string, error) {
	cfg := l.Cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	mode, err := project.ParseSourceRootMode(cfg.Project.SourceRoot)
	if err != nil {
		mode = project.RootAll
	}
	base := project.SourceRoot(root, mode)
	rels, err := project.Files(base, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = filepath.Join(base, rel)
	}
	return out, nil
}

// unitSet tracks the parsed units a plan was built against, keyed by
// the path each unit was loaded from.
type unitSet struct {
	files map[string]*sourcefile.File
}

func newUnitSet() *unitSet {
	return &unitSet{files: make(map[string]*sourcefile.File)}
}

func (u *unitSet) add(f *sourcefile.File) {
	u.files[f.BoundPath()] = f
}

func (u *unitSet) get(path string) *sourcefile.File {
	return u.files[path]
}

func (u *unitSet) closeAll() {
	for _, f := range u.files {
		f.Close()
	}
}
