package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"jref/internal/config"
	jreferrors "jref/internal/errors"
)

var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// Files returns every Java source file under root as sorted relative
// paths, honoring the project's .gitignore, the configured ignore
// directories, and skipping hidden directories.
func Files(root string, cfg *config.Config) ([]string, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ignored := make(map[string]bool, len(cfg.Project.Ignore))
	for _, dir := range cfg.Project.Ignore {
		ignored[dir] = true
	}
	gi := loadGitignore(root)

	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if skipDirs[name] || ignored[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !strings.HasSuffix(name, ".java") {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot walk "+root, err)
	}

	sort.Strings(out)
	return out, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
