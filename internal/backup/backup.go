// Package backup snapshots source files before a refactoring touches
// them, so a botched or regretted rename can be rolled back with
// `jref restore`. Snapshots are zstd-compressed tar archives under
// .jref/backups, each paired with a TOML manifest carrying per-file
// BLAKE2b checksums.
package backup

import (
	"archive/tar"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"jref/internal/config"
	jreferrors "jref/internal/errors"
	"jref/internal/paths"
	"jref/internal/slogutil"
)

const backupDir = ".jref/backups"

// Entry describes one file captured in a snapshot.
type Entry struct {
	Path     string `toml:"path"`     // project-relative, slash-separated
	Checksum string `toml:"checksum"` // hex BLAKE2b-256 of the captured content
	Size     int64  `toml:"size"`
}

// Manifest describes a snapshot: which operation it protects and which
// files it captured.
type Manifest struct {
	ID        string    `toml:"id"`
	Operation string    `toml:"operation"`
	CreatedAt time.Time `toml:"created_at"`
	Files     []Entry   `toml:"files"`
}

// Store manages the snapshots of one project.
type Store struct {
	root string
	dir  string
	keep int
	log  *slog.Logger
}

// NewStore returns a snapshot store rooted at the project directory.
// Retention follows cfg.Backup.Keep; a nil config keeps the default.
func NewStore(root string, cfg *config.Config, log *slog.Logger) *Store {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = slogutil.NewDiscardLogger()
	}
	return &Store{
		root: root,
		dir:  filepath.Join(root, filepath.FromSlash(backupDir)),
		keep: cfg.Backup.Keep,
		log:  log,
	}
}

// Snapshot captures the current content of the given files into a new
// archive and returns its manifest. Paths may be absolute or relative
// to the project root, but must stay inside it.
func (s *Store) Snapshot(operation string, files []string) (*Manifest, error) {
	if len(files) == 0 {
		return nil, jreferrors.New(jreferrors.InvalidArgument, "nothing to snapshot")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot create "+s.dir, err)
	}

	m := &Manifest{
		ID:        uuid.New().String(),
		Operation: operation,
		CreatedAt: time.Now().UTC(),
	}

	archive := s.archivePath(m.ID)
	out, err := os.Create(archive)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot create "+archive, err)
	}

	fail := func(err error) (*Manifest, error) {
		out.Close()
		os.Remove(archive)
		return nil, err
	}

	enc, err := zstd.NewWriter(out)
	if err != nil {
		return fail(jreferrors.Wrap(jreferrors.InternalError, "zstd writer", err))
	}
	tw := tar.NewWriter(enc)

	for _, file := range files {
		rel, err := s.relPath(file)
		if err != nil {
			return fail(err)
		}
		data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
		if err != nil {
			return fail(jreferrors.Wrap(jreferrors.IoError, "cannot read "+rel, err))
		}
		hdr := &tar.Header{
			Name:    rel,
			Mode:    0644,
			Size:    int64(len(data)),
			ModTime: m.CreatedAt,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fail(jreferrors.Wrap(jreferrors.IoError, "cannot archive "+rel, err))
		}
		if _, err := tw.Write(data); err != nil {
			return fail(jreferrors.Wrap(jreferrors.IoError, "cannot archive "+rel, err))
		}
		sum := blake2b.Sum256(data)
		m.Files = append(m.Files, Entry{
			Path:     rel,
			Checksum: hex.EncodeToString(sum[:]),
			Size:     int64(len(data)),
		})
	}

	if err := tw.Close(); err != nil {
		return fail(jreferrors.Wrap(jreferrors.IoError, "cannot finish archive", err))
	}
	if err := enc.Close(); err != nil {
		return fail(jreferrors.Wrap(jreferrors.IoError, "cannot finish archive", err))
	}
	if err := out.Close(); err != nil {
		return fail(jreferrors.Wrap(jreferrors.IoError, "cannot finish archive", err))
	}

	if err := s.writeManifest(m); err != nil {
		os.Remove(archive)
		return nil, err
	}
	s.log.Debug("snapshot written", "id", m.ID, "operation", operation, "files", len(m.Files))

	if err := s.prune(); err != nil {
		s.log.Warn("backup retention failed", "error", err)
	}
	return m, nil
}

// Manifest loads the manifest of one snapshot.
func (s *Store) Manifest(id string) (*Manifest, error) {
	data, err := os.ReadFile(s.manifestPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jreferrors.New(jreferrors.NotFound, "no backup with id "+id)
		}
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot read backup manifest", err)
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "malformed backup manifest "+id, err)
	}
	return &m, nil
}

// List returns the manifests of all snapshots, newest first. A missing
// backup directory means no snapshots, not an error.
func (s *Store) List() ([]*Manifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot read "+s.dir, err)
	}

	var out []*Manifest
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		m, err := s.Manifest(strings.TrimSuffix(name, ".toml"))
		if err != nil {
			s.log.Warn("skipping unreadable backup manifest", "file", name, "error", err)
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Restore writes the files of a snapshot back into the project and
// returns their project-relative paths. Every file is verified against
// the manifest checksum before anything else happens; a corrupt archive
// restores nothing.
func (s *Store) Restore(id string) ([]string, error) {
	m, err := s.Manifest(id)
	if err != nil {
		return nil, err
	}
	want := make(map[string]Entry, len(m.Files))
	for _, e := range m.Files {
		want[e.Path] = e
	}

	in, err := os.Open(s.archivePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jreferrors.New(jreferrors.NotFound, "backup archive missing for "+id)
		}
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot open backup archive", err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.IoError, "corrupt backup archive "+id, err)
	}
	defer dec.Close()

	type restored struct {
		rel  string
		data []byte
	}
	var files []restored

	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, jreferrors.Wrap(jreferrors.IoError, "corrupt backup archive "+id, err)
		}
		entry, ok := want[hdr.Name]
		if !ok {
			return nil, jreferrors.New(jreferrors.IoError, "unexpected file in backup archive: "+hdr.Name)
		}
		if !safeRelPath(hdr.Name) {
			return nil, jreferrors.New(jreferrors.IoError, "unsafe path in backup archive: "+hdr.Name)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, jreferrors.Wrap(jreferrors.IoError, "corrupt backup archive "+id, err)
		}
		sum := blake2b.Sum256(data)
		if hex.EncodeToString(sum[:]) != entry.Checksum {
			return nil, jreferrors.New(jreferrors.IoError, "checksum mismatch for "+hdr.Name)
		}
		files = append(files, restored{rel: hdr.Name, data: data})
	}
	if len(files) != len(m.Files) {
		return nil, jreferrors.New(jreferrors.IoError, "backup archive is incomplete")
	}

	var out []string
	for _, f := range files {
		target := paths.JoinProject(s.root, f.rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, jreferrors.Wrap(jreferrors.IoError, "cannot restore "+f.rel, err)
		}
		if err := os.WriteFile(target, f.data, 0644); err != nil {
			return nil, jreferrors.Wrap(jreferrors.IoError, "cannot restore "+f.rel, err)
		}
		out = append(out, f.rel)
	}
	s.log.Info("backup restored", "id", id, "files", len(out))
	return out, nil
}

// prune removes the oldest snapshots beyond the retention limit. A
// non-positive limit keeps everything.
func (s *Store) prune() error {
	if s.keep <= 0 {
		return nil
	}
	manifests, err := s.List()
	if err != nil {
		return err
	}
	for _, m := range manifests[min(s.keep, len(manifests)):] {
		if err := os.Remove(s.archivePath(m.ID)); err != nil && !os.IsNotExist(err) {
			return jreferrors.Wrap(jreferrors.IoError, "cannot prune backup "+m.ID, err)
		}
		if err := os.Remove(s.manifestPath(m.ID)); err != nil && !os.IsNotExist(err) {
			return jreferrors.Wrap(jreferrors.IoError, "cannot prune backup "+m.ID, err)
		}
		s.log.Debug("pruned backup", "id", m.ID)
	}
	return nil
}

func (s *Store) writeManifest(m *Manifest) error {
	path := s.manifestPath(m.ID)
	f, err := os.Create(path)
	if err != nil {
		return jreferrors.Wrap(jreferrors.IoError, "cannot create "+path, err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(path)
		return jreferrors.Wrap(jreferrors.IoError, "cannot write backup manifest", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return jreferrors.Wrap(jreferrors.IoError, "cannot write backup manifest", err)
	}
	return nil
}

func (s *Store) archivePath(id string) string {
	return filepath.Join(s.dir, id+".tar.zst")
}

func (s *Store) manifestPath(id string) string {
	return filepath.Join(s.dir, id+".toml")
}

// relPath normalizes a snapshot target to a project-relative slash path
// and rejects anything outside the project.
func (s *Store) relPath(path string) (string, error) {
	abs := paths.Absolute(path, s.root)
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || !safeRelPath(filepath.ToSlash(rel)) {
		return "", jreferrors.New(jreferrors.InvalidArgument, "path outside project: "+path)
	}
	return filepath.ToSlash(rel), nil
}

func safeRelPath(rel string) bool {
	if rel == "" || strings.HasPrefix(rel, "/") {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
