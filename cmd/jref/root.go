package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jref/internal/config"
	jreferrors "jref/internal/errors"
	"jref/internal/naming"
	"jref/internal/project"
	"jref/internal/slogutil"
	"jref/internal/version"
)

var (
	// cwdFlag is the CLI --cwd flag value
	cwdFlag     string
	formatFlag  string
	verboseFlag int
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "jref",
	Short: "jref - Java rename refactoring",
	Long: `jref analyzes Java sources with tree-sitter and performs project-wide
rename refactorings: classes together with their files, imports, and
convention-following variable names; fields, parameters, and locals
together with their in-scope usages.

All commands write a JSON envelope to stdout by default; logs go to
stderr.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("jref version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cwdFlag, "cwd", ".",
		"Project root to operate in")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "json",
		"Output format: json, yaml, or text")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Log errors only")
}

// session carries the per-invocation wiring every command needs: the
// resolved root, the loaded config, and the logger factory.
type session struct {
	root     string
	cfg      *config.Config
	log      *slog.Logger
	factory  *slogutil.LoggerFactory
	warnings []string
	start    time.Time
}

// newSession resolves --cwd, loads the project config, and builds the
// logger. Commands that operate on a project pass requireProject to get
// the NOT_A_PROJECT check up front.
func newSession(requireProject bool) (*session, error) {
	s := &session{start: time.Now()}

	root, err := filepath.Abs(cwdFlag)
	if err != nil {
		return nil, jreferrors.Wrap(jreferrors.InvalidArgument, "cannot resolve --cwd", err)
	}
	s.root = root
	if requireProject {
		if err := project.Require(s.root); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(s.root)
	if err != nil {
		cfg = config.DefaultConfig()
		s.warnings = append(s.warnings, "config not loaded, using defaults: "+err.Error())
	}
	s.cfg = cfg

	s.factory = slogutil.NewLoggerFactory(s.root, cfg, verboseFlag, quietFlag)
	s.log = s.factory.CLILogger()
	return s, nil
}

func (s *session) close() {
	if s.factory != nil {
		s.factory.Close()
	}
}

// namer builds the naming engine from the configured rules file, or the
// project default, degrading to built-in rules with a warning.
func (s *session) namer() *naming.Engine {
	var rules *naming.Rules
	var err error
	if path := s.cfg.Naming.Rules; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.root, path)
		}
		rules, err = naming.LoadRulesFile(path)
	} else {
		rules, err = naming.LoadRules(s.root)
	}
	if err != nil {
		s.log.Warn("naming rules not loaded, using defaults", "error", err)
		s.warnings = append(s.warnings, "naming rules not loaded: "+err.Error())
		rules = naming.DefaultRules()
	}
	return naming.NewEngine(rules)
}

func (s *session) durationMs() int64 {
	return time.Since(s.start).Milliseconds()
}

// mustSession builds a session or exits before any envelope exists.
func mustSession(requireProject bool) *session {
	s, err := newSession(requireProject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}
