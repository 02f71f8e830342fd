package naming

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	jreferrors "jref/internal/errors"
)

const rulesFile = "naming.toml"

// Rules holds the project-tunable parts of the naming convention.
// They live in .jref/naming.toml under the project root.
type Rules struct {
	// CollectionPrefixes are the generic shells treated as collections,
	// matched as "<prefix><" against the declared type text.
	CollectionPrefixes []string `toml:"collection_prefixes"`
	// ExtraPlurals maps lowercase singular words to their plural, taking
	// precedence over the built-in inflection rules.
	ExtraPlurals map[string]string `toml:"extra_plurals"`
}

func DefaultRules() *Rules {
	return &Rules{
		CollectionPrefixes: []string{
			"List", "Set", "ArrayList", "LinkedList",
			"HashSet", "LinkedHashSet", "TreeSet", "Collection",
		},
		ExtraPlurals: map[string]string{},
	}
}

// LoadRules reads the naming rules for a project. A missing file is not an
// error; the defaults apply.
func LoadRules(projectRoot string) (*Rules, error) {
	return LoadRulesFile(filepath.Join(projectRoot, ".jref", rulesFile))
}

// LoadRulesFile reads naming rules from an explicit path, for configs
// that relocate the rules file. Missing files fall back to defaults.
func LoadRulesFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, jreferrors.Wrap(jreferrors.IoError, "cannot read "+path, err)
	}
	rules := DefaultRules()
	if err := toml.Unmarshal(data, rules); err != nil {
		return nil, jreferrors.Wrap(jreferrors.ConfigInvalid, "invalid naming rules in "+path, err)
	}
	if len(rules.CollectionPrefixes) == 0 {
		rules.CollectionPrefixes = DefaultRules().CollectionPrefixes
	}
	if rules.ExtraPlurals == nil {
		rules.ExtraPlurals = map[string]string{}
	}
	return rules, nil
}
