package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// Engine decides whether a variable follows the type-derived naming
// convention: the camelCase form of its declared type, pluralized when the
// type is a collection. Only convention-following names are renamed along
// with their type.
type Engine struct {
	rules *Rules
}

func NewEngine(rules *Rules) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// IsCollectionType reports whether the declared type text starts with one
// of the collection shells, e.g. "List<Account>".
func (e *Engine) IsCollectionType(typeText string) bool {
	for _, prefix := range e.rules.CollectionPrefixes {
		if strings.HasPrefix(typeText, prefix+"<") {
			return true
		}
	}
	return false
}

// ExpectedName returns the convention name for a variable whose element
// type is typeName: "Account" yields "account", and "accounts" for
// collections.
func (e *Engine) ExpectedName(typeName string, collection bool) string {
	if collection {
		return PascalToCamel(e.pluralizeLast(typeName))
	}
	return PascalToCamel(typeName)
}

// ShouldRename reports whether current is exactly the convention name for
// oldType. Anything else is a deliberate name and is left alone.
func (e *Engine) ShouldRename(current, oldType string, collection bool) bool {
	return current == e.ExpectedName(oldType, collection)
}

// NewName returns the name a variable should carry after its type changes
// from oldType to newType.
func (e *Engine) NewName(current, oldType, newType string, collection bool) string {
	if e.ShouldRename(current, oldType, collection) {
		return e.ExpectedName(newType, collection)
	}
	return current
}

func (e *Engine) pluralizeLast(s string) string {
	if s == "" {
		return s
	}
	words := splitOnUpper(s)
	words[len(words)-1] = e.plural(words[len(words)-1])
	return strings.Join(words, "")
}

func (e *Engine) plural(word string) string {
	if word == "" {
		return word
	}
	if p, ok := e.rules.ExtraPlurals[strings.ToLower(word)]; ok {
		if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
			return CamelToPascal(p)
		}
		return p
	}
	return inflection.Plural(word)
}
