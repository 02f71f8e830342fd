// Package naming converts identifiers between case formats and decides
// when a variable name follows the type-derived convention.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	jreferrors "jref/internal/errors"
)

// Format names an identifier case style.
type Format string

const (
	FormatCamel          Format = "camelCase"
	FormatPascal         Format = "PascalCase"
	FormatSnake          Format = "snake_case"
	FormatScreamingSnake Format = "SCREAMING_SNAKE_CASE"
	FormatKebab          Format = "kebab-case"
	FormatDot            Format = "dot.case"
	FormatTitle          Format = "Title Case"
	FormatSentence       Format = "Sentence case"
	FormatUnknown        Format = "unknown"
)

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	separators    = regexp.MustCompile(`[_\-.]+`)
	camelPattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

// Words splits an identifier into its words: lower-to-upper boundaries and
// the separators "_", "-", "." all break words.
func Words(s string) []string {
	spaced := camelBoundary.ReplaceAllString(s, "$1 $2")
	spaced = separators.ReplaceAllString(spaced, " ")
	return strings.Fields(spaced)
}

// ToPascal converts any supported format to PascalCase.
func ToPascal(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToCamel converts any supported format to camelCase.
func ToCamel(s string) string {
	words := Words(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToSnake converts any supported format to snake_case.
func ToSnake(s string) string {
	return joinLower(Words(s), "_")
}

// ToScreamingSnake converts any supported format to SCREAMING_SNAKE_CASE.
func ToScreamingSnake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

// ToKebab converts any supported format to kebab-case.
func ToKebab(s string) string {
	return joinLower(Words(s), "-")
}

// ToDot converts any supported format to dot.case.
func ToDot(s string) string {
	return joinLower(Words(s), ".")
}

// ToTitle converts any supported format to Title Case.
func ToTitle(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// ToSentence converts any supported format to Sentence case.
func ToSentence(s string) string {
	words := Words(s)
	for i, w := range words {
		if i == 0 {
			words[i] = capitalize(w)
			continue
		}
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// PascalToCamel lowers only the first rune; the rest of the identifier is
// kept as-is, so interior words survive untouched.
func PascalToCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// CamelToPascal raises only the first rune.
func CamelToPascal(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PluralizeCamel pluralizes the last word of a camelCase or PascalCase
// identifier: "userAccount" becomes "userAccounts".
func PluralizeCamel(s string) string {
	if s == "" {
		return s
	}
	words := splitOnUpper(s)
	words[len(words)-1] = inflection.Plural(words[len(words)-1])
	return strings.Join(words, "")
}

// Detect guesses the case format of s. Separators win over letter case, in
// the order underscore, hyphen, dot, space.
func Detect(s string) Format {
	switch {
	case s == "":
		return FormatUnknown
	case strings.Contains(s, "_"):
		if strings.ToUpper(s) == s {
			return FormatScreamingSnake
		}
		return FormatSnake
	case strings.Contains(s, "-"):
		return FormatKebab
	case strings.Contains(s, "."):
		return FormatDot
	case strings.Contains(s, " "):
		for i, w := range strings.Fields(s) {
			if i > 0 && !startsUpper(w) {
				return FormatSentence
			}
		}
		if !startsUpper(s) {
			return FormatSentence
		}
		return FormatTitle
	case startsUpper(s):
		return FormatPascal
	case camelPattern.MatchString(s):
		return FormatCamel
	default:
		return FormatUnknown
	}
}

// Convert renders s in the target format.
func Convert(s string, target Format) (string, error) {
	switch target {
	case FormatCamel:
		return ToCamel(s), nil
	case FormatPascal:
		return ToPascal(s), nil
	case FormatSnake:
		return ToSnake(s), nil
	case FormatScreamingSnake:
		return ToScreamingSnake(s), nil
	case FormatKebab:
		return ToKebab(s), nil
	case FormatDot:
		return ToDot(s), nil
	case FormatTitle:
		return ToTitle(s), nil
	case FormatSentence:
		return ToSentence(s), nil
	default:
		return "", jreferrors.New(jreferrors.InvalidArgument, "unsupported target format "+string(target))
	}
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}

func splitOnUpper(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}
