package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	// Words that are commonly used in schemas and have no plural form.
	for _, w := range []string{"data", "info", "metadata", "media", "feedback"} {
		r.AddUncountable(w)
	}
	return r
}

// pascal converts the given name to PascalCase. Separators ('_', '-', ' ', '.')
// start a new word; the casing inside a word is preserved.
//
//	pascal("user_info")    // UserInfo
//	pascal("favoritePost") // FavoritePost
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	// A Caser is stateful; NoLower keeps inner capitals ("favoritePost").
	titler := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = titler.String(w)
	}
	return strings.Join(words, "")
}

// camel converts the given name to camelCase. A leading run of capitals is
// lowered as an acronym: "HTTPServer" becomes "httpServer".
func camel(s string) string {
	s = pascal(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
		// "User" -> "user", "URL" -> "url".
	case unicode.IsLower(runes[n]):
		// Keep the last capital as the start of the next word.
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// plural returns the plural form of the given (PascalCase) name. Names that
// are their own plural get a "List" suffix so the singular and plural forms
// never collide.
func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		return name + "List"
	}
	return p
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// validIdent reports whether s is usable as an identifier in the generated
// code: a letter followed by letters, digits or underscores.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
