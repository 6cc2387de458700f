// Package naming converts between the naming conventions used across
// the module: PascalCase type names, snake_case wire names, and plural
// resource paths.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
	title    = cases.Title(language.English)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS",
		"RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "TCP",
		"TLS", "TTL", "UDP", "UI", "UID", "UUID", "URI", "URL",
		"UTF8", "VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym registers a word that Pascal and Camel keep fully
// uppercased, such as a project-specific initialism.
func AddAcronym(w string) {
	w = strings.ToUpper(w)
	acronyms[w] = struct{}{}
	rules.AddAcronym(w)
}

// Snake converts a PascalCase or camelCase name to snake_case.
// Runs of uppercase letters are kept as one word: "HTTPCode"
// becomes "http_code" and "UserIDs" becomes "user_ids".
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// A word boundary sits before an uppercase letter that follows
		// a lowercase one, or that starts a new word after an acronym.
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsUpper(rune(s[i-1])) {
				j = i
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Pascal converts a snake_case or kebab-case name to PascalCase,
// uppercasing registered acronyms: "api_url" becomes "APIURL".
func Pascal(s string) string {
	return pascalWords(strings.FieldsFunc(s, isSeparator))
}

// Camel converts a snake_case or kebab-case name to camelCase.
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return strings.ToLower(words[0])
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

func pascalWords(words []string) string {
	for i, w := range words {
		if upper := strings.ToUpper(w); isAcronym(upper) {
			words[i] = upper
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, "")
}

func isAcronym(w string) bool {
	_, ok := acronyms[w]
	return ok
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// Receiver derives a short receiver name from a type name by taking
// the first letter of each word: "UserQuery" becomes "uq".
func Receiver(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	var b strings.Builder
	for _, w := range strings.Split(Snake(s), "_") {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	return b.String()
}

// Resource maps a model type name to its collection path segment:
// "User" becomes "users" and "Category" becomes "categories".
func Resource(typeName string) string {
	return rules.Pluralize(Snake(typeName))
}

// TypeName maps a collection path segment back to the model type
// name: "users" becomes "User". It is the inverse of Resource for
// names the pluralization rules can invert.
func TypeName(resource string) string {
	return Pascal(rules.Singularize(resource))
}
