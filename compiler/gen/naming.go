package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/tablegen/config"
)

var (
	acronyms = make(map[string]struct{})
	rules    = ruleset()
	title    = cases.Title(language.Und)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "MAC", "MB", "QPS",
		"RAM", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO", "TCP", "TLS", "TTL",
		"UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// TypeName returns the Go type name of a table: its alias, or its name in
// singular form.
func TypeName(t *config.Table) string {
	if t.HasAlias() {
		return pascal(t.Alias())
	}
	return pascal(singular(t.Name()))
}

// FieldName returns the exported Go name of a column, e.g. "UserID" for user_id.
func FieldName(c *config.Column) string {
	return pascal(c.Alias())
}

// VarName returns the unexported Go name of a column, used for struct fields
// and parameters. Keywords are prefixed with an underscore.
func VarName(c *config.Column) string {
	name := camel(c.Alias())
	if token.IsKeyword(name) {
		name = "_" + name
	}
	return name
}

// ReceiverName returns the receiver name of a type, e.g. "om" for OrderManager.
func ReceiverName(typeName string) string {
	name := receiver(typeName)
	if token.IsKeyword(name) {
		name = "_" + name
	}
	return name
}

// PackageName turns s into a valid package name.
func PackageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) || token.IsKeyword(name) {
		name = "pkg" + name
	}
	return name
}

// FileName returns the file name of a type, e.g. "order_item_manager.go" for
// OrderItem and suffix "manager".
func FileName(typeName, suffix string) string {
	name := snake(typeName)
	if suffix != "" {
		name += "_" + suffix
	}
	return name + ".go"
}

// LowerName returns a type name in camelCase, e.g. "lineItems" for LineItems.
func LowerName(typeName string) string {
	return camel(snake(typeName))
}

// Plural returns the plural of a Go type name.
func Plural(name string) string {
	return plural(name)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

func pascalWords(words []string) string {
	for i, w := range words {
		upper := strings.ToUpper(w)
		switch _, ok := acronyms[upper]; {
		case ok:
			words[i] = upper
		case w == upper:
			// Upper case database names, e.g. ORDER_ITEMS.
			words[i] = title.String(w)
		default:
			words[i] = rules.Capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// pascal converts the given name into a PascalCase.
//
//	user_info   => UserInfo
//	full_name   => FullName
//	user_id     => UserID
//	full-admin  => FullAdmin
func pascal(s string) string {
	return pascalWords(strings.FieldsFunc(s, isSeparator))
}

// camel converts the given name into a camelCase.
//
//	user_info  => userInfo
//	full_name  => fullName
//	user_id    => userID
//	full-admin => fullAdmin
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	first := words[0]
	if _, ok := acronyms[strings.ToUpper(first)]; ok || strings.ToUpper(first) == first {
		first = strings.ToLower(first)
	} else {
		first = strings.ToLower(first[:1]) + first[1:]
	}
	return first + pascalWords(words[1:])
}

// snake converts the given struct or field name into a snake_case.
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is uppercase,
		// and previous is lowercase (cases like: "UserInfo"), or next letter is also
		// a lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// receiver returns the first letter of every word of a type name.
//
//	User       => u
//	UserQuery  => uq
//	HTTPClient => hc
func receiver(s string) string {
	s = strings.Trim(s, "[]*&0123456789")
	var b strings.Builder
	for _, w := range strings.Split(snake(s), "_") {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	if b.Len() == 0 {
		return "r"
	}
	return strings.ToLower(b.String())
}

func singular(s string) string {
	return rules.Singularize(s)
}

func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		p += "Slice"
	}
	return p
}
