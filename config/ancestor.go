package config

import (
	"fmt"
	"strings"
)

// AncestorOrSelf returns d if it is of kind k, or the nearest ancestor of kind k.
func AncestorOrSelf(d Document, k Kind) (Document, bool) {
	for cur := d; cur != nil; cur = cur.Parent() {
		if cur.Kind() == k {
			return cur, true
		}
	}
	return nil, false
}

func ancestorOf[T Document](d Document, k Kind) (T, bool) {
	var zero T
	a, ok := AncestorOrSelf(d, k)
	if !ok {
		return zero, false
	}
	t, ok := a.(T)
	return t, ok
}

// ProjectOf returns the project d belongs to, d included.
func ProjectOf(d Document) (*Project, bool) { return ancestorOf[*Project](d, KindProject) }

// DbmsOf returns the server d belongs to, d included.
func DbmsOf(d Document) (*Dbms, bool) { return ancestorOf[*Dbms](d, KindDbms) }

// SchemaOf returns the schema d belongs to, d included.
func SchemaOf(d Document) (*Schema, bool) { return ancestorOf[*Schema](d, KindSchema) }

// TableOf returns the table d belongs to, d included.
func TableOf(d Document) (*Table, bool) { return ancestorOf[*Table](d, KindTable) }

// MustTableOf is like TableOf but panics if d has no table.
// It is meant for code paths where a table anchor is a precondition.
func MustTableOf(d Document) *Table {
	t, ok := TableOf(d)
	if !ok {
		panic(fmt.Sprintf("config: %s %q has no Table ancestor", kindOf(d), Path(d)))
	}
	return t
}

// AllAncestorsEnabled reports if d and every document above it are enabled.
func AllAncestorsEnabled(d Document) bool {
	for cur := d; cur != nil; cur = cur.Parent() {
		if !cur.Enabled() {
			return false
		}
	}
	return true
}

// Path returns the dot separated names from the root down to d.
func Path(d Document) string {
	var names []string
	for cur := d; cur != nil; cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

func kindOf(d Document) Kind {
	if d == nil {
		return KindInvalid
	}
	return d.Kind()
}
