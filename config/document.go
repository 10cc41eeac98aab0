package config

import (
	"fmt"
	"strconv"
)

// Document is a node of a project tree.
type Document interface {
	// Kind returns the variant of this document.
	Kind() Kind
	// ID returns the identifier of the document. It defaults to the name.
	ID() string
	// Name returns the name of the document.
	Name() string
	// Enabled reports if the document takes part in generation.
	// Documents without the property are enabled.
	Enabled() bool
	// Parent returns the owning document, or nil for the root.
	Parent() Document
	// Data returns the raw property record backing the document.
	// It must be treated as read-only.
	Data() map[string]any
	// Raw returns the raw value stored under the given property key.
	Raw(key string) any

	base() *node
}

// node is the shared state of all document variants.
type node struct {
	kind   Kind
	parent Document
	data   map[string]any
}

func (n *node) base() *node          { return n }
func (n *node) Kind() Kind           { return n.kind }
func (n *node) Parent() Document     { return n.parent }
func (n *node) Data() map[string]any { return n.data }
func (n *node) Name() string         { return n.StringProp(PropName) }
func (n *node) Enabled() bool        { return n.BoolProp(PropEnabled, true) }

func (n *node) ID() string {
	if id := n.StringProp(PropID); id != "" {
		return id
	}
	return n.Name()
}

func (n *node) Raw(key string) any {
	if n.data == nil {
		return nil
	}
	return n.data[key]
}

// StringProp returns the string property stored under key, or "" if missing.
// Scalars of other types are formatted.
func (n *node) StringProp(key string) string {
	switch v := n.Raw(key).(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// BoolProp returns the boolean property stored under key, or def if missing.
func (n *node) BoolProp(key string, def bool) bool {
	switch v := n.Raw(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// IntProp returns the integer property stored under key, or def if missing.
func (n *node) IntProp(key string, def int) int {
	switch v := n.Raw(key).(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// records returns the raw list stored under key. The second value is false
// if the key holds no list.
func (n *node) records(key string) ([]map[string]any, bool) {
	switch v := n.Raw(key).(type) {
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, r := range v {
			if m, ok := r.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out, true
	case []map[string]any:
		return v, true
	default:
		return nil, false
	}
}

// wrap returns the typed variant of kind k over the given record.
func wrap(parent Document, k Kind, data map[string]any) Document {
	n := node{kind: k, parent: parent, data: data}
	switch k {
	case KindProject:
		return &Project{n}
	case KindDbms:
		return &Dbms{n}
	case KindSchema:
		return &Schema{n}
	case KindTable:
		return &Table{n}
	case KindColumn:
		return &Column{n}
	case KindIndex:
		return &Index{n}
	case KindIndexColumn:
		return &IndexColumn{n}
	case KindPrimaryKeyColumn:
		return &PrimaryKeyColumn{n}
	case KindForeignKey:
		return &ForeignKey{n}
	case KindForeignKeyColumn:
		return &ForeignKeyColumn{n}
	default:
		panic(fmt.Sprintf("config: cannot wrap document of kind %d", k))
	}
}

// Children wraps the raw records stored under key as typed documents owned by
// parent, in their original order. Values that are not lists yield no
// children, and list entries that are not records are skipped.
func Children(parent Document, key string) []Document {
	if parent == nil {
		return nil
	}
	k, ok := KindOf(key)
	if !ok {
		return nil
	}
	recs, ok := parent.base().records(key)
	if !ok {
		return nil
	}
	docs := make([]Document, 0, len(recs))
	for _, r := range recs {
		docs = append(docs, wrap(parent, k, r))
	}
	return docs
}

// childrenOf is the typed form of Children.
func childrenOf[T Document](parent Document, key string) []T {
	docs := Children(parent, key)
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		if t, ok := d.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// childNamed returns the first child under key with the given name.
func childNamed[T Document](parent Document, key, name string) (T, bool) {
	for _, c := range childrenOf[T](parent, key) {
		if c.Name() == name {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// Walk visits d and all of its descendants depth-first, in collection order.
// Disabled documents are visited too. Walking stops at the first error.
func Walk(d Document, fn func(Document) error) error {
	if err := fn(d); err != nil {
		return err
	}
	for _, key := range childKeys[d.Kind()] {
		for _, c := range Children(d, key) {
			if err := Walk(c, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
