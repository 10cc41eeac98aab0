// Package decl models the Go declarations produced by translators.
//
// A Declaration is populated by builder callbacks and rendered with jennifer.
// Types, values and method bodies are jen.Code, so callbacks can reference
// qualified identifiers and let the renderer manage imports.
package decl

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// Kind is the Go kind of a declared type.
type Kind uint8

// Declaration kinds.
const (
	Struct Kind = iota
	Interface
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

type (
	// Field is a struct field.
	Field struct {
		Name string
		Type jen.Code
		Tags map[string]string
		Doc  string
	}

	// Param is a method parameter.
	Param struct {
		Name string
		Type jen.Code
	}

	// Method is an interface method or, on structs, a method with a body.
	Method struct {
		Name    string
		Doc     string
		Params  []Param
		Results []jen.Code
		// Body holds the statements of struct methods. Interface methods have none.
		Body []jen.Code
		// Value marks a value receiver. Struct methods default to pointer receivers.
		Value bool
	}

	// Const is a constant declared next to the type.
	Const struct {
		Name  string
		Type  jen.Code
		Value any
		Doc   string
	}
)

// Declaration is a named Go type under construction.
type Declaration struct {
	Kind Kind
	Name string
	Doc  []string
	// Receiver names the receiver of struct methods.
	Receiver string
	// Supertype is embedded as the first field or interface element.
	Supertype jen.Code
	// Implements lists interfaces. Interfaces embed them; structs assert
	// them at compile time.
	Implements []jen.Code
	Fields     []*Field
	Methods    []*Method
	Consts     []*Const
}

// New returns an empty declaration.
func New(kind Kind, name string) *Declaration {
	return &Declaration{Kind: kind, Name: name}
}

// AddDoc appends lines to the doc comment.
func (d *Declaration) AddDoc(lines ...string) *Declaration {
	d.Doc = append(d.Doc, lines...)
	return d
}

// SetSupertype sets the embedded supertype.
func (d *Declaration) SetSupertype(t jen.Code) *Declaration {
	d.Supertype = t
	return d
}

// AddImplements appends an implemented interface.
func (d *Declaration) AddImplements(iface jen.Code) *Declaration {
	d.Implements = append(d.Implements, iface)
	return d
}

// AddField appends f. Fields keep their insertion order.
func (d *Declaration) AddField(f *Field) *Declaration {
	d.Fields = append(d.Fields, f)
	return d
}

// AddMethod appends m.
func (d *Declaration) AddMethod(m *Method) *Declaration {
	d.Methods = append(d.Methods, m)
	return d
}

// AddConst appends c.
func (d *Declaration) AddConst(c *Const) *Declaration {
	d.Consts = append(d.Consts, c)
	return d
}

// Field returns the first field with the given name.
func (d *Declaration) Field(name string) (*Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Method returns the first method with the given name.
func (d *Declaration) Method(name string) (*Method, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// HasMethod reports if a method with the given name was added.
func (d *Declaration) HasMethod(name string) bool {
	_, ok := d.Method(name)
	return ok
}

// Const returns the first constant with the given name.
func (d *Declaration) Const(name string) (*Const, bool) {
	for _, c := range d.Consts {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// render appends the declaration to f.
func (d *Declaration) render(f *jen.File) {
	if len(d.Consts) > 0 {
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, c := range d.Consts {
				if c.Doc != "" {
					g.Comment(c.Doc)
				}
				s := g.Id(c.Name)
				if c.Type != nil {
					s.Add(c.Type)
				}
				s.Op("=").Lit(c.Value)
			}
		})
	}
	for _, line := range d.Doc {
		f.Comment(line)
	}
	switch d.Kind {
	case Interface:
		d.renderInterface(f)
	default:
		d.renderStruct(f)
	}
}

func (d *Declaration) renderInterface(f *jen.File) {
	f.Type().Id(d.Name).InterfaceFunc(func(g *jen.Group) {
		if d.Supertype != nil {
			g.Add(d.Supertype)
		}
		for _, iface := range d.Implements {
			g.Add(iface)
		}
		for _, m := range d.Methods {
			if m.Doc != "" {
				g.Comment(m.Doc)
			}
			g.Id(m.Name).Params(params(m.Params)...).Add(results(m.Results))
		}
	})
}

func (d *Declaration) renderStruct(f *jen.File) {
	f.Type().Id(d.Name).StructFunc(func(g *jen.Group) {
		if d.Supertype != nil {
			g.Add(d.Supertype)
		}
		for _, fd := range d.Fields {
			if fd.Doc != "" {
				g.Comment(fd.Doc)
			}
			s := g.Id(fd.Name).Add(fd.Type)
			if len(fd.Tags) > 0 {
				s.Tag(fd.Tags)
			}
		}
	})
	for _, iface := range d.Implements {
		f.Var().Id("_").Add(iface).Op("=").Parens(jen.Op("*").Id(d.Name)).Call(jen.Nil())
	}
	recv := d.Receiver
	if recv == "" {
		recv = "r"
	}
	for _, m := range d.Methods {
		if m.Doc != "" {
			f.Comment(m.Doc)
		}
		r := jen.Id(recv)
		if m.Value {
			r.Id(d.Name)
		} else {
			r.Op("*").Id(d.Name)
		}
		f.Func().Params(r).Id(m.Name).Params(params(m.Params)...).Add(results(m.Results)).Block(m.Body...)
	}
}

func params(ps []Param) []jen.Code {
	codes := make([]jen.Code, 0, len(ps))
	for _, p := range ps {
		codes = append(codes, jen.Id(p.Name).Add(p.Type))
	}
	return codes
}

func results(rs []jen.Code) jen.Code {
	switch len(rs) {
	case 0:
		return jen.Null()
	case 1:
		return rs[0]
	default:
		return jen.Parens(jen.List(rs...))
	}
}
