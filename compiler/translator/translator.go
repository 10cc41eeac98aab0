// Package translator turns one document of a project tree into one generated
// file holding one declaration.
//
// A translator owns a builder. Its make function registers callbacks, creates
// the declaration and builds it against the anchor. Hooks attached with OnMake
// then run once over the finished file. Translators are single use: the file
// is produced on the first Get and cached.
//
//	t := translator.New(table, "models", "user.go", func(t *translator.Translator, f *decl.File) (*decl.Declaration, error) {
//		d := decl.New(decl.Interface, "User")
//		t.Builder().ForEveryColumn(builder.Make, func(d *decl.Declaration, c *config.Column) error {
//			d.AddMethod(&decl.Method{Name: getter(c), Results: []jen.Code{goType(c)}})
//			return nil
//		})
//		return d, t.Build(d)
//	})
//	file, err := t.Get()
package translator

import (
	"fmt"
	"sync"

	"github.com/syssam/tablegen/compiler/builder"
	"github.com/syssam/tablegen/compiler/decl"
	"github.com/syssam/tablegen/config"
)

type (
	// MakeFunc creates and populates the declaration of a translator.
	MakeFunc func(*Translator, *decl.File) (*decl.Declaration, error)

	// Hook runs over the populated file and its declaration.
	Hook func(*decl.File, *decl.Declaration) error

	// Option configures a Translator.
	Option func(*Translator)
)

// WithHeader sets the header comment of the generated file.
func WithHeader(header string) Option {
	return func(t *Translator) {
		t.header = header
	}
}

// WithImportAlias names an import path of the generated file.
func WithImportAlias(path, alias string) Option {
	return func(t *Translator) {
		t.aliases = append(t.aliases, [2]string{path, alias})
	}
}

// Translator produces the file of one anchor document.
type Translator struct {
	anchor  config.Document
	pkg     string
	name    string
	header  string
	aliases [][2]string
	make    MakeFunc
	builder *builder.Builder[*decl.Declaration]

	mu    sync.Mutex
	hooks []Hook
	state State
	file  *decl.File
	err   error
}

// New returns a translator of anchor that generates file name of package pkg.
func New(anchor config.Document, pkg, name string, fn MakeFunc, opts ...Option) *Translator {
	t := &Translator{
		anchor:  anchor,
		pkg:     pkg,
		name:    name,
		make:    fn,
		builder: builder.New[*decl.Declaration](),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Anchor returns the document the translator is anchored at.
func (t *Translator) Anchor() config.Document { return t.anchor }

// Header returns the header comment of the generated file.
func (t *Translator) Header() string { return t.header }

// Package returns the package name of the generated file.
func (t *Translator) Package() string { return t.pkg }

// FileName returns the name of the generated file.
func (t *Translator) FileName() string { return t.name }

// Table returns the anchor's table, if the anchor is a table or below one.
func (t *Translator) Table() (*config.Table, bool) {
	return config.TableOf(t.anchor)
}

// MustTable is like Table but panics if the anchor has no table.
func (t *Translator) MustTable() *config.Table {
	return config.MustTableOf(t.anchor)
}

// Builder returns the builder of the translator.
func (t *Translator) Builder() *builder.Builder[*decl.Declaration] {
	return t.builder
}

// Build dispatches the builder callbacks over the anchor into d.
func (t *Translator) Build(d *decl.Declaration) error {
	return t.builder.Build(t.anchor, d)
}

// OnMake attaches a hook. Hooks run in attachment order after the declaration
// is populated. Hooks attached once the hooks ran have no effect.
func (t *Translator) OnMake(h Hook) *Translator {
	if h == nil {
		panic("translator: nil hook")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, h)
	return t
}

// State returns the current state of the translator.
func (t *Translator) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Get returns the generated file, producing it on the first call. A failed
// translation returns the same error on every call.
//
// Calling Get while the translator is producing its file returns ErrReentrant
// without waiting. This holds for calls from the make function or a hook, and
// also for calls from other goroutines: Get does not block on an in-flight
// translation, so a translator must have a single owner until it is finalized.
func (t *Translator) Get() (*decl.File, error) {
	t.mu.Lock()
	switch t.state {
	case Finalized:
		defer t.mu.Unlock()
		return t.file, nil
	case Failed:
		defer t.mu.Unlock()
		return nil, t.err
	case Populating, HooksApplied:
		defer t.mu.Unlock()
		return nil, fmt.Errorf("translator: %s: %w", t.name, ErrReentrant)
	}
	t.state = Populating
	t.mu.Unlock()

	file, err := t.translate()

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.state, t.err = Failed, err
		return nil, err
	}
	t.state, t.file = Finalized, file
	return file, nil
}

func (t *Translator) translate() (*decl.File, error) {
	if t.make == nil {
		return nil, &Error{File: t.name, State: Populating, Cause: errNoMake}
	}
	file := decl.NewFile(t.pkg, t.name)
	file.Header = t.header
	for _, a := range t.aliases {
		file.ImportAlias(a[0], a[1])
	}
	d, err := t.make(t, file)
	if err != nil {
		return nil, &Error{File: t.name, State: Populating, Cause: err}
	}
	if d == nil {
		return nil, &Error{File: t.name, State: Populating, Cause: errNoDeclaration}
	}
	file.Add(d)

	t.mu.Lock()
	t.state = HooksApplied
	hooks := append([]Hook(nil), t.hooks...)
	t.mu.Unlock()
	for _, h := range hooks {
		if err := h(file, d); err != nil {
			return nil, &Error{File: t.name, State: HooksApplied, Cause: err}
		}
	}
	return file, nil
}
