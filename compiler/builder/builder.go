package builder

import (
	"sync"

	"github.com/syssam/tablegen/config"
)

type (
	// Callback is invoked with the declaration under construction and the
	// document it is dispatched for.
	Callback[D any] func(D, config.Document) error

	// InboundCallback is invoked with the declaration under construction and
	// a foreign key, declared on another table, that references the anchor.
	InboundCallback[D any] func(D, *config.ForeignKey) error
)

// Builder holds the callbacks of a declaration and dispatches them over a
// project tree. D is the type of the declaration being built.
type Builder[D any] struct {
	mu        sync.Mutex
	callbacks [len(Phases)]map[string][]Callback[D]
	inbound   [len(Phases)][]InboundCallback[D]
}

// New returns a builder without callbacks.
func New[D any]() *Builder[D] {
	b := &Builder[D]{}
	for i := range b.callbacks {
		b.callbacks[i] = make(map[string][]Callback[D])
	}
	return b
}

// Register adds fn to the callbacks of the given phase and collection key.
// Callbacks registered for the same phase and key fire in registration order.
// Duplicates are kept.
func (b *Builder[D]) Register(phase Phase, key string, fn Callback[D]) error {
	switch {
	case !phase.Valid():
		return &RegistrationError{Phase: phase, Key: key, Message: "unknown phase"}
	case key == KeyInboundForeignKeys:
		return &RegistrationError{Phase: phase, Key: key, Message: "use RegisterInboundForeignKey"}
	case !validKey(key):
		return &RegistrationError{Phase: phase, Key: key, Message: "unknown key"}
	case fn == nil:
		return &RegistrationError{Phase: phase, Key: key, Message: "nil callback"}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks[phase][key] = append(b.callbacks[phase][key], fn)
	return nil
}

// RegisterInboundForeignKey adds fn to the inbound foreign key callbacks of the given phase.
func (b *Builder[D]) RegisterInboundForeignKey(phase Phase, fn InboundCallback[D]) error {
	switch {
	case !phase.Valid():
		return &RegistrationError{Phase: phase, Key: KeyInboundForeignKeys, Message: "unknown phase"}
	case fn == nil:
		return &RegistrationError{Phase: phase, Key: KeyInboundForeignKeys, Message: "nil callback"}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inbound[phase] = append(b.inbound[phase], fn)
	return nil
}

// Count returns the number of callbacks registered for phase and key.
func (b *Builder[D]) Count(phase Phase, key string) int {
	if !phase.Valid() {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if key == KeyInboundForeignKeys {
		return len(b.inbound[phase])
	}
	return len(b.callbacks[phase][key])
}

// listeners returns a snapshot of the callbacks of phase and key, so callbacks
// can register more callbacks without deadlocking. Those fire on the next build.
func (b *Builder[D]) listeners(phase Phase, key string) []Callback[D] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Callback[D](nil), b.callbacks[phase][key]...)
}

func (b *Builder[D]) inboundListeners(phase Phase) []InboundCallback[D] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]InboundCallback[D](nil), b.inbound[phase]...)
}

// mustRegister backs the typed registration helpers, whose keys are always valid.
func (b *Builder[D]) mustRegister(phase Phase, key string, fn Callback[D]) *Builder[D] {
	if err := b.Register(phase, key, fn); err != nil {
		panic(err)
	}
	return b
}

// typed adapts a callback over a concrete document type. Documents of another
// type are ignored.
func typed[D any, T config.Document](fn func(D, T) error) Callback[D] {
	if fn == nil {
		return nil
	}
	return func(d D, doc config.Document) error {
		t, ok := doc.(T)
		if !ok {
			return nil
		}
		return fn(d, t)
	}
}

// ForEveryProject registers fn for the anchor's project.
// It panics if fn is nil or phase is unknown.
func (b *Builder[D]) ForEveryProject(phase Phase, fn func(D, *config.Project) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyProjects, typed(fn))
}

// ForEveryDbms registers fn for the anchor's server and every enabled server below it.
func (b *Builder[D]) ForEveryDbms(phase Phase, fn func(D, *config.Dbms) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyDbmses, typed(fn))
}

// ForEverySchema registers fn for the anchor's schema and every enabled schema below it.
func (b *Builder[D]) ForEverySchema(phase Phase, fn func(D, *config.Schema) error) *Builder[D] {
	return b.mustRegister(phase, config.KeySchemas, typed(fn))
}

// ForEveryTable registers fn for the anchor's table and every enabled table below it.
func (b *Builder[D]) ForEveryTable(phase Phase, fn func(D, *config.Table) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyTables, typed(fn))
}

// ForEveryColumn registers fn for every enabled column of the anchor's table.
func (b *Builder[D]) ForEveryColumn(phase Phase, fn func(D, *config.Column) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyColumns, typed(fn))
}

// ForEveryIndex registers fn for every enabled index of the anchor's table.
func (b *Builder[D]) ForEveryIndex(phase Phase, fn func(D, *config.Index) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyIndexes, typed(fn))
}

// ForEveryPrimaryKeyColumn registers fn for every enabled primary key column of the anchor's table.
func (b *Builder[D]) ForEveryPrimaryKeyColumn(phase Phase, fn func(D, *config.PrimaryKeyColumn) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyPrimaryKeyColumns, typed(fn))
}

// ForEveryForeignKey registers fn for every enabled, resolvable foreign key of the anchor's table.
func (b *Builder[D]) ForEveryForeignKey(phase Phase, fn func(D, *config.ForeignKey) error) *Builder[D] {
	return b.mustRegister(phase, config.KeyForeignKeys, typed(fn))
}

// ForEveryForeignKeyReferencingThis registers fn for every foreign key of the
// anchor table's schema that references the anchor table.
// It panics if fn is nil or phase is unknown.
func (b *Builder[D]) ForEveryForeignKeyReferencingThis(phase Phase, fn func(D, *config.ForeignKey) error) *Builder[D] {
	if err := b.RegisterInboundForeignKey(phase, fn); err != nil {
		panic(err)
	}
	return b
}
