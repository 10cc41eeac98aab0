package builder

import (
	"github.com/syssam/tablegen/config"
)

// Build runs every phase against anchor, mutating d. The first callback error
// aborts the build and is returned as a *DispatchError; d is then partially
// populated and should be discarded. The project tree is never modified.
func (b *Builder[D]) Build(anchor config.Document, d D) error {
	if anchor == nil {
		return nil
	}
	for _, phase := range Phases {
		if err := b.buildPhase(phase, anchor, d); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder[D]) buildPhase(phase Phase, anchor config.Document, d D) error {
	for _, a := range ancestorKeys {
		if doc, ok := config.AncestorOrSelf(anchor, a.kind); ok {
			if err := b.fire(phase, a.key, d, doc); err != nil {
				return err
			}
		}
	}
	if table, ok := config.TableOf(anchor); ok {
		if err := b.dispatchTable(phase, table, d); err != nil {
			return err
		}
	}
	if table, ok := anchor.(*config.Table); ok {
		if err := b.dispatchInbound(phase, table, d); err != nil {
			return err
		}
	}
	return b.descend(phase, anchor, d)
}

// dispatchTable fires the table-owned collections of table.
func (b *Builder[D]) dispatchTable(phase Phase, table *config.Table, d D) error {
	for _, key := range tableKeys {
		fns := b.listeners(phase, key)
		if len(fns) == 0 {
			continue
		}
		for _, child := range config.Children(table, key) {
			if fk, ok := child.(*config.ForeignKey); ok && !Resolvable(fk) {
				continue
			}
			if !child.Enabled() {
				continue
			}
			if err := call(phase, key, fns, d, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder[D]) dispatchInbound(phase Phase, table *config.Table, d D) error {
	fns := b.inboundListeners(phase)
	if len(fns) == 0 {
		return nil
	}
	for _, fk := range InboundForeignKeys(table) {
		for _, fn := range fns {
			if err := fn(d, fk); err != nil {
				return &DispatchError{Phase: phase, Key: KeyInboundForeignKeys, Node: fk, Cause: err}
			}
		}
	}
	return nil
}

// descend fires the descent collections for every enabled document below doc.
func (b *Builder[D]) descend(phase Phase, doc config.Document, d D) error {
	for _, key := range descentKeys {
		for _, child := range config.Children(doc, key) {
			if !child.Enabled() {
				continue
			}
			if err := b.fire(phase, key, d, child); err != nil {
				return err
			}
			if err := b.descend(phase, child, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder[D]) fire(phase Phase, key string, d D, doc config.Document) error {
	fns := b.listeners(phase, key)
	if len(fns) == 0 {
		return nil
	}
	return call(phase, key, fns, d, doc)
}

func call[D any](phase Phase, key string, fns []Callback[D], d D, doc config.Document) error {
	for _, fn := range fns {
		if err := fn(d, doc); err != nil {
			return &DispatchError{Phase: phase, Key: key, Node: doc, Cause: err}
		}
	}
	return nil
}
