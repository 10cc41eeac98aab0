// Package builder implements the declaration builder: an ordered set of
// callbacks, keyed by phase and collection, dispatched over a project tree
// relative to one anchor document.
//
// # Phases
//
// A build runs three passes over the same declaration, in order:
//
//	PreMake → Make → PostMake
//
// Later phases observe everything earlier phases added.
//
// # Dispatch
//
// For every phase, Build performs four steps against the anchor:
//
//  1. Ancestor-or-self dispatch: the "projects", "dbmses", "schemas" and
//     "tables" callbacks fire once for the anchor's project, server, schema
//     and table, when the anchor is or has one.
//  2. Table detail dispatch: when the anchor is or has a table, the
//     "columns", "indexes", "primaryKeyColumns" and "foreignKeys" callbacks
//     fire once per enabled child of that table, in child order. Foreign keys
//     must also pass the referential-integrity filter (see Resolvable).
//  3. Inbound foreign keys: when the anchor is a table, every foreign key of
//     its schema referencing it is reported to the inbound callbacks (see
//     InboundForeignKeys).
//  4. Descent: the "dbmses", "schemas" and "tables" callbacks fire for every
//     enabled document below the anchor reachable through those collections
//     only.
//
// Disabled documents and their descendants never reach a callback.
//
// # Registration
//
// Callbacks are additive. Registering the same callback twice makes it fire
// twice. Registration is safe for concurrent use; a build is not, and a
// builder must not be built concurrently with itself.
//
//	b := builder.New[*decl.Declaration]()
//	b.ForEveryColumn(builder.Make, func(d *decl.Declaration, c *config.Column) error {
//		d.AddField(decl.NewField(c.Name(), jen.String()))
//		return nil
//	})
//	err := b.Build(table, declaration)
package builder
