package builder

import "github.com/syssam/tablegen/config"

// Resolvable reports if fk passes the referential-integrity filter: it has at
// least one foreign key column, and every foreign key column is enabled and
// references an existing, enabled column of an enabled table.
//
// The enabled flag of fk itself is not considered.
func Resolvable(fk *config.ForeignKey) bool {
	fkcs := fk.ForeignKeyColumns()
	if len(fkcs) == 0 {
		return false
	}
	for _, fkc := range fkcs {
		if !fkc.Enabled() {
			return false
		}
		col, ok := fkc.FindForeignColumn()
		if !ok || !col.Enabled() {
			return false
		}
		if t := col.Table(); t == nil || !t.Enabled() {
			return false
		}
	}
	return true
}

// InboundForeignKeys returns the foreign keys of table's schema that reference
// table, in table and declaration order. A foreign key is included if it and
// its declaring table, schema, server and project are enabled, and every one
// of its foreign key columns is enabled, names table as its target and
// references an enabled column of table. Each foreign key is reported once,
// however many of its columns reference table.
func InboundForeignKeys(table *config.Table) []*config.ForeignKey {
	schema, ok := config.SchemaOf(table)
	if !ok {
		return nil
	}
	var inbound []*config.ForeignKey
	for _, t := range schema.Tables() {
		for _, fk := range t.ForeignKeys() {
			if references(fk, table) {
				inbound = append(inbound, fk)
			}
		}
	}
	return inbound
}

func references(fk *config.ForeignKey, table *config.Table) bool {
	if !config.AllAncestorsEnabled(fk) {
		return false
	}
	fkcs := fk.ForeignKeyColumns()
	if len(fkcs) == 0 {
		return false
	}
	for _, fkc := range fkcs {
		if !fkc.Enabled() || fkc.ForeignTableName() != table.Name() {
			return false
		}
		if s, ok := config.SchemaOf(table); ok && fkc.ForeignSchemaName() != s.Name() {
			return false
		}
		col, ok := table.Column(fkc.ForeignColumnName())
		if !ok || !col.Enabled() {
			return false
		}
	}
	return true
}
