package config

type (
	// Project is the root of a project tree.
	Project struct{ node }

	// Dbms is a database server holding one or more schemas.
	Dbms struct{ node }

	// Schema is a database schema holding tables.
	Schema struct{ node }

	// Table is a database table or view.
	Table struct{ node }

	// Column is a column of a table.
	Column struct{ node }

	// Index is an index of a table.
	Index struct{ node }

	// IndexColumn names a table column taking part in an index.
	IndexColumn struct{ node }

	// PrimaryKeyColumn names a table column taking part in the primary key.
	PrimaryKeyColumn struct{ node }

	// ForeignKey is a foreign key declared on a table.
	ForeignKey struct{ node }

	// ForeignKeyColumn maps one column of a foreign key to the column it references.
	// The reference is resolved by name and may not exist.
	ForeignKeyColumn struct{ node }
)

// NewProject returns the project document backed by data.
func NewProject(data map[string]any) *Project {
	if data == nil {
		data = make(map[string]any)
	}
	return &Project{node{kind: KindProject, data: data}}
}

// PackageName returns the Go package the project generates into.
func (p *Project) PackageName() string { return p.StringProp(PropPackageName) }

// Dbmses returns the servers of the project.
func (p *Project) Dbmses() []*Dbms { return childrenOf[*Dbms](p, KeyDbmses) }

// Dbms returns the server with the given name.
func (p *Project) Dbms(name string) (*Dbms, bool) { return childNamed[*Dbms](p, KeyDbmses, name) }

// TypeName returns the server type, for example "postgres".
func (d *Dbms) TypeName() string { return d.StringProp(PropTypeName) }

// Project returns the owning project.
func (d *Dbms) Project() *Project {
	p, _ := d.parent.(*Project)
	return p
}

// Schemas returns the schemas of the server.
func (d *Dbms) Schemas() []*Schema { return childrenOf[*Schema](d, KeySchemas) }

// Schema returns the schema with the given name.
func (d *Dbms) Schema(name string) (*Schema, bool) {
	return childNamed[*Schema](d, KeySchemas, name)
}

// Alias returns the alias of the schema, falling back to its name.
func (s *Schema) Alias() string { return aliasOf(&s.node) }

// Dbms returns the owning server.
func (s *Schema) Dbms() *Dbms {
	d, _ := s.parent.(*Dbms)
	return d
}

// Tables returns the tables of the schema.
func (s *Schema) Tables() []*Table { return childrenOf[*Table](s, KeyTables) }

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	return childNamed[*Table](s, KeyTables, name)
}

// Alias returns the alias of the table, falling back to its name.
func (t *Table) Alias() string { return aliasOf(&t.node) }

// HasAlias reports if the table sets an alias of its own.
func (t *Table) HasAlias() bool { return t.StringProp(PropAlias) != "" }

// Comment returns the table comment.
func (t *Table) Comment() string { return t.StringProp(PropComment) }

// Schema returns the owning schema.
func (t *Table) Schema() *Schema {
	s, _ := t.parent.(*Schema)
	return s
}

// Columns returns the columns of the table.
func (t *Table) Columns() []*Column { return childrenOf[*Column](t, KeyColumns) }

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	return childNamed[*Column](t, KeyColumns, name)
}

// Indexes returns the indexes of the table.
func (t *Table) Indexes() []*Index { return childrenOf[*Index](t, KeyIndexes) }

// PrimaryKeyColumns returns the primary key columns of the table.
func (t *Table) PrimaryKeyColumns() []*PrimaryKeyColumn {
	return childrenOf[*PrimaryKeyColumn](t, KeyPrimaryKeyColumns)
}

// ForeignKeys returns the foreign keys declared on the table.
func (t *Table) ForeignKeys() []*ForeignKey { return childrenOf[*ForeignKey](t, KeyForeignKeys) }

// Alias returns the alias of the column, falling back to its name.
func (c *Column) Alias() string { return aliasOf(&c.node) }

// HasAlias reports if the column sets an alias of its own.
func (c *Column) HasAlias() bool { return c.StringProp(PropAlias) != "" }

// Comment returns the column comment.
func (c *Column) Comment() string { return c.StringProp(PropComment) }

// Table returns the owning table.
func (c *Column) Table() *Table {
	t, _ := c.parent.(*Table)
	return t
}

// DatabaseType returns the SQL type name of the column, for example "varchar".
func (c *Column) DatabaseType() string { return c.StringProp(PropDatabaseType) }

// GoType returns the explicit Go type of the column, if configured.
func (c *Column) GoType() string { return c.StringProp(PropGoType) }

// Nullable reports if the column accepts NULL.
func (c *Column) Nullable() bool { return c.BoolProp(PropNullable, false) }

// AutoIncrement reports if the column is generated by the database.
func (c *Column) AutoIncrement() bool { return c.BoolProp(PropAutoIncrement, false) }

// OrdinalPosition returns the 1-based position of the column, or 0 if unknown.
func (c *Column) OrdinalPosition() int { return c.IntProp(PropOrdinalPosition, 0) }

// Table returns the owning table.
func (i *Index) Table() *Table {
	t, _ := i.parent.(*Table)
	return t
}

// Unique reports if the index is unique.
func (i *Index) Unique() bool { return i.BoolProp(PropUnique, false) }

// IndexColumns returns the columns of the index.
func (i *Index) IndexColumns() []*IndexColumn {
	return childrenOf[*IndexColumn](i, KeyIndexColumns)
}

// ColumnName returns the name of the indexed column.
func (c *IndexColumn) ColumnName() string { return columnNameOf(&c.node) }

// FindColumn resolves the indexed column in the owning table.
func (c *IndexColumn) FindColumn() (*Column, bool) { return findColumn(c, c.ColumnName()) }

// ColumnName returns the name of the primary key column.
func (c *PrimaryKeyColumn) ColumnName() string { return columnNameOf(&c.node) }

// OrdinalPosition returns the 1-based position within the key, or 0 if unknown.
func (c *PrimaryKeyColumn) OrdinalPosition() int { return c.IntProp(PropOrdinalPosition, 0) }

// FindColumn resolves the primary key column in the owning table.
func (c *PrimaryKeyColumn) FindColumn() (*Column, bool) { return findColumn(c, c.ColumnName()) }

// Table returns the table declaring the foreign key.
func (fk *ForeignKey) Table() *Table {
	t, _ := fk.parent.(*Table)
	return t
}

// ForeignKeyColumns returns the column mappings of the foreign key.
func (fk *ForeignKey) ForeignKeyColumns() []*ForeignKeyColumn {
	return childrenOf[*ForeignKeyColumn](fk, KeyForeignKeyColumns)
}

// ForeignKey returns the owning foreign key.
func (c *ForeignKeyColumn) ForeignKey() *ForeignKey {
	fk, _ := c.parent.(*ForeignKey)
	return fk
}

// ColumnName returns the name of the referencing column in the declaring table.
func (c *ForeignKeyColumn) ColumnName() string { return columnNameOf(&c.node) }

// FindColumn resolves the referencing column in the declaring table.
func (c *ForeignKeyColumn) FindColumn() (*Column, bool) { return findColumn(c, c.ColumnName()) }

// ForeignSchemaName returns the schema of the referenced table. It defaults
// to the schema declaring the foreign key.
func (c *ForeignKeyColumn) ForeignSchemaName() string {
	if s := c.StringProp(PropForeignSchemaName); s != "" {
		return s
	}
	if s, ok := SchemaOf(c); ok {
		return s.Name()
	}
	return ""
}

// ForeignTableName returns the name of the referenced table.
func (c *ForeignKeyColumn) ForeignTableName() string {
	return c.StringProp(PropForeignTableName)
}

// ForeignColumnName returns the name of the referenced column.
func (c *ForeignKeyColumn) ForeignColumnName() string {
	return c.StringProp(PropForeignColumnName)
}

// FindForeignTable resolves the referenced table by name.
func (c *ForeignKeyColumn) FindForeignTable() (*Table, bool) {
	schema, ok := SchemaOf(c)
	if !ok {
		return nil, false
	}
	if name := c.StringProp(PropForeignSchemaName); name != "" && name != schema.Name() {
		dbms, ok := DbmsOf(c)
		if !ok {
			return nil, false
		}
		if schema, ok = dbms.Schema(name); !ok {
			return nil, false
		}
	}
	return schema.Table(c.ForeignTableName())
}

// FindForeignColumn resolves the referenced column by name.
func (c *ForeignKeyColumn) FindForeignColumn() (*Column, bool) {
	t, ok := c.FindForeignTable()
	if !ok {
		return nil, false
	}
	return t.Column(c.ForeignColumnName())
}

func aliasOf(n *node) string {
	if a := n.StringProp(PropAlias); a != "" {
		return a
	}
	return n.Name()
}

// columnNameOf returns the referenced column name of pk, index and fk columns.
// The document name is used when no explicit column name is set.
func columnNameOf(n *node) string {
	if c := n.StringProp(PropColumnName); c != "" {
		return c
	}
	return n.Name()
}

func findColumn(d Document, name string) (*Column, bool) {
	t, ok := TableOf(d)
	if !ok {
		return nil, false
	}
	return t.Column(name)
}
