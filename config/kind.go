package config

// Kind discriminates the document variants of a project tree.
type Kind uint8

// Document kinds, in containment order.
const (
	KindInvalid Kind = iota
	KindProject
	KindDbms
	KindSchema
	KindTable
	KindColumn
	KindIndex
	KindIndexColumn
	KindPrimaryKeyColumn
	KindForeignKey
	KindForeignKeyColumn
)

// Child collection keys.
const (
	KeyProjects          = "projects"
	KeyDbmses            = "dbmses"
	KeySchemas           = "schemas"
	KeyTables            = "tables"
	KeyColumns           = "columns"
	KeyIndexes           = "indexes"
	KeyIndexColumns      = "indexColumns"
	KeyPrimaryKeyColumns = "primaryKeyColumns"
	KeyForeignKeys       = "foreignKeys"
	KeyForeignKeyColumns = "foreignKeyColumns"
)

// Property keys understood by the typed accessors.
const (
	PropID                = "id"
	PropName              = "name"
	PropEnabled           = "enabled"
	PropAlias             = "alias"
	PropPackageName       = "packageName"
	PropTypeName          = "typeName"
	PropDatabaseType      = "databaseType"
	PropGoType            = "goType"
	PropNullable          = "nullable"
	PropAutoIncrement     = "autoIncrement"
	PropOrdinalPosition   = "ordinalPosition"
	PropUnique            = "unique"
	PropColumnName        = "columnName"
	PropForeignSchemaName = "foreignSchemaName"
	PropForeignTableName  = "foreignTableName"
	PropForeignColumnName = "foreignColumnName"
	PropComment           = "comment"
)

var kindNames = [...]string{
	KindInvalid:          "Invalid",
	KindProject:          "Project",
	KindDbms:             "Dbms",
	KindSchema:           "Schema",
	KindTable:            "Table",
	KindColumn:           "Column",
	KindIndex:            "Index",
	KindIndexColumn:      "IndexColumn",
	KindPrimaryKeyColumn: "PrimaryKeyColumn",
	KindForeignKey:       "ForeignKey",
	KindForeignKeyColumn: "ForeignKeyColumn",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

var kindKeys = [...]string{
	KindProject:          KeyProjects,
	KindDbms:             KeyDbmses,
	KindSchema:           KeySchemas,
	KindTable:            KeyTables,
	KindColumn:           KeyColumns,
	KindIndex:            KeyIndexes,
	KindIndexColumn:      KeyIndexColumns,
	KindPrimaryKeyColumn: KeyPrimaryKeyColumns,
	KindForeignKey:       KeyForeignKeys,
	KindForeignKeyColumn: KeyForeignKeyColumns,
}

// Key returns the collection key documents of this kind are stored under.
func (k Kind) Key() string {
	if int(k) < len(kindKeys) {
		return kindKeys[k]
	}
	return ""
}

// KindOf returns the kind of documents stored under the given collection key.
func KindOf(key string) (Kind, bool) {
	for k, v := range kindKeys {
		if v != "" && v == key {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// childKeys lists the collections each kind owns, in traversal order.
var childKeys = map[Kind][]string{
	KindProject:    {KeyDbmses},
	KindDbms:       {KeySchemas},
	KindSchema:     {KeyTables},
	KindTable:      {KeyColumns, KeyPrimaryKeyColumns, KeyIndexes, KeyForeignKeys},
	KindIndex:      {KeyIndexColumns},
	KindForeignKey: {KeyForeignKeyColumns},
}

// ChildKeys returns the collection keys owned by documents of kind k.
func (k Kind) ChildKeys() []string {
	return append([]string(nil), childKeys[k]...)
}
