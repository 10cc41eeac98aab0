package introspect

import (
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/tablegen/config"
)

// FromAtlas converts inspected schemas into a project tree named name with a
// single server named after dbmsType.
func FromAtlas(name, dbmsType string, schemas []*schema.Schema) *config.Project {
	converted := make([]any, 0, len(schemas))
	for _, s := range schemas {
		converted = append(converted, convertSchema(s))
	}
	return config.NewProject(map[string]any{
		config.PropName: name,
		config.KeyDbmses: []any{
			map[string]any{
				config.PropName:     dbmsType,
				config.PropTypeName: dbmsType,
				config.KeySchemas:   converted,
			},
		},
	})
}

func convertSchema(s *schema.Schema) map[string]any {
	tables := make([]any, 0, len(s.Tables))
	for _, t := range s.Tables {
		tables = append(tables, convertTable(s, t))
	}
	return map[string]any{
		config.PropName:  s.Name,
		config.KeyTables: tables,
	}
}

func convertTable(s *schema.Schema, t *schema.Table) map[string]any {
	rec := map[string]any{config.PropName: t.Name}
	if c := comment(t.Attrs); c != "" {
		rec[config.PropComment] = c
	}

	columns := make([]any, 0, len(t.Columns))
	for i, c := range t.Columns {
		col := map[string]any{
			config.PropName:            c.Name,
			config.PropOrdinalPosition: i + 1,
		}
		if c.Type != nil {
			col[config.PropDatabaseType] = databaseType(c.Type)
			if c.Type.Null {
				col[config.PropNullable] = true
			}
		}
		if autoIncrement(c) {
			col[config.PropAutoIncrement] = true
		}
		if cm := comment(c.Attrs); cm != "" {
			col[config.PropComment] = cm
		}
		columns = append(columns, col)
	}
	rec[config.KeyColumns] = columns

	if t.PrimaryKey != nil {
		var pk []any
		for i, part := range t.PrimaryKey.Parts {
			if part.C == nil {
				continue
			}
			pk = append(pk, map[string]any{
				config.PropName:            part.C.Name,
				config.PropOrdinalPosition: i + 1,
			})
		}
		if len(pk) > 0 {
			rec[config.KeyPrimaryKeyColumns] = pk
		}
	}

	var indexes []any
	for _, idx := range t.Indexes {
		var cols []any
		for _, part := range idx.Parts {
			if part.C != nil {
				cols = append(cols, map[string]any{config.PropName: part.C.Name})
			}
		}
		if len(cols) == 0 {
			continue
		}
		ir := map[string]any{
			config.PropName:        idx.Name,
			config.KeyIndexColumns: cols,
		}
		if idx.Unique {
			ir[config.PropUnique] = true
		}
		indexes = append(indexes, ir)
	}
	if len(indexes) > 0 {
		rec[config.KeyIndexes] = indexes
	}

	var fks []any
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == nil || len(fk.Columns) != len(fk.RefColumns) {
			continue
		}
		cols := make([]any, 0, len(fk.Columns))
		names := make([]string, 0, len(fk.Columns))
		for i, c := range fk.Columns {
			names = append(names, c.Name)
			fkc := map[string]any{
				config.PropName:              c.Name,
				config.PropForeignTableName:  fk.RefTable.Name,
				config.PropForeignColumnName: fk.RefColumns[i].Name,
			}
			if ref := fk.RefTable.Schema; ref != nil && ref.Name != s.Name {
				fkc[config.PropForeignSchemaName] = ref.Name
			}
			cols = append(cols, fkc)
		}
		symbol := fk.Symbol
		if symbol == "" {
			// SQLite reports unnamed constraints.
			symbol = t.Name + "_" + strings.Join(names, "_") + "_fkey"
		}
		fks = append(fks, map[string]any{
			config.PropName:             symbol,
			config.KeyForeignKeyColumns: cols,
		})
	}
	if len(fks) > 0 {
		rec[config.KeyForeignKeys] = fks
	}
	return rec
}

// databaseType returns the raw database type of a column, falling back to
// the type name atlas resolved.
func databaseType(ct *schema.ColumnType) string {
	if ct.Raw != "" {
		return ct.Raw
	}
	switch t := ct.Type.(type) {
	case *schema.BoolType:
		return t.T
	case *schema.IntegerType:
		return t.T
	case *schema.StringType:
		return t.T
	case *schema.BinaryType:
		return t.T
	case *schema.DecimalType:
		return t.T
	case *schema.FloatType:
		return t.T
	case *schema.TimeType:
		return t.T
	case *schema.JSONType:
		return t.T
	case *schema.UUIDType:
		return t.T
	case *schema.EnumType:
		if t.T != "" {
			return t.T
		}
		return "enum"
	case *schema.SpatialType:
		return t.T
	case *schema.UnsupportedType:
		return t.T
	case *postgres.SerialType:
		return t.T
	default:
		return ""
	}
}

func autoIncrement(c *schema.Column) bool {
	if c.Type != nil {
		if _, ok := c.Type.Type.(*postgres.SerialType); ok {
			return true
		}
	}
	for _, a := range c.Attrs {
		switch a.(type) {
		case *mysql.AutoIncrement, *sqlite.AutoIncrement, *postgres.Identity:
			return true
		}
	}
	return false
}

func comment(attrs []schema.Attr) string {
	for _, a := range attrs {
		if c, ok := a.(*schema.Comment); ok {
			return c.Text
		}
	}
	return ""
}
