package gen

import (
	"reflect"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/config"
)

// GoType describes the Go type of a column.
type GoType struct {
	// PkgPath is the import path of a named type, empty for builtins.
	PkgPath string
	Name    string
	Slice   bool
	Pointer bool
}

// Common Go types.
var (
	TypeAny    = GoType{Name: "any"}
	TypeBool   = GoType{Name: "bool"}
	TypeInt    = GoType{Name: "int"}
	TypeInt8   = GoType{Name: "int8"}
	TypeInt16  = GoType{Name: "int16"}
	TypeInt64  = GoType{Name: "int64"}
	TypeUint64 = GoType{Name: "uint64"}
	TypeFloat  = GoType{Name: "float32"}
	TypeDouble = GoType{Name: "float64"}
	TypeString = GoType{Name: "string"}
	TypeBytes  = GoType{Name: "byte", Slice: true}
	TypeTime   = GoType{PkgPath: "time", Name: "Time"}
	TypeJSON   = GoType{PkgPath: "encoding/json", Name: "RawMessage"}
	TypeUUID   = GoType{PkgPath: "github.com/google/uuid", Name: "UUID"}
)

// databaseTypes maps lower case database type names, without size or
// precision, to Go types.
var databaseTypes = map[string]GoType{
	"bool":                        TypeBool,
	"boolean":                     TypeBool,
	"bit":                         TypeBool,
	"tinyint":                     TypeInt8,
	"smallint":                    TypeInt16,
	"int2":                        TypeInt16,
	"smallserial":                 TypeInt16,
	"int":                         TypeInt,
	"integer":                     TypeInt,
	"int4":                        TypeInt,
	"mediumint":                   TypeInt,
	"serial":                      TypeInt,
	"bigint":                      TypeInt64,
	"int8":                        TypeInt64,
	"bigserial":                   TypeInt64,
	"bigint unsigned":             TypeUint64,
	"real":                        TypeFloat,
	"float4":                      TypeFloat,
	"float":                       TypeDouble,
	"float8":                      TypeDouble,
	"double":                      TypeDouble,
	"double precision":            TypeDouble,
	"decimal":                     TypeDouble,
	"numeric":                     TypeDouble,
	"char":                        TypeString,
	"character":                   TypeString,
	"varchar":                     TypeString,
	"character varying":           TypeString,
	"nvarchar":                    TypeString,
	"text":                        TypeString,
	"tinytext":                    TypeString,
	"mediumtext":                  TypeString,
	"longtext":                    TypeString,
	"enum":                        TypeString,
	"citext":                      TypeString,
	"date":                        TypeTime,
	"time":                        TypeTime,
	"datetime":                    TypeTime,
	"timestamp":                   TypeTime,
	"timestamptz":                 TypeTime,
	"timestamp with time zone":    TypeTime,
	"timestamp without time zone": TypeTime,
	"blob":                        TypeBytes,
	"tinyblob":                    TypeBytes,
	"mediumblob":                  TypeBytes,
	"longblob":                    TypeBytes,
	"binary":                      TypeBytes,
	"varbinary":                   TypeBytes,
	"bytea":                       TypeBytes,
	"json":                        TypeJSON,
	"jsonb":                       TypeJSON,
	"uuid":                        TypeUUID,
}

// ParseGoType parses a type expression such as "int64", "*string",
// "[]byte" or "github.com/google/uuid.UUID".
func ParseGoType(s string) GoType {
	var t GoType
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "*"); ok {
		t.Pointer, s = true, rest
	}
	if rest, ok := strings.CutPrefix(s, "[]"); ok {
		t.Slice, s = true, rest
	}
	if i := strings.LastIndexByte(s, '.'); i > 0 {
		t.PkgPath, s = s[:i], s[i+1:]
	}
	t.Name = s
	return t
}

// GoTypeOf returns the type of v: a named or builtin type, a pointer to one
// or a slice of one.
//
//	gen.WithTypeMapping("uuid", gen.GoTypeOf(uuid.UUID{}))
func GoTypeOf(v any) GoType {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return TypeAny
	}
	var t GoType
	if rt.Kind() == reflect.Pointer {
		t.Pointer, rt = true, rt.Elem()
	}
	if rt.Kind() == reflect.Slice && rt.Name() == "" {
		t.Slice, rt = true, rt.Elem()
	}
	t.PkgPath, t.Name = rt.PkgPath(), rt.Name()
	switch {
	case t.Slice && rt.Kind() == reflect.Uint8 && t.PkgPath == "":
		t.Name = "byte"
	case t.Name == "":
		t.PkgPath, t.Name = "", "any"
	}
	return t
}

// String returns the type as written in Go source, with the full import path.
func (t GoType) String() string {
	var b strings.Builder
	if t.Pointer {
		b.WriteByte('*')
	}
	if t.Slice {
		b.WriteString("[]")
	}
	if t.PkgPath != "" {
		b.WriteString(t.PkgPath)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	return b.String()
}

// Code returns the jennifer code of the type.
func (t GoType) Code() *jen.Statement {
	s := &jen.Statement{}
	if t.Pointer {
		s.Op("*")
	}
	if t.Slice {
		s.Index()
	}
	if t.PkgPath != "" {
		return s.Qual(t.PkgPath, t.Name)
	}
	return s.Id(t.Name)
}

// Elem returns the type without its pointer.
func (t GoType) Elem() GoType {
	t.Pointer = false
	return t
}

// Nillable reports if the zero value of the type is nil.
func (t GoType) Nillable() bool {
	return t.Pointer || t.Slice || t == TypeAny || t == TypeJSON
}

// SliceOf returns a slice type of t.
func SliceOf(t GoType) GoType {
	if t.Slice || t.Pointer {
		return GoType{Name: "any", Slice: true}
	}
	t.Slice = true
	return t
}

// ColumnType returns the Go type of column c: its goType, else the mapping of
// its database type, else any. Nullable columns map to pointers, unless the
// type is already nillable.
func (c *Config) ColumnType(col *config.Column) GoType {
	t, ok := c.baseType(col)
	if !ok {
		return TypeAny
	}
	if col.Nullable() && !t.Nillable() {
		t.Pointer = true
	}
	return t
}

func (c *Config) baseType(col *config.Column) (GoType, bool) {
	if gt := col.GoType(); gt != "" {
		return ParseGoType(gt), true
	}
	dbType := normalizeDatabaseType(col.DatabaseType())
	if t, ok := c.typeMapping(dbType); ok {
		return t, true
	}
	t, ok := databaseTypes[dbType]
	return t, ok
}

// normalizeDatabaseType lower cases t and strips size, precision and array
// suffixes: "VARCHAR(255)" becomes "varchar".
func normalizeDatabaseType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, '('); i >= 0 {
		rest := ""
		if j := strings.IndexByte(t[i:], ')'); j >= 0 {
			rest = t[i+j+1:]
		}
		t = strings.TrimSpace(t[:i]) + rest
	}
	return strings.Join(strings.Fields(t), " ")
}

// PrimaryKeyColumns returns the enabled columns of the enabled primary key
// columns of t, in declaration order.
func PrimaryKeyColumns(t *config.Table) []*config.Column {
	var cols []*config.Column
	for _, pk := range t.PrimaryKeyColumns() {
		if !pk.Enabled() {
			continue
		}
		col, ok := pk.FindColumn()
		if !ok || !col.Enabled() {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// PrimaryKeyType returns the Go type of the primary key of t:
//
//	no primary key column                  => []any
//	one primary key column of type T       => T
//	several primary key columns of type T  => []T
//	several primary key columns, mixed     => []any
func (c *Config) PrimaryKeyType(t *config.Table) GoType {
	cols := PrimaryKeyColumns(t)
	switch len(cols) {
	case 0:
		return SliceOf(TypeAny)
	case 1:
		return c.ColumnType(cols[0])
	}
	first := c.ColumnType(cols[0])
	for _, col := range cols[1:] {
		if c.ColumnType(col) != first {
			return SliceOf(TypeAny)
		}
	}
	return SliceOf(first)
}
