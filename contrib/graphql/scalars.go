package graphql

import "github.com/syssam/tablegen/compiler/gen"

// Custom scalars, declared in the schema when a column uses them.
const (
	ScalarTime = "Time"
	ScalarJSON = "JSON"
	ScalarUUID = "UUID"
	ScalarAny  = "Any"
)

var (
	custom      = map[string]bool{ScalarTime: true, ScalarJSON: true, ScalarUUID: true, ScalarAny: true}
	scalarOrder = []string{ScalarTime, ScalarJSON, ScalarUUID, ScalarAny}
)

// scalarOf returns the GraphQL scalar of a Go type. Named types without a
// scalar of their own are exposed as strings.
func scalarOf(t gen.GoType) string {
	t = t.Elem()
	switch t {
	case gen.TypeTime:
		return ScalarTime
	case gen.TypeJSON:
		return ScalarJSON
	case gen.TypeUUID:
		return ScalarUUID
	case gen.TypeAny:
		return ScalarAny
	case gen.TypeBytes:
		return "String"
	}
	if t.PkgPath != "" || t.Slice {
		return "String"
	}
	switch t.Name {
	case "bool":
		return "Boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return "Int"
	case "float32", "float64":
		return "Float"
	default:
		return "String"
	}
}
