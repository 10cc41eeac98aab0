package builder

import "github.com/syssam/tablegen/config"

// Phase is one pass of a build.
type Phase uint8

// Phases, in execution order.
const (
	PreMake Phase = iota
	Make
	PostMake
)

// Phases lists all phases in execution order.
var Phases = [...]Phase{PreMake, Make, PostMake}

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PreMake:
		return "PRE_MAKE"
	case Make:
		return "MAKE"
	case PostMake:
		return "POST_MAKE"
	default:
		return "INVALID"
	}
}

// Valid reports if p is a known phase.
func (p Phase) Valid() bool { return p <= PostMake }

// KeyInboundForeignKeys is the registration category of inbound foreign key
// callbacks. It is not a collection of the project tree.
const KeyInboundForeignKeys = "inboundForeignKeys"

// ancestorKeys are dispatched against the anchor's ancestors, in containment order.
var ancestorKeys = [...]struct {
	kind config.Kind
	key  string
}{
	{config.KindProject, config.KeyProjects},
	{config.KindDbms, config.KeyDbmses},
	{config.KindSchema, config.KeySchemas},
	{config.KindTable, config.KeyTables},
}

// tableKeys are dispatched against the children of the anchor's table.
var tableKeys = [...]string{
	config.KeyColumns,
	config.KeyIndexes,
	config.KeyPrimaryKeyColumns,
	config.KeyForeignKeys,
}

// descentKeys are the only collections the recursive descent walks through.
var descentKeys = [...]string{
	config.KeyDbmses,
	config.KeySchemas,
	config.KeyTables,
}

// Keys returns the collection keys callbacks can be registered for.
func Keys() []string {
	return []string{
		config.KeyProjects,
		config.KeyDbmses,
		config.KeySchemas,
		config.KeyTables,
		config.KeyColumns,
		config.KeyIndexes,
		config.KeyPrimaryKeyColumns,
		config.KeyForeignKeys,
	}
}

func validKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
