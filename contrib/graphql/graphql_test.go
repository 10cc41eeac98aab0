package graphql

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
)

const shopYAML = `
name: shop
dbmses:
  - name: main
    schemas:
      - name: public
        tables:
          - name: users
            comment: a registered customer
            columns:
              - { name: id, databaseType: integer }
              - { name: name, databaseType: varchar }
              - { name: nickname, databaseType: text, nullable: true }
              - { name: created_at, databaseType: timestamp }
              - { name: password, databaseType: text, graphqlSkip: true }
            primaryKeyColumns:
              - { name: id }
          - name: orders
            columns:
              - { name: id, databaseType: bigint }
              - { name: user_id, databaseType: integer }
              - { name: reviewer_id, databaseType: integer, nullable: true }
              - { name: total, databaseType: numeric }
              - { name: payload, databaseType: jsonb, nullable: true }
            primaryKeyColumns:
              - { name: id }
            foreignKeys:
              - name: orders_user_fk
                foreignKeyColumns:
                  - { name: user_id, foreignTableName: users, foreignColumnName: id }
              - name: orders_reviewer_fk
                foreignKeyColumns:
                  - { name: reviewer_id, foreignTableName: users, foreignColumnName: id }
              - name: orders_ghost_fk
                foreignKeyColumns:
                  - { name: user_id, foreignTableName: ghosts, foreignColumnName: id }
          - name: audit_log
            graphqlSkip: true
            columns:
              - { name: id, databaseType: integer }
          - name: archive
            enabled: false
            columns:
              - { name: id, databaseType: integer }
`

func loadShop(t *testing.T) *config.Project {
	t.Helper()
	p, err := config.Load(strings.NewReader(shopYAML))
	require.NoError(t, err)
	return p
}

func TestGenerate(t *testing.T) {
	doc, err := Generate(loadShop(t))
	require.NoError(t, err)

	var objects []string
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object {
			objects = append(objects, def.Name)
		}
	}
	assert.Equal(t, []string{"User", "Order"}, objects)

	user := doc.Definitions.ForName("User")
	assert.Equal(t, "a registered customer", user.Description)
	assert.Equal(t, "ID!", user.Fields.ForName("id").Type.String())
	assert.Equal(t, "String!", user.Fields.ForName("name").Type.String())
	assert.Equal(t, "String", user.Fields.ForName("nickname").Type.String())
	assert.Equal(t, "Time!", user.Fields.ForName("createdAt").Type.String())
	assert.Nil(t, user.Fields.ForName("password"))

	order := doc.Definitions.ForName("Order")
	assert.Equal(t, "ID!", order.Fields.ForName("id").Type.String())
	assert.Equal(t, "Int!", order.Fields.ForName("userID").Type.String())
	assert.Equal(t, "Float!", order.Fields.ForName("total").Type.String())
	assert.Equal(t, "JSON", order.Fields.ForName("payload").Type.String())
	assert.Equal(t, "User!", order.Fields.ForName("user").Type.String())
	assert.Equal(t, "User", order.Fields.ForName("reviewer").Type.String())
	assert.Nil(t, order.Fields.ForName("ordersGhostFk"), "unresolvable foreign keys are dropped")

	assert.NotNil(t, doc.Definitions.ForName("Time"))
	assert.NotNil(t, doc.Definitions.ForName("JSON"))
	assert.Nil(t, doc.Definitions.ForName("UUID"))
	assert.Nil(t, doc.Definitions.ForName("Query"))
}

func TestGenerateQuery(t *testing.T) {
	doc, err := Generate(loadShop(t), WithQuery())
	require.NoError(t, err)
	query := doc.Definitions.ForName("Query")
	require.NotNil(t, query)
	assert.Equal(t, "[User!]!", query.Fields.ForName("users").Type.String())
	assert.Equal(t, "[Order!]!", query.Fields.ForName("orders").Type.String())
}

func TestGenerateTypeMapping(t *testing.T) {
	cfg := gen.MustNewConfig(gen.WithTypeMapping("numeric", gen.TypeString))
	doc, err := Generate(loadShop(t), WithGenConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, "String!", doc.Definitions.ForName("Order").Fields.ForName("total").Type.String())

	_, err = Generate(loadShop(t), WithGenConfig(nil))
	assert.Error(t, err)
	_, err = Generate(nil)
	assert.Error(t, err)
}

func TestGenerateDuplicateTypes(t *testing.T) {
	p, err := config.Load(strings.NewReader(`
name: p
dbmses:
  - name: d
    schemas:
      - name: a
        tables:
          - { name: users }
      - name: b
        tables:
          - { name: users }
`))
	require.NoError(t, err)
	_, err = Generate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p.d.b.users")
}

func TestFormat(t *testing.T) {
	doc, err := Generate(loadShop(t), WithQuery())
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Format(&sb, doc))
	sdl := sb.String()
	assert.Contains(t, sdl, "type User {")
	assert.Contains(t, sdl, "  id: ID!")
	assert.Contains(t, sdl, "scalar Time")

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: sdl})
	require.NoError(t, err)
	assert.NotNil(t, schema.Types["Order"])
	assert.NotNil(t, schema.Query)
}

func TestBind(t *testing.T) {
	doc, err := Generate(loadShop(t), WithQuery())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gqlgen.yml")
	cfg, err := LoadGQLGenConfig(path)
	require.NoError(t, err)
	cfg.Bind(doc, "github.com/org/shop/models", "schema.graphqls")
	cfg.Bind(doc, "github.com/org/shop/models", "schema.graphqls")
	require.NoError(t, SaveGQLGenConfig(path, cfg))

	read, err := LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"schema.graphqls"}, read.SchemaFilename)
	assert.Equal(t, StringList{"github.com/org/shop/models.User"}, read.Models["User"].Model)
	assert.Equal(t, StringList{"github.com/99designs/gqlgen/graphql.Time"}, read.Models["Time"].Model)
	assert.NotContains(t, read.Models, "Query")
}

func TestScalarOf(t *testing.T) {
	tests := []struct {
		typ  gen.GoType
		want string
	}{
		{gen.TypeBool, "Boolean"},
		{gen.TypeInt64, "Int"},
		{gen.TypeDouble, "Float"},
		{gen.TypeString, "String"},
		{gen.TypeBytes, "String"},
		{gen.TypeTime, ScalarTime},
		{gen.GoType{PkgPath: "time", Name: "Time", Pointer: true}, ScalarTime},
		{gen.TypeUUID, ScalarUUID},
		{gen.TypeAny, ScalarAny},
		{gen.GoType{PkgPath: "github.com/org/money", Name: "Amount"}, "String"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, scalarOf(tt.typ))
		})
	}
}
