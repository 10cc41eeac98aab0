package gen

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/builder"
	"github.com/syssam/tablegen/compiler/decl"
	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

const shopYAML = `
name: shop
packageName: github.com/org/shop/models
dbmses:
  - name: main
    typeName: postgres
    schemas:
      - name: public
        tables:
          - name: users
            columns:
              - { name: id, databaseType: integer }
              - { name: name, databaseType: varchar(64) }
              - { name: nickname, databaseType: TEXT, nullable: true }
              - { name: created_at, databaseType: timestamp with time zone }
              - { name: legacy, databaseType: integer, enabled: false }
            primaryKeyColumns:
              - { name: id }
          - name: orders
            columns:
              - { name: id, databaseType: bigint }
              - { name: user_id, databaseType: integer }
              - { name: type, alias: kind, databaseType: varchar }
              - { name: range, databaseType: int4 }
              - { name: payload, databaseType: jsonb, nullable: true }
            primaryKeyColumns:
              - { name: id }
            foreignKeys:
              - name: orders_user_fk
                foreignKeyColumns:
                  - { name: user_id, foreignTableName: users, foreignColumnName: id }
          - name: order_items
            alias: line_item
            columns:
              - { name: order_id, databaseType: bigint }
              - { name: line, databaseType: int8 }
              - { name: sku, goType: github.com/org/shop/sku.Code }
            primaryKeyColumns:
              - { name: order_id }
              - { name: line }
          - name: archive
            enabled: false
`

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func loadShop(t *testing.T) *config.Project {
	t.Helper()
	p, err := config.Load(stringsReader(shopYAML))
	require.NoError(t, err)
	return p
}

func table(t *testing.T, p *config.Project, name string) *config.Table {
	t.Helper()
	d, ok := p.Dbms("main")
	require.True(t, ok)
	s, ok := d.Schema("public")
	require.True(t, ok)
	tbl, ok := s.Table(name)
	require.True(t, ok)
	return tbl
}

// mockDialect produces one small struct per translator. It can be told to
// fail one of them, and sets no header unless asked to.
type mockDialect struct {
	pkg    string
	fail   string
	header string
}

func (m *mockDialect) Name() string { return "mock" }

func (m *mockDialect) translator(anchor config.Document, typeName, file string) *translator.Translator {
	return translator.New(anchor, m.pkg, file, func(t *translator.Translator, _ *decl.File) (*decl.Declaration, error) {
		if file == m.fail {
			t.Builder().ForEveryTable(builder.Make, func(*decl.Declaration, *config.Table) error {
				return io.ErrUnexpectedEOF
			})
		}
		d := decl.New(decl.Struct, typeName)
		return d, t.Build(d)
	}, translator.WithHeader(m.header))
}

func (m *mockDialect) GenEntity(t *config.Table) *translator.Translator {
	return m.translator(t, TypeName(t), FileName(TypeName(t), ""))
}

func (m *mockDialect) GenImpl(t *config.Table) *translator.Translator {
	return m.translator(t, TypeName(t)+"Impl", FileName(TypeName(t), "impl"))
}

func (m *mockDialect) GenManager(t *config.Table) *translator.Translator {
	return m.translator(t, TypeName(t)+"Manager", FileName(TypeName(t), "manager"))
}

func (m *mockDialect) GenApplication(p *config.Project) *translator.Translator {
	return m.translator(p, "Application", "tablegen.go")
}

var _ Dialect = (*mockDialect)(nil)
