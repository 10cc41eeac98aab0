package standard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
)

const shopYAML = `
name: shop
packageName: github.com/org/shop/models
dbmses:
  - name: main
    schemas:
      - name: public
        tables:
          - name: users
            comment: a registered customer
            columns:
              - { name: id, databaseType: integer }
              - { name: name, databaseType: varchar(64) }
              - { name: nickname, databaseType: text, nullable: true }
              - { name: created_at, databaseType: timestamp }
              - { name: legacy, databaseType: integer, enabled: false }
            primaryKeyColumns:
              - { name: id }
          - name: orders
            columns:
              - { name: id, databaseType: bigint }
              - { name: user_id, databaseType: integer }
              - { name: type, alias: kind, databaseType: varchar }
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
            primaryKeyColumns:
              - { name: order_id }
              - { name: line }
            foreignKeys:
              - name: items_order_fk
                foreignKeyColumns:
                  - { name: order_id, foreignTableName: orders, foreignColumnName: id }
`

func loadShop(t *testing.T) *config.Project {
	t.Helper()
	p, err := config.Load(strings.NewReader(shopYAML))
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

// generate runs the standard dialect over p and returns the generated
// sources keyed by file name.
func generate(t *testing.T, p *config.Project, opts ...gen.Option) map[string]string {
	t.Helper()
	target := t.TempDir()
	result, err := Generate(context.Background(), p, append([]gen.Option{gen.WithTarget(target)}, opts...)...)
	require.NoError(t, err)
	files := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		src, err := os.ReadFile(filepath.Join(target, f.Name))
		require.NoError(t, err)
		files[f.Name] = string(src)
	}
	return files
}
