package builder

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/config"
)

const shop = `
name: shop
dbmses:
  - name: main
    schemas:
      - name: public
        tables:
          - name: users
            columns:
              - { name: id, databaseType: integer }
              - { name: name, databaseType: varchar }
              - { name: legacy, enabled: false }
            primaryKeyColumns:
              - { name: id }
            indexes:
              - name: users_name_idx
                indexColumns:
                  - { name: name }
          - name: orders
            columns:
              - { name: id, databaseType: integer }
              - { name: user_id, databaseType: integer }
            primaryKeyColumns:
              - { name: id }
            foreignKeys:
              - name: orders_user_fk
                foreignKeyColumns:
                  - { name: user_id, foreignTableName: users, foreignColumnName: id }
          - name: archive
            enabled: false
      - name: staging
        enabled: false
        tables:
          - name: imports
  - name: replica
    schemas:
      - name: public
        tables:
          - name: snapshots
`

// trace is the declaration type used in tests. It records every callback.
type trace struct {
	events []string
}

func (tr *trace) add(format string, args ...any) {
	tr.events = append(tr.events, fmt.Sprintf(format, args...))
}

func loadProject(t *testing.T, src string) *config.Project {
	t.Helper()
	p, err := config.Load(strings.NewReader(src))
	require.NoError(t, err)
	return p
}

func tableOf(t *testing.T, p *config.Project, dbms, schema, table string) *config.Table {
	t.Helper()
	d, ok := p.Dbms(dbms)
	require.True(t, ok)
	s, ok := d.Schema(schema)
	require.True(t, ok)
	tbl, ok := s.Table(table)
	require.True(t, ok)
	return tbl
}

// recordAll registers a recording callback for every key in the given phase.
func recordAll(t *testing.T, b *Builder[*trace], phase Phase) {
	t.Helper()
	for _, key := range Keys() {
		key := key
		require.NoError(t, b.Register(phase, key, func(tr *trace, d config.Document) error {
			tr.add("%s %s %s", phase, key, config.Path(d))
			return nil
		}))
	}
	b.ForEveryForeignKeyReferencingThis(phase, func(tr *trace, fk *config.ForeignKey) error {
		tr.add("%s %s %s", phase, KeyInboundForeignKeys, config.Path(fk))
		return nil
	})
}

func TestBuildTableAnchor(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	recordAll(t, b, Make)
	tr := &trace{}
	require.NoError(t, b.Build(users, tr))

	assert.Equal(t, []string{
		"MAKE projects shop",
		"MAKE dbmses shop.main",
		"MAKE schemas shop.main.public",
		"MAKE tables shop.main.public.users",
		"MAKE columns shop.main.public.users.id",
		"MAKE columns shop.main.public.users.name",
		"MAKE indexes shop.main.public.users.users_name_idx",
		"MAKE primaryKeyColumns shop.main.public.users.id",
		"MAKE inboundForeignKeys shop.main.public.orders.orders_user_fk",
	}, tr.events)
}

func TestBuildColumnAnchor(t *testing.T) {
	p := loadProject(t, shop)
	orders := tableOf(t, p, "main", "public", "orders")

	b := New[*trace]()
	recordAll(t, b, Make)
	tr := &trace{}
	require.NoError(t, b.Build(orders.Columns()[1], tr))

	// A document below a table drives table detail dispatch, but not inbound
	// discovery, which requires the anchor to be the table itself.
	assert.Equal(t, []string{
		"MAKE projects shop",
		"MAKE dbmses shop.main",
		"MAKE schemas shop.main.public",
		"MAKE tables shop.main.public.orders",
		"MAKE columns shop.main.public.orders.id",
		"MAKE columns shop.main.public.orders.user_id",
		"MAKE primaryKeyColumns shop.main.public.orders.id",
		"MAKE foreignKeys shop.main.public.orders.orders_user_fk",
	}, tr.events)
}

func TestBuildProjectAnchor(t *testing.T) {
	p := loadProject(t, shop)

	b := New[*trace]()
	recordAll(t, b, Make)
	tr := &trace{}
	require.NoError(t, b.Build(p, tr))

	assert.Equal(t, []string{
		"MAKE projects shop",
		"MAKE dbmses shop.main",
		"MAKE schemas shop.main.public",
		"MAKE tables shop.main.public.users",
		"MAKE tables shop.main.public.orders",
		"MAKE dbmses shop.replica",
		"MAKE schemas shop.replica.public",
		"MAKE tables shop.replica.public.snapshots",
	}, tr.events)
}

func TestBuildSchemaAnchor(t *testing.T) {
	p := loadProject(t, shop)
	d, _ := p.Dbms("main")
	staging, ok := d.Schema("staging")
	require.True(t, ok)

	b := New[*trace]()
	b.ForEveryTable(Make, func(tr *trace, tbl *config.Table) error {
		tr.add("%s", tbl.Name())
		return nil
	})
	tr := &trace{}
	require.NoError(t, b.Build(staging, tr))
	// Disabled anchors are built as asked, only their descendants are filtered.
	assert.Equal(t, []string{"imports"}, tr.events)
}

// Ancestors of the anchor run their own hooks but are never descended into,
// so siblings of the anchor stay untouched.
func TestDescentBoundary(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	count := func(anchor config.Document) map[string]int {
		counts := make(map[string]int)
		b := New[*trace]()
		for _, key := range []string{config.KeyDbmses, config.KeySchemas, config.KeyTables} {
			key := key
			require.NoError(t, b.Register(Make, key, func(*trace, config.Document) error {
				counts[key]++
				return nil
			}))
		}
		require.NoError(t, b.Build(anchor, &trace{}))
		return counts
	}

	t.Run("project anchor descends to every enabled table", func(t *testing.T) {
		assert.Equal(t, map[string]int{"dbmses": 2, "schemas": 2, "tables": 3}, count(p))
	})

	t.Run("table anchor skips sibling tables of its ancestors", func(t *testing.T) {
		assert.Equal(t, map[string]int{"dbmses": 1, "schemas": 1, "tables": 1}, count(users))
	})
}

func TestPhaseOrder(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	for _, phase := range []Phase{PostMake, Make, PreMake} {
		phase := phase
		b.ForEveryColumn(phase, func(tr *trace, c *config.Column) error {
			tr.add("%s %s", phase, c.Name())
			return nil
		})
	}
	tr := &trace{}
	require.NoError(t, b.Build(users, tr))
	assert.Equal(t, []string{
		"PRE_MAKE id", "PRE_MAKE name",
		"MAKE id", "MAKE name",
		"POST_MAKE id", "POST_MAKE name",
	}, tr.events)
}

func TestLaterPhasesObserveEarlierOnes(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	b.ForEveryTable(PreMake, func(tr *trace, tbl *config.Table) error {
		tr.add("field")
		return nil
	})
	b.ForEveryTable(PostMake, func(tr *trace, tbl *config.Table) error {
		tr.add("fields=%d", len(tr.events))
		return nil
	})
	tr := &trace{}
	require.NoError(t, b.Build(users, tr))
	assert.Equal(t, []string{"field", "fields=1"}, tr.events)
}

func TestDuplicateRegistrations(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	first := func(tr *trace, c *config.Column) error {
		tr.add("first %s", c.Name())
		return nil
	}
	b.ForEveryColumn(Make, first).
		ForEveryColumn(Make, func(tr *trace, c *config.Column) error {
			tr.add("second %s", c.Name())
			return nil
		}).
		ForEveryColumn(Make, first)
	assert.Equal(t, 3, b.Count(Make, config.KeyColumns))

	tr := &trace{}
	require.NoError(t, b.Build(users, tr))
	assert.Equal(t, []string{
		"first id", "second id", "first id",
		"first name", "second name", "first name",
	}, tr.events)
}

func TestRegisterErrors(t *testing.T) {
	b := New[*trace]()
	noop := func(*trace, config.Document) error { return nil }

	tests := []struct {
		name  string
		phase Phase
		key   string
		fn    Callback[*trace]
		msg   string
	}{
		{name: "unknown key", phase: Make, key: "widgets", fn: noop, msg: "unknown key"},
		{name: "unknown phase", phase: Phase(7), key: config.KeyTables, fn: noop, msg: "unknown phase"},
		{name: "inbound category", phase: Make, key: KeyInboundForeignKeys, fn: noop, msg: "use RegisterInboundForeignKey"},
		{name: "nested collection", phase: Make, key: config.KeyForeignKeyColumns, fn: noop, msg: "unknown key"},
		{name: "nil callback", phase: Make, key: config.KeyTables, fn: nil, msg: "nil callback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Register(tt.phase, tt.key, tt.fn)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRegistration)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	t.Run("inbound", func(t *testing.T) {
		err := b.RegisterInboundForeignKey(Phase(9), func(*trace, *config.ForeignKey) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidRegistration)
		err = b.RegisterInboundForeignKey(Make, nil)
		assert.ErrorIs(t, err, ErrInvalidRegistration)
	})

	t.Run("typed helpers panic", func(t *testing.T) {
		assert.Panics(t, func() { b.ForEveryTable(Make, nil) })
		assert.Panics(t, func() { b.ForEveryColumn(Phase(5), func(*trace, *config.Column) error { return nil }) })
		assert.Panics(t, func() { b.ForEveryForeignKeyReferencingThis(Make, nil) })
	})

	for _, phase := range Phases {
		for _, key := range Keys() {
			assert.Zero(t, b.Count(phase, key))
		}
	}
}

func TestCallbackErrorAbortsBuild(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")
	boom := errors.New("boom")

	b := New[*trace]()
	b.ForEveryColumn(Make, func(tr *trace, c *config.Column) error {
		tr.add("make %s", c.Name())
		if c.Name() == "id" {
			return boom
		}
		return nil
	})
	b.ForEveryTable(PostMake, func(tr *trace, _ *config.Table) error {
		tr.add("post")
		return nil
	})

	tr := &trace{}
	err := b.Build(users, tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.ErrorIs(t, err, boom)

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, Make, de.Phase)
	assert.Equal(t, config.KeyColumns, de.Key)
	assert.Equal(t, "shop.main.public.users.id", config.Path(de.Node))
	assert.Equal(t, `builder: columns callback failed in phase MAKE on Column "shop.main.public.users.id": boom`, err.Error())
	assert.Equal(t, []string{"make id"}, tr.events, "nothing runs after the failing callback")
}

func TestInboundCallbackError(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	b.ForEveryForeignKeyReferencingThis(PreMake, func(*trace, *config.ForeignKey) error {
		return errors.New("no finders")
	})
	err := b.Build(users, &trace{})
	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KeyInboundForeignKeys, de.Key)
	assert.Equal(t, PreMake, de.Phase)
}

func TestBuildIsIdempotent(t *testing.T) {
	p := loadProject(t, shop)
	before := loadProject(t, shop).Data()
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	for _, phase := range Phases {
		recordAll(t, b, phase)
	}
	first, second := &trace{}, &trace{}
	require.NoError(t, b.Build(users, first))
	require.NoError(t, b.Build(users, second))
	require.NoError(t, b.Build(p, &trace{}))

	assert.Equal(t, first.events, second.events)
	assert.Equal(t, before, p.Data(), "the project tree is never mutated")
}

func TestNonListCollectionsAreSkipped(t *testing.T) {
	p := loadProject(t, `
name: p
dbmses:
  - name: d
    schemas:
      - name: s
        tables:
          - name: t
            columns: not-a-list
            indexes:
              - { name: ok }
              - 42
`)
	tbl := tableOf(t, p, "d", "s", "t")
	b := New[*trace]()
	recordAll(t, b, Make)
	tr := &trace{}
	require.NoError(t, b.Build(tbl, tr))
	assert.Equal(t, []string{
		"MAKE projects p",
		"MAKE dbmses p.d",
		"MAKE schemas p.d.s",
		"MAKE tables p.d.s.t",
		"MAKE indexes p.d.s.t.ok",
	}, tr.events)
}

func TestConcurrentRegistration(t *testing.T) {
	b := New[*trace]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.ForEveryTable(Make, func(*trace, *config.Table) error { return nil })
		}()
		go func() {
			defer wg.Done()
			b.ForEveryForeignKeyReferencingThis(Make, func(*trace, *config.ForeignKey) error { return nil })
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, b.Count(Make, config.KeyTables))
	assert.Equal(t, 50, b.Count(Make, KeyInboundForeignKeys))
}

func TestRegisterDuringBuild(t *testing.T) {
	p := loadProject(t, shop)
	users := tableOf(t, p, "main", "public", "users")

	b := New[*trace]()
	b.ForEveryTable(Make, func(tr *trace, _ *config.Table) error {
		tr.add("outer")
		b.ForEveryTable(Make, func(tr *trace, _ *config.Table) error {
			tr.add("inner")
			return nil
		})
		return nil
	})
	tr := &trace{}
	require.NoError(t, b.Build(users, tr))
	assert.Equal(t, []string{"outer"}, tr.events, "callbacks added during a dispatch fire on the next one")
}

func TestBuildNilAnchor(t *testing.T) {
	b := New[*trace]()
	recordAll(t, b, Make)
	tr := &trace{}
	require.NoError(t, b.Build(nil, tr))
	assert.Empty(t, tr.events)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "PRE_MAKE", PreMake.String())
	assert.Equal(t, "POST_MAKE", PostMake.String())
	assert.Equal(t, "INVALID", Phase(4).String())
	assert.False(t, Phase(3).Valid())
}
