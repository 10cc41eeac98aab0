package standard

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/decl"
	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

func TestGenerateFiles(t *testing.T) {
	files := generate(t, loadShop(t))
	var names []string
	for name := range files {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{
		"user.go", "user_impl.go", "user_manager.go",
		"order.go", "order_impl.go", "order_manager.go",
		"line_item.go", "line_item_impl.go", "line_item_manager.go",
		ApplicationFile,
	}, names)
	for name, src := range files {
		assert.True(t, strings.HasPrefix(src, "// "+gen.DefaultHeader), name)
		assert.Contains(t, src, "package models", name)
	}
}

func TestEntity(t *testing.T) {
	files := generate(t, loadShop(t))

	user := files["user.go"]
	assert.Contains(t, user, "// User is a row of table users.")
	assert.Contains(t, user, "// a registered customer")
	assert.Contains(t, user, "type User interface {")
	assert.Contains(t, user, "fmt.Stringer")
	assert.Contains(t, user, "ID() int")
	assert.Contains(t, user, "SetID(id int) User")
	assert.Contains(t, user, "Nickname() *string")
	assert.Contains(t, user, "SetNickname(nickname *string) User")
	assert.Contains(t, user, "CreatedAt() time.Time")
	assert.Contains(t, user, `"time"`)
	assert.NotContains(t, user, "Legacy")

	order := files["order.go"]
	assert.Contains(t, order, "Kind() string", "aliases name the accessors")
	assert.Contains(t, order, "Payload() json.RawMessage", "nillable types are not wrapped")
	assert.Contains(t, order, "UserID() int")
}

func TestImpl(t *testing.T) {
	files := generate(t, loadShop(t))
	impl := files["user_impl.go"]

	assert.Contains(t, impl, "// UserImpl is the in-memory implementation of User.")
	assert.Contains(t, impl, "type UserImpl struct {")
	assert.Regexp(t, `createdAt\s+time\.Time`, impl)
	assert.Contains(t, impl, "var _ User = (*UserImpl)(nil)")
	assert.Contains(t, impl, "func (ui *UserImpl) Name() string {\n\treturn ui.name\n}")
	assert.Contains(t, impl, "func (ui *UserImpl) SetName(name string) User {\n\tui.name = name\n\treturn ui\n}")
	assert.Contains(t, impl, `fmt.Sprintf("UserImpl{id: %v, name: %v, nickname: %v, created_at: %v}", ui.id, ui.name, ui.nickname, ui.createdAt)`)
	assert.Contains(t, impl, "func (ui *UserImpl) MarshalJSON() ([]byte, error) {")
	assert.Regexp(t, `"created_at":\s+ui\.createdAt`, impl)
	assert.NotContains(t, impl, "legacy")

	t.Run("json disabled", func(t *testing.T) {
		files := generate(t, loadShop(t), gen.WithoutFeatures(gen.FeatureJSON))
		assert.NotContains(t, files["user_impl.go"], "MarshalJSON")
		assert.Contains(t, files["user_impl.go"], "String() string")
	})
}

func TestManager(t *testing.T) {
	files := generate(t, loadShop(t))

	orders := files["order_manager.go"]
	assert.Contains(t, orders, `OrderTable = "orders"`)
	assert.Contains(t, orders, "type OrderManager struct{}")
	assert.Contains(t, orders, "func (om *OrderManager) Table() string {\n\treturn OrderTable\n}")
	assert.Contains(t, orders, "func (om *OrderManager) New() Order {\n\treturn &OrderImpl{}\n}")
	assert.Contains(t, orders, `return []string{"id", "user_id", "type", "payload"}`)
	assert.Contains(t, orders, "func (om *OrderManager) PrimaryKey(e Order) int64 {\n\treturn e.ID()\n}")
	assert.Contains(t, orders, "func (om *OrderManager) FindByUserID(e Order, candidates []User) User {")
	assert.Contains(t, orders, "e.UserID() == c.ID() {")
	assert.NotContains(t, orders, "FindLineItems", "inbound finders are off by default")

	items := files["line_item_manager.go"]
	assert.Contains(t, items, "func (lim *LineItemManager) PrimaryKey(e LineItem) []int64 {\n\treturn []int64{e.OrderID(), e.Line()}\n}")
	assert.Contains(t, items, "func (lim *LineItemManager) FindByOrderID(e LineItem, candidates []Order) Order {")

	users := files["user_manager.go"]
	assert.NotContains(t, users, "FindBy", "users has no foreign key")

	t.Run("inbound finders", func(t *testing.T) {
		files := generate(t, loadShop(t), gen.WithFeatures(gen.FeatureInboundFinders))
		users := files["user_manager.go"]
		assert.Contains(t, users, "func (um *UserManager) FindOrdersByUserID(e User, candidates []Order) []Order {")
		assert.Contains(t, users, "c.UserID() == e.ID() {")
		assert.Contains(t, users, "found = append(found, c)")
		orders := files["order_manager.go"]
		assert.Contains(t, orders, "func (om *OrderManager) FindLineItemsByOrderID(e Order, candidates []LineItem) []LineItem {")
	})
}

func TestApplication(t *testing.T) {
	files := generate(t, loadShop(t))
	app := files[ApplicationFile]

	assert.Contains(t, app, "// Application holds the managers of project shop.")
	assert.Regexp(t, `Users\s+\*UserManager`, app)
	assert.Regexp(t, `LineItems\s+\*LineItemManager`, app)
	assert.Contains(t, app, "return []string{UserTable, OrderTable, LineItemTable}")
	assert.Contains(t, app, "func NewApplication() *Application {")
	assert.Regexp(t, `Orders:\s+&OrderManager\{\}`, app)
}

func TestDisabledTargets(t *testing.T) {
	p := loadShop(t)
	table(t, p, "users").Data()[config.PropEnabled] = false
	files := generate(t, p, gen.WithFeatures(gen.FeatureInboundFinders))

	assert.NotContains(t, files, "user.go")
	assert.NotContains(t, files["order_manager.go"], "FindByUserID", "the referenced entity is not generated")
	assert.Contains(t, files["order_manager.go"], "FindLineItemsByOrderID")
	assert.NotContains(t, files[ApplicationFile], "UserManager")

	t.Run("disabled foreign key column", func(t *testing.T) {
		p := loadShop(t)
		userID, ok := table(t, p, "orders").Column("user_id")
		require.True(t, ok)
		userID.Data()[config.PropEnabled] = false
		files := generate(t, p)
		assert.NotContains(t, files["order_manager.go"], "FindByUserID")
	})
}

func TestDecorators(t *testing.T) {
	decorate := func(kind gen.TranslatorKind, tr *translator.Translator) {
		if kind != gen.KindEntity {
			return
		}
		tr.OnMake(func(_ *decl.File, e *decl.Declaration) error {
			e.AddMethod(&decl.Method{Name: "Validate", Results: []jen.Code{jen.Error()}})
			return nil
		})
	}
	files := generate(t, loadShop(t), gen.WithDecorators(decorate))
	assert.Contains(t, files["user.go"], "Validate() error")
	assert.NotContains(t, files["user_impl.go"], "Validate")
}

func TestEqual(t *testing.T) {
	d := NewDialect(gen.NewGenerator(loadShop(t), gen.MustNewConfig()))
	render := func(at, bt gen.GoType) string {
		conds := d.equal(jen.Id("a"), at, jen.Id("b"), bt)
		cond := jen.Add(conds[0])
		for _, c := range conds[1:] {
			cond.Op("&&").Add(c)
		}
		return cond.GoString()
	}
	ptr := func(t gen.GoType) gen.GoType {
		t.Pointer = true
		return t
	}

	tests := []struct {
		name   string
		at, bt gen.GoType
		want   string
	}{
		{"same", gen.TypeInt, gen.TypeInt, "a == b"},
		{"local pointer", ptr(gen.TypeInt), gen.TypeInt, "a != nil && *a == b"},
		{"both pointers", ptr(gen.TypeString), ptr(gen.TypeString), "a != nil && b != nil && *a == *b"},
		{"bytes", gen.TypeBytes, gen.TypeBytes, "bytes.Equal(a, b)"},
		{"numeric conversion", gen.TypeInt, gen.TypeInt64, "int64(a) == b"},
		{"slices", gen.GoType{Name: "string", Slice: true}, gen.GoType{Name: "string", Slice: true}, "reflect.DeepEqual(a, b)"},
		{"unrelated", gen.TypeString, gen.TypeInt, "fmt.Sprint(a) == fmt.Sprint(b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(tt.at, tt.bt))
		})
	}
}

func TestDialect(t *testing.T) {
	g := gen.NewGenerator(loadShop(t), gen.MustNewConfig())
	d := NewDialect(g)
	assert.Equal(t, "standard", d.Name())

	tr := d.GenManager(table(t, g.Project(), "orders"))
	assert.Equal(t, "order_manager.go", tr.FileName())
	assert.Equal(t, "models", tr.Package())
	f, err := tr.Get()
	require.NoError(t, err)
	m, ok := f.Declaration()
	require.True(t, ok)
	assert.True(t, m.HasMethod("FindByUserID"))
	assert.True(t, m.HasMethod("Columns"))
	c, ok := m.Const("OrderTable")
	require.True(t, ok)
	assert.Equal(t, "orders", c.Value)
}
