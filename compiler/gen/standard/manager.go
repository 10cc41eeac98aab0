package standard

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/builder"
	"github.com/syssam/tablegen/compiler/decl"
	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// GenManager creates the translator of the manager of t.
func (d *Dialect) GenManager(t *config.Table) *translator.Translator {
	return d.newTranslator(t, gen.FileName(d.h.TypeName(t), "manager"), d.makeManager)
}

func (d *Dialect) makeManager(tr *translator.Translator, _ *decl.File) (*decl.Declaration, error) {
	entity := d.h.TypeName(tr.MustTable())
	name := managerName(entity)
	recv := gen.ReceiverName(name)

	var columns []string
	b := tr.Builder().
		ForEveryTable(builder.PreMake, func(m *decl.Declaration, t *config.Table) error {
			m.AddDoc(fmt.Sprintf("%s gives access to the rows of table %s.", m.Name, t.Name()))
			m.AddConst(&decl.Const{
				Name:  tableConst(entity),
				Doc:   fmt.Sprintf("%s holds the name of the table of %s.", tableConst(entity), entity),
				Value: t.Name(),
			})
			m.AddMethod(&decl.Method{
				Name:    "Table",
				Doc:     "Table returns the table name.",
				Results: []jen.Code{jen.String()},
				Body:    []jen.Code{jen.Return(jen.Id(tableConst(entity)))},
			})
			m.AddMethod(&decl.Method{
				Name:    "New",
				Doc:     fmt.Sprintf("New returns an empty %s.", entity),
				Results: []jen.Code{jen.Id(entity)},
				Body:    []jen.Code{jen.Return(jen.Op("&").Id(implName(entity)).Values())},
			})
			return nil
		}).
		ForEveryColumn(builder.Make, func(_ *decl.Declaration, c *config.Column) error {
			columns = append(columns, c.Name())
			return nil
		}).
		ForEveryForeignKey(builder.Make, func(m *decl.Declaration, fk *config.ForeignKey) error {
			if method, ok := d.forwardFinder(entity, fk); ok {
				m.AddMethod(method)
			}
			return nil
		}).
		ForEveryTable(builder.PostMake, func(m *decl.Declaration, t *config.Table) error {
			m.AddMethod(d.primaryKeyMethod(entity, t))
			return nil
		})
	if d.h.FeatureEnabled(gen.FeatureInboundFinders.Name) {
		b.ForEveryForeignKeyReferencingThis(builder.Make, func(m *decl.Declaration, fk *config.ForeignKey) error {
			if method, ok := d.inboundFinder(entity, fk); ok {
				m.AddMethod(method)
			}
			return nil
		})
	}

	tr.OnMake(func(_ *decl.File, m *decl.Declaration) error {
		values := make([]jen.Code, 0, len(columns))
		for _, c := range columns {
			values = append(values, jen.Lit(c))
		}
		m.AddMethod(&decl.Method{
			Name:    "Columns",
			Doc:     "Columns returns the column names, in declaration order.",
			Results: []jen.Code{jen.Index().String()},
			Body:    []jen.Code{jen.Return(jen.Index().String().Values(values...))},
		})
		return nil
	})

	m := decl.New(decl.Struct, name)
	m.Receiver = recv
	return m, tr.Build(m)
}

// primaryKeyMethod returns the primary key of an entity: the value of its
// single key column, or a slice of the values of all key columns.
func (d *Dialect) primaryKeyMethod(entity string, t *config.Table) *decl.Method {
	typ := d.h.PrimaryKeyType(t)
	cols := gen.PrimaryKeyColumns(t)
	var value jen.Code
	if len(cols) == 1 {
		value = jen.Id("e").Dot(d.h.FieldName(cols[0])).Call()
	} else {
		getters := make([]jen.Code, 0, len(cols))
		for _, c := range cols {
			getters = append(getters, jen.Id("e").Dot(d.h.FieldName(c)).Call())
		}
		value = typ.Code().Values(getters...)
	}
	return &decl.Method{
		Name:    "PrimaryKey",
		Doc:     "PrimaryKey returns the primary key of e.",
		Params:  []decl.Param{{Name: "e", Type: jen.Id(entity)}},
		Results: []jen.Code{typ.Code()},
		Body:    []jen.Code{jen.Return(value)},
	}
}

// forwardFinder returns the method finding the entity referenced by fk among
// candidates. It reports false if the referenced entity is not generated.
func (d *Dialect) forwardFinder(entity string, fk *config.ForeignKey) (*decl.Method, bool) {
	pairs, ok := resolvePairs(fk)
	if !ok {
		return nil, false
	}
	target := pairs[0].target.Table()
	if !generated(target) {
		return nil, false
	}
	targetType := d.h.TypeName(target)
	name := "FindBy" + localNames(pairs)
	return &decl.Method{
		Name: name,
		Doc:  fmt.Sprintf("%s returns the %s referenced by e through %s, or nil if none of candidates matches.", name, targetType, fk.Name()),
		Params: []decl.Param{
			{Name: "e", Type: jen.Id(entity)},
			{Name: "candidates", Type: jen.Index().Id(targetType)},
		},
		Results: []jen.Code{jen.Id(targetType)},
		Body: []jen.Code{
			jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id("candidates")).Block(
				jen.If(d.matches(pairs, "e", "c")).Block(jen.Return(jen.Id("c"))),
			),
			jen.Return(jen.Nil()),
		},
	}, true
}

// inboundFinder returns the method finding the entities referencing an
// entity through fk among candidates.
func (d *Dialect) inboundFinder(entity string, fk *config.ForeignKey) (*decl.Method, bool) {
	pairs, ok := resolvePairs(fk)
	if !ok {
		return nil, false
	}
	source := fk.Table()
	if !generated(source) {
		return nil, false
	}
	sourceType := d.h.TypeName(source)
	name := "Find" + gen.Plural(sourceType) + "By" + localNames(pairs)
	return &decl.Method{
		Name: name,
		Doc:  fmt.Sprintf("%s returns the %s of candidates referencing e through %s.", name, gen.Plural(sourceType), fk.Name()),
		Params: []decl.Param{
			{Name: "e", Type: jen.Id(entity)},
			{Name: "candidates", Type: jen.Index().Id(sourceType)},
		},
		Results: []jen.Code{jen.Index().Id(sourceType)},
		Body: []jen.Code{
			jen.Var().Id("found").Index().Id(sourceType),
			jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id("candidates")).Block(
				jen.If(d.matches(pairs, "c", "e")).Block(
					jen.Id("found").Op("=").Append(jen.Id("found"), jen.Id("c")),
				),
			),
			jen.Return(jen.Id("found")),
		},
	}, true
}
