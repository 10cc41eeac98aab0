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

// GenApplication creates the translator of the application of p.
func (d *Dialect) GenApplication(p *config.Project) *translator.Translator {
	return d.newTranslator(p, ApplicationFile, d.makeApplication)
}

func (d *Dialect) makeApplication(tr *translator.Translator, _ *decl.File) (*decl.Declaration, error) {
	type manager struct{ field, entity string }
	var managers []manager

	tr.Builder().
		ForEveryProject(builder.PreMake, func(a *decl.Declaration, p *config.Project) error {
			a.AddDoc(fmt.Sprintf("%s holds the managers of project %s.", a.Name, p.Name()))
			return nil
		}).
		ForEveryTable(builder.Make, func(a *decl.Declaration, t *config.Table) error {
			entity := d.h.TypeName(t)
			field := gen.Plural(entity)
			managers = append(managers, manager{field: field, entity: entity})
			a.AddField(&decl.Field{Name: field, Type: jen.Op("*").Id(managerName(entity))})
			return nil
		})

	tr.OnMake(func(f *decl.File, a *decl.Declaration) error {
		tables := make([]jen.Code, 0, len(managers))
		for _, m := range managers {
			tables = append(tables, jen.Id(tableConst(m.entity)))
		}
		a.AddMethod(&decl.Method{
			Name:    "Tables",
			Doc:     "Tables returns the names of the tables of the application.",
			Results: []jen.Code{jen.Index().String()},
			Body:    []jen.Code{jen.Return(jen.Index().String().Values(tables...))},
		})
		f.AddStatement(
			jen.Comment(fmt.Sprintf("New%s returns an %s with a manager per table.", a.Name, a.Name)).Line().
				Func().Id("New"+a.Name).Params().Op("*").Id(a.Name).Block(
				jen.Return(jen.Op("&").Id(a.Name).Values(jen.DictFunc(func(dict jen.Dict) {
					for _, m := range managers {
						dict[jen.Id(m.field)] = jen.Op("&").Id(managerName(m.entity)).Values()
					}
				}))),
			),
		)
		return nil
	})

	a := decl.New(decl.Struct, "Application")
	a.Receiver = gen.ReceiverName(a.Name)
	return a, tr.Build(a)
}
