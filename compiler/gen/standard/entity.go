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

// GenEntity creates the translator of the entity interface of t.
func (d *Dialect) GenEntity(t *config.Table) *translator.Translator {
	return d.newTranslator(t, gen.FileName(d.h.TypeName(t), ""), d.makeEntity)
}

func (d *Dialect) makeEntity(tr *translator.Translator, _ *decl.File) (*decl.Declaration, error) {
	name := d.h.TypeName(tr.MustTable())
	tr.Builder().
		ForEveryTable(builder.PreMake, func(e *decl.Declaration, t *config.Table) error {
			e.AddDoc(fmt.Sprintf("%s is a row of table %s.", e.Name, t.Name()))
			if c := t.Comment(); c != "" {
				e.AddDoc("", c)
			}
			e.AddImplements(jen.Qual("fmt", "Stringer"))
			return nil
		}).
		ForEveryColumn(builder.Make, func(e *decl.Declaration, c *config.Column) error {
			field := d.h.FieldName(c)
			typ := d.h.ColumnType(c)
			doc := fmt.Sprintf("%s returns the value of column %s.", field, c.Name())
			if comment := c.Comment(); comment != "" {
				doc = fmt.Sprintf("%s returns %s.", field, comment)
			}
			e.AddMethod(&decl.Method{
				Name:    field,
				Doc:     doc,
				Results: []jen.Code{typ.Code()},
			})
			e.AddMethod(&decl.Method{
				Name:    "Set" + field,
				Doc:     fmt.Sprintf("Set%s sets the value of column %s.", field, c.Name()),
				Params:  []decl.Param{{Name: gen.VarName(c), Type: typ.Code()}},
				Results: []jen.Code{jen.Id(name)},
			})
			return nil
		})
	e := decl.New(decl.Interface, name)
	return e, tr.Build(e)
}
