package standard

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/builder"
	"github.com/syssam/tablegen/compiler/decl"
	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// GenImpl creates the translator of the implementation struct of t.
func (d *Dialect) GenImpl(t *config.Table) *translator.Translator {
	return d.newTranslator(t, gen.FileName(d.h.TypeName(t), "impl"), d.makeImpl)
}

func (d *Dialect) makeImpl(tr *translator.Translator, _ *decl.File) (*decl.Declaration, error) {
	entity := d.h.TypeName(tr.MustTable())
	name := implName(entity)
	recv := gen.ReceiverName(name)

	var columns []*config.Column
	tr.Builder().
		ForEveryTable(builder.PreMake, func(e *decl.Declaration, t *config.Table) error {
			e.AddDoc(fmt.Sprintf("%s is the in-memory implementation of %s.", e.Name, entity))
			return nil
		}).
		ForEveryColumn(builder.Make, func(e *decl.Declaration, c *config.Column) error {
			columns = append(columns, c)
			field := d.h.FieldName(c)
			v := gen.VarName(c)
			typ := d.h.ColumnType(c)
			e.AddField(&decl.Field{Name: v, Type: typ.Code()})
			e.AddMethod(&decl.Method{
				Name:    field,
				Doc:     fmt.Sprintf("%s returns the value of column %s.", field, c.Name()),
				Results: []jen.Code{typ.Code()},
				Body:    []jen.Code{jen.Return(jen.Id(recv).Dot(v))},
			})
			e.AddMethod(&decl.Method{
				Name:    "Set" + field,
				Doc:     fmt.Sprintf("Set%s sets the value of column %s.", field, c.Name()),
				Params:  []decl.Param{{Name: v, Type: typ.Code()}},
				Results: []jen.Code{jen.Id(entity)},
				Body: []jen.Code{
					jen.Id(recv).Dot(v).Op("=").Id(v),
					jen.Return(jen.Id(recv)),
				},
			})
			return nil
		})

	tr.OnMake(func(_ *decl.File, e *decl.Declaration) error {
		e.AddImplements(jen.Id(entity))
		return nil
	})
	tr.OnMake(func(_ *decl.File, e *decl.Declaration) error {
		e.AddMethod(stringMethod(e.Name, recv, columns))
		return nil
	})
	if d.h.FeatureEnabled(gen.FeatureJSON.Name) {
		tr.OnMake(func(_ *decl.File, e *decl.Declaration) error {
			e.AddMethod(marshalJSONMethod(e.Name, recv, columns))
			return nil
		})
	}

	e := decl.New(decl.Struct, name)
	e.Receiver = recv
	return e, tr.Build(e)
}

// stringMethod formats every column as name: value.
func stringMethod(name, recv string, columns []*config.Column) *decl.Method {
	parts := make([]string, 0, len(columns))
	args := []jen.Code{nil}
	for _, c := range columns {
		parts = append(parts, c.Name()+": %v")
		args = append(args, jen.Id(recv).Dot(gen.VarName(c)))
	}
	args[0] = jen.Lit(name + "{" + strings.Join(parts, ", ") + "}")
	return &decl.Method{
		Name:    "String",
		Doc:     "String implements fmt.Stringer.",
		Results: []jen.Code{jen.String()},
		Body:    []jen.Code{jen.Return(jen.Qual("fmt", "Sprintf").Call(args...))},
	}
}

// marshalJSONMethod encodes the columns as an object keyed by column name.
func marshalJSONMethod(name, recv string, columns []*config.Column) *decl.Method {
	return &decl.Method{
		Name:    "MarshalJSON",
		Doc:     fmt.Sprintf("MarshalJSON encodes the %s as a JSON object keyed by column name.", name),
		Results: []jen.Code{jen.Index().Byte(), jen.Error()},
		Body: []jen.Code{
			jen.Return(jen.Qual("encoding/json", "Marshal").Call(
				jen.Map(jen.String()).Any().Values(jen.DictFunc(func(dict jen.Dict) {
					for _, c := range columns {
						dict[jen.Lit(c.Name())] = jen.Id(recv).Dot(gen.VarName(c))
					}
				})),
			)),
		},
	}
}
