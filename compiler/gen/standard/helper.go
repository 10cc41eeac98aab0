package standard

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
)

// implName returns the name of the implementation struct of an entity.
func implName(entity string) string { return entity + "Impl" }

// managerName returns the name of the manager struct of an entity.
func managerName(entity string) string { return entity + "Manager" }

// tableConst returns the name of the table name constant of an entity.
func tableConst(entity string) string { return entity + "Table" }

// generated reports if the entity of t is generated in this run.
func generated(t *config.Table) bool {
	return t != nil && t.Enabled() && config.AllAncestorsEnabled(t)
}

// columnPair is a foreign key column together with the column it references.
type columnPair struct {
	local, target *config.Column
}

// resolvePairs returns the column pairs of fk. It reports false if a column
// is missing or disabled on either side.
func resolvePairs(fk *config.ForeignKey) ([]columnPair, bool) {
	fkcs := fk.ForeignKeyColumns()
	if len(fkcs) == 0 {
		return nil, false
	}
	pairs := make([]columnPair, 0, len(fkcs))
	for _, fkc := range fkcs {
		local, ok := fkc.FindColumn()
		if !ok || !local.Enabled() {
			return nil, false
		}
		target, ok := fkc.FindForeignColumn()
		if !ok || !target.Enabled() {
			return nil, false
		}
		pairs = append(pairs, columnPair{local: local, target: target})
	}
	return pairs, true
}

// localNames joins the field names of the local columns, e.g. "TenantIDUserID".
func localNames(pairs []columnPair) string {
	var name string
	for _, p := range pairs {
		name += gen.FieldName(p.local)
	}
	return name
}

// matches returns the condition under which the entity local, holding the
// foreign key, references the entity target.
func (d *Dialect) matches(pairs []columnPair, local, target string) jen.Code {
	var conds []jen.Code
	for _, p := range pairs {
		conds = append(conds, d.equal(
			jen.Id(local).Dot(gen.FieldName(p.local)).Call(), d.h.ColumnType(p.local),
			jen.Id(target).Dot(gen.FieldName(p.target)).Call(), d.h.ColumnType(p.target),
		)...)
	}
	cond := jen.Add(conds[0])
	for _, c := range conds[1:] {
		cond.Op("&&").Add(c)
	}
	return cond
}

// equal returns the conditions comparing a value of type at with one of type
// bt. Pointers are checked for nil and dereferenced.
func (d *Dialect) equal(a jen.Code, at gen.GoType, b jen.Code, bt gen.GoType) []jen.Code {
	var conds []jen.Code
	if at.Pointer {
		conds = append(conds, jen.Add(a).Op("!=").Nil())
		a = jen.Op("*").Add(a)
	}
	if bt.Pointer {
		conds = append(conds, jen.Add(b).Op("!=").Nil())
		b = jen.Op("*").Add(b)
	}
	at, bt = at.Elem(), bt.Elem()
	switch {
	case at == bt && (at == gen.TypeBytes || at == gen.TypeJSON):
		conds = append(conds, jen.Qual("bytes", "Equal").Call(a, b))
	case at == bt && at.Slice:
		conds = append(conds, jen.Qual("reflect", "DeepEqual").Call(a, b))
	case at == bt:
		conds = append(conds, jen.Add(a).Op("==").Add(b))
	case numeric(at) && numeric(bt):
		conds = append(conds, jen.Add(bt.Code()).Call(a).Op("==").Add(b))
	default:
		conds = append(conds, jen.Qual("fmt", "Sprint").Call(a).Op("==").Qual("fmt", "Sprint").Call(b))
	}
	return conds
}

func numeric(t gen.GoType) bool {
	if t.PkgPath != "" || t.Slice {
		return false
	}
	switch t.Name {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return true
	}
	return false
}
