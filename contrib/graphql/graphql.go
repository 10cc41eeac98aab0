package graphql

import (
	"fmt"
	"io"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/tablegen/compiler/builder"
	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
)

// PropSkip is the document property that excludes a table or column from
// the schema.
const PropSkip = "graphqlSkip"

// Config configures the schema generation.
type Config struct {
	// Query adds a Query root type listing every object type.
	Query bool
	// Types resolves the Go type of columns, and so their scalar.
	Types *gen.Config
}

// Option configures the schema generation.
type Option func(*Config) error

// WithQuery adds a Query root type with a list field per table.
func WithQuery() Option {
	return func(c *Config) error {
		c.Query = true
		return nil
	}
}

// WithGenConfig resolves column types with the type mappings of cfg.
func WithGenConfig(cfg *gen.Config) Option {
	return func(c *Config) error {
		if cfg == nil {
			return fmt.Errorf("graphql: gen config cannot be nil")
		}
		c.Types = cfg
		return nil
	}
}

// Generate builds the schema document of p: an object type per enabled
// table with a field per enabled column and per resolvable foreign key.
func Generate(p *config.Project, opts ...Option) (*ast.SchemaDocument, error) {
	cfg := &Config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Types == nil {
		cfg.Types = gen.MustNewConfig()
	}
	if p == nil {
		return nil, fmt.Errorf("graphql: no project")
	}

	s := &schema{cfg: cfg, scalars: make(map[string]bool)}
	doc := &ast.SchemaDocument{}
	b := builder.New[*ast.SchemaDocument]().
		ForEveryTable(builder.Make, s.object).
		ForEveryProject(builder.PostMake, s.finish)
	if err := b.Build(p, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Format writes the SDL of doc to w.
func Format(w io.Writer, doc *ast.SchemaDocument) error {
	var sb strings.Builder
	formatter.NewFormatter(&sb, formatter.WithIndent("  ")).FormatSchemaDocument(doc)
	_, err := io.WriteString(w, sb.String())
	return err
}

// schema holds the state of one generation.
type schema struct {
	cfg     *Config
	scalars map[string]bool
	objects []*ast.Definition
}

func (s *schema) object(doc *ast.SchemaDocument, t *config.Table) error {
	if skipped(t) {
		return nil
	}
	name := gen.TypeName(t)
	if doc.Definitions.ForName(name) != nil {
		return fmt.Errorf("graphql: type %s is defined twice; set an alias on %s", name, config.Path(t))
	}
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        name,
		Description: t.Comment(),
	}
	pk := gen.PrimaryKeyColumns(t)
	for _, c := range t.Columns() {
		if !c.Enabled() || skipped(c) {
			continue
		}
		var typ *ast.Type
		if len(pk) == 1 && pk[0].Name() == c.Name() {
			typ = ast.NonNullNamedType("ID", nil)
		} else {
			typ = s.columnType(c)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        fieldName(c),
			Description: c.Comment(),
			Type:        typ,
		})
	}
	for _, fk := range t.ForeignKeys() {
		if f, ok := s.reference(def, fk); ok {
			def.Fields = append(def.Fields, f)
		}
	}
	doc.Definitions = append(doc.Definitions, def)
	s.objects = append(s.objects, def)
	return nil
}

// reference returns the object field of a forward foreign key.
func (s *schema) reference(def *ast.Definition, fk *config.ForeignKey) (*ast.FieldDefinition, bool) {
	if !fk.Enabled() || !builder.Resolvable(fk) {
		return nil, false
	}
	fkcs := fk.ForeignKeyColumns()
	target, ok := fkcs[0].FindForeignColumn()
	if !ok || !config.AllAncestorsEnabled(target.Table()) || skipped(target.Table()) {
		return nil, false
	}
	nullable := false
	for _, fkc := range fkcs {
		c, ok := fkc.FindColumn()
		if !ok || !c.Enabled() {
			return nil, false
		}
		nullable = nullable || c.Nullable()
	}
	name := referenceName(fk)
	if def.Fields.ForName(name) != nil {
		name = gen.LowerName(fk.Name())
	}
	typ := ast.NonNullNamedType(gen.TypeName(target.Table()), nil)
	if nullable {
		typ = ast.NamedType(gen.TypeName(target.Table()), nil)
	}
	return &ast.FieldDefinition{
		Name:        name,
		Description: fmt.Sprintf("Referenced through %s.", fk.Name()),
		Type:        typ,
	}, true
}

func (s *schema) columnType(c *config.Column) *ast.Type {
	name := scalarOf(s.cfg.Types.ColumnType(c))
	if custom[name] {
		s.scalars[name] = true
	}
	if c.Nullable() {
		return ast.NamedType(name, nil)
	}
	return ast.NonNullNamedType(name, nil)
}

// finish adds the custom scalars and the Query root.
func (s *schema) finish(doc *ast.SchemaDocument, _ *config.Project) error {
	for _, name := range scalarOrder {
		if s.scalars[name] {
			doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: name})
		}
	}
	if !s.cfg.Query || len(s.objects) == 0 {
		return nil
	}
	query := &ast.Definition{Kind: ast.Object, Name: "Query"}
	for _, o := range s.objects {
		query.Fields = append(query.Fields, &ast.FieldDefinition{
			Name: gen.LowerName(gen.Plural(o.Name)),
			Type: ast.NonNullListType(ast.NonNullNamedType(o.Name, nil), nil),
		})
	}
	doc.Definitions = append(doc.Definitions, query)
	return nil
}

func skipped(d config.Document) bool {
	skip, _ := d.Raw(PropSkip).(bool)
	return skip
}

func fieldName(c *config.Column) string {
	return strings.TrimPrefix(gen.VarName(c), "_")
}

// referenceName names the field of a foreign key after its single column,
// e.g. "user" for user_id, or after the foreign key.
func referenceName(fk *config.ForeignKey) string {
	fkcs := fk.ForeignKeyColumns()
	if len(fkcs) == 1 {
		if c, ok := fkcs[0].FindColumn(); ok {
			if name := strings.TrimSuffix(fieldName(c), "ID"); name != "" && name != fieldName(c) {
				return name
			}
		}
	}
	return gen.LowerName(fk.Name())
}
