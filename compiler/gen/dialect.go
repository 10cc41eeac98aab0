package gen

import (
	"log/slog"

	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// TableGenerator creates the translators of a table.
// Each method is called once per enabled table of the project.
type TableGenerator interface {
	// GenEntity creates the entity interface translator ({entity}.go)
	GenEntity(t *config.Table) *translator.Translator
	// GenImpl creates the implementation struct translator ({entity}_impl.go)
	GenImpl(t *config.Table) *translator.Translator
	// GenManager creates the manager translator ({entity}_manager.go)
	GenManager(t *config.Table) *translator.Translator
}

// ProjectGenerator creates the translators of a project.
// Each method is called once per generation run.
type ProjectGenerator interface {
	// GenApplication creates the application translator (tablegen.go)
	GenApplication(p *config.Project) *translator.Translator
}

// Dialect is a set of translators generating one flavour of code.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Generator                            │
//	│  (Orchestration: decorators, parallel execution, writing)   │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                         Dialect                             │
//	│  (Interface: translators per table and per project)         │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ implemented by
//	                          ▼
//	                 ┌─────────────────┐
//	                 │ gen/standard    │
//	                 └─────────────────┘
//
// Usage:
//
//	import "github.com/syssam/tablegen/compiler/gen/standard"
//
//	g := gen.NewGenerator(project, cfg)
//	g.WithDialect(standard.NewDialect(g))
//	result, err := g.Generate(ctx)
type Dialect interface {
	// Name returns the dialect name (e.g., "standard")
	Name() string
	TableGenerator
	ProjectGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// Generator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// Pkg returns the output package name.
	Pkg() string

	// Header returns the header comment of generated files.
	Header() string

	// FeatureEnabled reports if the given feature name is enabled.
	FeatureEnabled(name string) bool

	// TypeName returns the Go type name of a table.
	TypeName(t *config.Table) string

	// FieldName returns the exported Go name of a column.
	FieldName(c *config.Column) string

	// ColumnType returns the Go type of a column.
	ColumnType(c *config.Column) GoType

	// PrimaryKeyType returns the Go type of the primary key of a table.
	PrimaryKeyType(t *config.Table) GoType

	// Logger returns the generation logger.
	Logger() *slog.Logger
}
