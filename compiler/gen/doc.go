// Package gen generates Go source files from a project tree.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Project document (project.yaml)
//	        ↓
//	   config.Project tree
//	        ↓
//	   Dialect translators (one per table artifact + the application)
//	        ↓
//	   builder callbacks populate decl.Declaration values
//	        ↓
//	   Writer (jennifer rendering + goimports)
//	        ↓
//	   Generated code (models/)
//
// # Interface Hierarchy
//
//	Dialect
//	├── Name() string
//	├── TableGenerator (per enabled table)
//	│   └── GenEntity, GenImpl, GenManager
//	└── ProjectGenerator (per run)
//	    └── GenApplication
//
// Dialects receive a GeneratorHelper for naming, type mapping and feature
// flags, so they do not depend on the Generator itself.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Configuration errors, matching ErrMissingConfig and, for
//     unknown feature names, ErrUnknownFeature
//   - GenerationError: Code generation errors, matching ErrGenerationFailed
//
// Example error handling:
//
//	result, err := g.Generate(ctx)
//	if err != nil {
//	    if gen.IsConfigError(err) {
//	        // Handle configuration error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./models"),
//	    gen.WithPackage("github.com/org/project/models"),
//	    gen.WithFeatures(gen.FeatureInboundFinders),
//	    gen.WithTypeMapping("money", gen.ParseGoType("github.com/org/project/money.Amount")),
//	)
//
// Decorators customize every translator before it runs, for example to add a
// method to every manager:
//
//	gen.WithDecorators(func(kind gen.TranslatorKind, t *translator.Translator) {
//	    if kind != gen.KindManager {
//	        return
//	    }
//	    t.OnMake(func(f *decl.File, d *decl.Declaration) error {
//	        d.AddMethod(&decl.Method{Name: "Describe", Results: []jen.Code{jen.String()}, Body: ...})
//	        return nil
//	    })
//	})
//
// # Features
//
//   - FeatureJSON (default): MarshalJSON on implementation types
//   - FeatureInboundFinders: manager finders for foreign keys referencing a table
//   - FeatureManifest: manifest of generated files, stale files are removed
package gen
