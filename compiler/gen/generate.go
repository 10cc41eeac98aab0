package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// Generator produces the files of a project with a dialect.
type Generator struct {
	project *config.Project
	cfg     *Config
	dialect Dialect
	writer  *Writer
	log     *slog.Logger
}

// Result reports the outcome of a generation run.
type Result struct {
	// Files lists the generated files, in generation order.
	Files []ManifestEntry
	// Removed lists stale files of a previous run that were deleted.
	Removed []string
}

// NewGenerator creates a generator of project p.
// You must call WithDialect() to set a dialect before calling Generate().
func NewGenerator(p *config.Project, cfg *Config) *Generator {
	if cfg == nil {
		cfg = &Config{Header: DefaultHeader}
	}
	return &Generator{
		project: p,
		cfg:     cfg,
		writer:  NewWriter(cfg.Target),
		log:     cfg.logger(),
	}
}

// WithDialect sets the dialect generating the translators.
func (g *Generator) WithDialect(d Dialect) *Generator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// Project returns the project being generated.
func (g *Generator) Project() *config.Project {
	return g.project
}

// task is one translator to run.
type task struct {
	kind TranslatorKind
	tr   *translator.Translator
}

// Generate runs every translator of the project and writes their files.
// Returns an error if no dialect has been set via WithDialect().
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	switch {
	case g.dialect == nil:
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	case g.project == nil:
		return nil, NewConfigError("Project", nil, "no project to generate")
	case g.cfg.Target == "":
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return nil, NewGenerationError("write", g.cfg.Target, "create target directory", err)
	}

	tasks, err := g.plan()
	if err != nil {
		return nil, err
	}
	g.log.Debug("generation planned", "dialect", g.dialect.Name(), "translators", len(tasks), "workers", g.cfg.workers())

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.workers())

	entries := make([]ManifestEntry, len(tasks))
	for i, t := range tasks {
		i, t := i, t
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := t.tr.Get()
			if err != nil {
				return NewGenerationError(t.kind.String(), t.tr.FileName(), "", err)
			}
			entry, err := g.writer.Write(f)
			if err != nil {
				return NewGenerationError("write", t.tr.FileName(), "", err)
			}
			entries[i] = entry
			g.log.Debug("file generated", "file", entry.Name, "translator", t.kind.String(), "bytes", entry.Size)
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Files: entries}
	if err := g.finish(result); err != nil {
		return nil, err
	}
	g.log.Info("generation finished", "files", len(result.Files), "removed", len(result.Removed), "target", g.cfg.Target)
	return result, nil
}

// plan creates and decorates the translators of the project. Translators
// the dialect left without a header get the configured one.
func (g *Generator) plan() ([]task, error) {
	var tasks []task
	for _, t := range EnabledTables(g.project) {
		tasks = append(tasks,
			task{KindEntity, g.dialect.GenEntity(t)},
			task{KindImpl, g.dialect.GenImpl(t)},
			task{KindManager, g.dialect.GenManager(t)},
		)
	}
	tasks = append(tasks, task{KindApplication, g.dialect.GenApplication(g.project)})

	seen := make(map[string]config.Document, len(tasks))
	for _, t := range tasks {
		name := t.tr.FileName()
		if prev, ok := seen[name]; ok && prev != t.tr.Anchor() {
			return nil, NewGenerationError(t.kind.String(), name, fmt.Sprintf("generated for both %s and %s; set an alias on one of them",
				config.Path(prev), config.Path(t.tr.Anchor())), nil)
		}
		seen[name] = t.tr.Anchor()
		if t.tr.Header() == "" {
			translator.WithHeader(g.cfg.Header)(t.tr)
		}
		for _, d := range g.cfg.Decorators {
			d(t.kind, t.tr)
		}
	}
	return tasks, nil
}

// finish updates the manifest, or cleans up after disabled features.
func (g *Generator) finish(result *Result) error {
	for _, f := range AllFeatures {
		if enabled, _ := g.cfg.FeatureEnabled(f.Name); !enabled && f.cleanup != nil {
			if err := f.cleanup(g.cfg); err != nil {
				return NewGenerationError("cleanup", f.Name, "", err)
			}
		}
	}
	if !g.FeatureEnabled(FeatureManifest.Name) {
		return nil
	}
	previous, err := ReadManifest(g.cfg.Target)
	if err != nil {
		return NewGenerationError("manifest", ManifestFile, "", err)
	}
	next := &Manifest{Files: append([]ManifestEntry(nil), result.Files...)}
	removed, err := removeStale(g.cfg.Target, previous, next)
	result.Removed = removed
	if err != nil {
		return NewGenerationError("manifest", ManifestFile, "remove stale files", err)
	}
	for _, name := range removed {
		g.log.Info("stale file removed", "file", name)
	}
	if err := next.Write(g.cfg.Target); err != nil {
		return NewGenerationError("manifest", ManifestFile, "", err)
	}
	return nil
}

// EnabledTables returns the tables of p whose ancestors are all enabled, in
// declaration order.
func EnabledTables(p *config.Project) []*config.Table {
	if p == nil || !p.Enabled() {
		return nil
	}
	var tables []*config.Table
	for _, d := range p.Dbmses() {
		if !d.Enabled() {
			continue
		}
		for _, s := range d.Schemas() {
			if !s.Enabled() {
				continue
			}
			for _, t := range s.Tables() {
				if t.Enabled() {
					tables = append(tables, t)
				}
			}
		}
	}
	return tables
}

// =============================================================================
// GeneratorHelper interface implementation
// These exported methods allow dialect packages to access helper functionality.
// =============================================================================

// Pkg returns the output package name.
func (g *Generator) Pkg() string {
	return g.cfg.PackageName(g.project)
}

// Header returns the header comment of generated files.
func (g *Generator) Header() string {
	return g.cfg.Header
}

// FeatureEnabled reports if the given feature name is enabled.
func (g *Generator) FeatureEnabled(name string) bool {
	enabled, _ := g.cfg.FeatureEnabled(name)
	return enabled
}

// TypeName returns the Go type name of a table.
func (g *Generator) TypeName(t *config.Table) string {
	return TypeName(t)
}

// FieldName returns the exported Go name of a column.
func (g *Generator) FieldName(c *config.Column) string {
	return FieldName(c)
}

// ColumnType returns the Go type of a column.
func (g *Generator) ColumnType(c *config.Column) GoType {
	return g.cfg.ColumnType(c)
}

// PrimaryKeyType returns the Go type of the primary key of a table.
func (g *Generator) PrimaryKeyType(t *config.Table) GoType {
	return g.cfg.PrimaryKeyType(t)
}

// Logger returns the generation logger.
func (g *Generator) Logger() *slog.Logger {
	return g.log
}

// Verify Generator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*Generator)(nil)
