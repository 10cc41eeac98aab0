// Package standard implements the default dialect of the code generator.
//
// For every enabled table it generates an entity interface, an implementation
// struct and a manager. For the project it generates the application, which
// holds a manager per table:
//
//	user.go          type User interface { ID() int; SetID(int) User; ... }
//	user_impl.go     type UserImpl struct { id int; ... }
//	user_manager.go  type UserManager struct{}; FindBy..., PrimaryKey, New
//	tablegen.go      type Application struct { Users *UserManager; ... }
//
// Every translator is populated through builder callbacks, so decorators can
// extend any of them.
package standard

import (
	"context"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// ApplicationFile is the file the application is generated to.
const ApplicationFile = "tablegen.go"

// Dialect generates the standard translators.
type Dialect struct {
	h gen.GeneratorHelper
}

// NewDialect returns the standard dialect using the given helper.
func NewDialect(h gen.GeneratorHelper) *Dialect {
	return &Dialect{h: h}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return "standard" }

// Generate generates project p with the standard dialect.
//
//	result, err := standard.Generate(ctx, project,
//	    gen.WithTarget("./models"),
//	    gen.WithFeatures(gen.FeatureInboundFinders),
//	)
func Generate(ctx context.Context, p *config.Project, opts ...gen.Option) (*gen.Result, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g := gen.NewGenerator(p, cfg)
	return g.WithDialect(NewDialect(g)).Generate(ctx)
}

func (d *Dialect) newTranslator(anchor config.Document, file string, fn translator.MakeFunc) *translator.Translator {
	return translator.New(anchor, d.h.Pkg(), file, fn, translator.WithHeader(d.h.Header()))
}

// Verify Dialect implements gen.Dialect at compile time.
var _ gen.Dialect = (*Dialect)(nil)
