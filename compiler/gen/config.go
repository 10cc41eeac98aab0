package gen

import (
	"io"
	"log/slog"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by tablegen. DO NOT EDIT."

// defaultPackage names the output package when neither the configuration nor
// the project names one.
const defaultPackage = "models"

// TranslatorKind identifies which translator of a table or project a
// Decorator is applied to.
type TranslatorKind uint8

// Translator kinds.
const (
	KindEntity TranslatorKind = iota
	KindImpl
	KindManager
	KindApplication
)

// String implements fmt.Stringer.
func (k TranslatorKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindImpl:
		return "impl"
	case KindManager:
		return "manager"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Decorator customizes a translator before its file is produced, typically by
// registering builder callbacks or attaching hooks.
type Decorator func(TranslatorKind, *translator.Translator)

// Config holds the global codegen configuration.
type Config struct {
	// Target is the output directory.
	Target string

	// Package is the import path of the output package, e.g.
	// "github.com/org/project/models". When empty the project's packageName
	// is used.
	Package string

	// Header is the header comment of every generated file.
	Header string

	// Features are the feature-flags enabled on top of the default ones.
	Features []Feature

	// Disabled names default features that are turned off.
	Disabled []string

	// Workers bounds the number of translators producing files concurrently.
	Workers int

	// Logger receives progress records. Defaults to a logger that discards.
	Logger *slog.Logger

	// Decorators run on every translator, in order.
	Decorators []Decorator

	// TypeMappings overrides the Go type of database types. Keys are lower case.
	TypeMappings map[string]GoType
}

// FeatureEnabled reports if the given feature name is enabled.
// It returns an error if the feature is unknown.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	f, ok := FeatureByName(name)
	if !ok {
		return false, unknownFeatureError(name)
	}
	for _, e := range c.Features {
		if e.Name == name {
			return true, nil
		}
	}
	return f.Default && !slices.Contains(c.Disabled, name), nil
}

// PackageName returns the name of the output package for project p.
func (c *Config) PackageName(p *config.Project) string {
	if c.Package != "" {
		return path.Base(c.Package)
	}
	if p != nil {
		if name := p.PackageName(); name != "" {
			return path.Base(name)
		}
	}
	return defaultPackage
}

// workers returns the configured number of workers or GOMAXPROCS.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// logger returns the configured logger or one that discards.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// typeMapping returns the override for the database type t.
func (c *Config) typeMapping(t string) (GoType, bool) {
	gt, ok := c.TypeMappings[strings.ToLower(t)]
	return gt, ok
}
