package gen

import (
	"errors"
	"log/slog"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/models".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name, as given on the command line.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return unknownFeatureError(name)
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures turns off default features.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			c.Disabled = append(c.Disabled, f.Name)
		}
		return nil
	}
}

// WithoutFeatureNames turns off default features by name, as given on the
// command line.
func WithoutFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return unknownFeatureError(name)
			}
			c.Disabled = append(c.Disabled, f.Name)
		}
		return nil
	}
}

// WithWorkers sets the number of translators run concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger progress is reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithDecorators adds translator decorators.
// Decorators run on every translator before its file is produced.
func WithDecorators(decorators ...Decorator) Option {
	return func(c *Config) error {
		for _, d := range decorators {
			if d == nil {
				return NewConfigError("Decorators", nil, "decorator cannot be nil")
			}
		}
		c.Decorators = append(c.Decorators, decorators...)
		return nil
	}
}

// WithTypeMapping maps a database type to a Go type, overriding the built-in
// mapping. Database types are matched case insensitively.
func WithTypeMapping(dbType string, t GoType) Option {
	return func(c *Config) error {
		if dbType == "" {
			return NewConfigError("TypeMapping", nil, "database type cannot be empty")
		}
		if t.Name == "" {
			return NewConfigError("TypeMapping", dbType, "go type name cannot be empty")
		}
		if c.TypeMappings == nil {
			c.TypeMappings = make(map[string]GoType)
		}
		c.TypeMappings[strings.ToLower(dbType)] = t
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Header: DefaultHeader}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
