package gen

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Config holds the global codegen configuration shared by all stages.
type Config struct {
	// Schema holds the path of the schema document. Used by the
	// compiler package only; the core works on a loaded graph.
	Schema string
	// Target defines the directory the artifact tree is written to.
	Target string
	// Header is added as a comment at the top of each generated file.
	Header string
	// Features holds explicitly enabled features.
	Features []Feature
	// Disabled holds names of default features that were turned off.
	Disabled []string
	// IndexName is the base name of the index (barrel) artifacts.
	IndexName string
	// Extension is the file extension of the generated artifacts.
	Extension string
	// Workers bounds the number of files the Writer persists concurrently.
	Workers int
	// Logger receives debug information about the run.
	Logger *zap.Logger
}

// Default values of the configuration.
const (
	DefaultHeader    = "Code generated by crudgen. DO NOT EDIT."
	DefaultIndexName = "index"
	DefaultExtension = ".ts"
)

// header returns the configured header or the default one.
func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

func (c *Config) indexName() string {
	if c.IndexName != "" {
		return c.IndexName
	}
	return DefaultIndexName
}

func (c *Config) extension() string {
	if c.Extension != "" {
		return c.Extension
	}
	return DefaultExtension
}

func (c *Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

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

// WithSchema sets the path of the schema document.
func WithSchema(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Schema", nil, "schema path cannot be empty")
		}
		c.Schema = path
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated artifacts will be written.
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

// WithFeatureNames enables features by their names.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, err := FeatureByName(name)
			if err != nil {
				return NewConfigError("Features", name, err.Error())
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures disables features that are enabled by default.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, err := FeatureByName(name); err != nil {
				return NewConfigError("Disabled", name, err.Error())
			}
			c.Disabled = append(c.Disabled, name)
		}
		return nil
	}
}

// WithIndexName sets the base name of the index artifacts.
func WithIndexName(name string) Option {
	return func(c *Config) error {
		if !validIdent(name) {
			return NewConfigError("IndexName", name, "index name must be a valid identifier")
		}
		c.IndexName = name
		return nil
	}
}

// WithExtension sets the extension of the generated files, e.g. ".ts".
func WithExtension(ext string) Option {
	return func(c *Config) error {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return NewConfigError("Extension", ext, "extension must start with a dot")
		}
		c.Extension = ext
		return nil
	}
}

// WithWorkers sets the number of parallel writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger used by the generator.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
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
	c := &Config{}
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
