// Package compiler runs the whole generation pipeline: it loads a schema
// document, builds the entity graph, compiles it with the TypeGraphQL
// emitter and writes the artifact tree to the configured target.
//
// Example:
//
//	ex, err := graphql.NewExtension(graphql.WithSchemaPath("schema.graphql"))
//	if err != nil {
//		log.Fatalf("creating graphql extension: %v", err)
//	}
//	cfg := gen.MustNewConfig(gen.WithTarget("./generated"))
//	if err := compiler.Generate("./schema.yaml", cfg, compiler.Extensions(ex)); err != nil {
//		log.Fatalf("running crudgen: %v", err)
//	}
package compiler

import (
	"context"
	"fmt"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/gen/typegraphql"
	"github.com/syssam/crudgen/compiler/load"
)

type (
	// Option configures a single run.
	Option func(*options) error

	options struct {
		ctx        context.Context
		emitter    gen.Emitter
		extensions []gen.Extension
		dryRun     bool
		metrics    *gen.WriterMetrics
	}
)

// Extensions adds extensions contributing additional artifacts.
func Extensions(exts ...gen.Extension) Option {
	return func(o *options) error {
		for _, ex := range exts {
			if ex == nil {
				return gen.NewConfigError("Extensions", nil, "nil extension")
			}
		}
		o.extensions = append(o.extensions, exts...)
		return nil
	}
}

// Emitter replaces the default TypeGraphQL emitter.
func Emitter(e gen.Emitter) Option {
	return func(o *options) error {
		if e == nil {
			return gen.NewConfigError("Emitter", nil, "nil emitter")
		}
		o.emitter = e
		return nil
	}
}

// Context sets the context the writer runs with.
func Context(ctx context.Context) Option {
	return func(o *options) error {
		if ctx == nil {
			return gen.NewConfigError("Context", nil, "nil context")
		}
		o.ctx = ctx
		return nil
	}
}

// DryRun compiles the tree without writing it.
func DryRun() Option {
	return func(o *options) error {
		o.dryRun = true
		return nil
	}
}

// Metrics stores the writer metrics of the run in m.
func Metrics(m *gen.WriterMetrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// LoadGraph loads the schema document at schemaPath and builds its graph.
func LoadGraph(schemaPath string, cfg *gen.Config) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing config")
	}
	if schemaPath == "" {
		schemaPath = cfg.Schema
	}
	if schemaPath == "" {
		return nil, gen.NewConfigError("Schema", nil, "missing schema path")
	}
	s, err := load.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("crudgen/load: %w", err)
	}
	return gen.NewGraph(cfg, s)
}

// Build loads the schema and compiles its artifact tree, without writing it.
func Build(schemaPath string, cfg *gen.Config, opts ...Option) (*gen.Tree, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return o.build(schemaPath, cfg)
}

// Generate loads the schema, compiles it and writes the artifact tree to
// cfg.Target.
func Generate(schemaPath string, cfg *gen.Config, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	tree, err := o.build(schemaPath, cfg)
	if err != nil {
		return err
	}
	if o.dryRun {
		return nil
	}
	w := gen.NewWriter(cfg)
	if err := w.Write(o.ctx, tree); err != nil {
		return fmt.Errorf("crudgen/write: %w", err)
	}
	if o.metrics != nil {
		*o.metrics = *w.Metrics()
	}
	return nil
}

func newOptions(opts []Option) (*options, error) {
	o := &options{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.emitter == nil {
		o.emitter = typegraphql.NewEmitter()
	}
	return o, nil
}

func (o *options) build(schemaPath string, cfg *gen.Config) (*gen.Tree, error) {
	g, err := LoadGraph(schemaPath, cfg)
	if err != nil {
		return nil, err
	}
	return gen.NewCompiler(g).
		WithEmitter(o.emitter).
		WithExtensions(o.extensions...).
		Compile()
}
