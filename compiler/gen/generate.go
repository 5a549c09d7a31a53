package gen

import (
	"fmt"

	"go.uber.org/zap"
)

// API is the synthesized API surface of a graph. It is produced by a
// compilation run and consumed by the layout planner and by extensions.
type API struct {
	Graph *Graph
	// OrderByArg is the shared ordering-direction enum.
	OrderByArg *Enum
	// Cruds holds one CRUD resolver per entity, in entity order.
	Cruds []*CrudResolver
	// Relations holds the relation resolvers of entities with relations.
	Relations []*RelationResolver
	// Inputs holds all input shapes in synthesis order.
	Inputs []*Shape
	// Outputs holds the output shapes (aggregates and BatchPayload).
	Outputs []*Shape
}

// Input returns the input shape with the given canonical name.
func (a *API) Input(name string) (*Shape, bool) {
	for _, s := range a.Inputs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// synth is the per-run synthesis context. It holds the registry and the
// derived tables shared by the synthesizers, and is discarded when the run
// completes.
type synth struct {
	g          *Graph
	reg        *registry
	orderByArg *Enum
	// nullable reports, per scalar, if any field of that scalar is nullable.
	nullable     map[Scalar]bool
	enumNullable map[*Enum]bool
	// feature switches.
	splitNullable     bool
	aggregates        bool
	relationResolvers bool
}

func newSynth(g *Graph) *synth {
	s := &synth{
		g:                 g,
		reg:               newRegistry(),
		orderByArg:        newOrderByArg(),
		nullable:          make(map[Scalar]bool),
		enumNullable:      make(map[*Enum]bool),
		splitNullable:     g.featureEnabled(FeatureNullableFilters),
		aggregates:        g.featureEnabled(FeatureAggregates),
		relationResolvers: g.featureEnabled(FeatureRelationResolvers),
	}
	for _, t := range g.Nodes {
		for _, f := range t.Fields {
			switch {
			case f.IsScalar():
				s.nullable[f.Scalar] = s.nullable[f.Scalar] || f.Nullable
			case f.IsEnum():
				s.enumNullable[f.Enum] = s.enumNullable[f.Enum] || f.Nullable
			}
		}
	}
	return s
}

// run synthesizes the API. Operations come first, so the top-level inputs
// are registered before the nested ones they lead to.
func (s *synth) run() (*API, error) {
	api := &API{Graph: s.g, OrderByArg: s.orderByArg}
	for _, t := range s.g.Nodes {
		api.Cruds = append(api.Cruds, s.operations(t))
	}
	if s.relationResolvers {
		for _, t := range s.g.Nodes {
			if r := s.relations(t); r != nil {
				api.Relations = append(api.Relations, r)
			}
		}
	}
	if s.reg.err != nil {
		return nil, s.reg.err
	}
	api.Inputs = s.reg.list(ShapeInput)
	api.Outputs = s.reg.list(ShapeOutput)
	return api, nil
}

// Compiler compiles a graph into an artifact tree.
//
// Example:
//
//	import "github.com/syssam/crudgen/compiler/gen/typegraphql"
//
//	tree, err := gen.NewCompiler(graph).
//		WithEmitter(typegraphql.NewEmitter()).
//		Compile()
type Compiler struct {
	graph      *Graph
	emitter    Emitter
	extensions []Extension
}

// NewCompiler creates a new compiler for the graph.
// You must call WithEmitter() to set an emitter before calling Compile().
func NewCompiler(g *Graph) *Compiler {
	return &Compiler{graph: g}
}

// WithEmitter sets the emitter rendering the artifacts.
func (c *Compiler) WithEmitter(e Emitter) *Compiler {
	c.emitter = e
	return c
}

// WithExtensions adds extensions contributing additional artifacts.
func (c *Compiler) WithExtensions(exts ...Extension) *Compiler {
	c.extensions = append(c.extensions, exts...)
	return c
}

// Synthesize derives the API surface of the graph without rendering it.
func (c *Compiler) Synthesize() (*API, error) {
	if c.graph == nil {
		return nil, NewConfigError("Graph", nil, "missing graph")
	}
	return newSynth(c.graph).run()
}

// Compile runs the pipeline: synthesize, plan, emit, index. It either
// returns the complete tree or an error, never a partial tree. Every call
// uses its own registry, so concurrent calls are isolated.
func (c *Compiler) Compile() (*Tree, error) {
	if c.emitter == nil {
		return nil, NewConfigError("Emitter", nil, "missing emitter")
	}
	api, err := c.Synthesize()
	if err != nil {
		return nil, err
	}
	cfg := c.graph.Config
	log := cfg.logger().With(zap.String("emitter", c.emitter.Name()))
	log.Debug("api synthesized",
		zap.Int("entities", len(api.Cruds)),
		zap.Int("inputs", len(api.Inputs)),
		zap.Int("outputs", len(api.Outputs)),
		zap.Int("relations", len(api.Relations)),
	)
	var (
		ext    = cfg.extension()
		header = cfg.header()
		tree   = NewTree()
	)
	for _, cs := range plan(api, header) {
		if err := c.emit(tree, cs, ext); err != nil {
			return nil, err
		}
	}
	for _, x := range c.extensions {
		as, err := x.Artifacts(api)
		if err != nil {
			return nil, NewGenerationError("extension", x.Name(), "", err)
		}
		for _, a := range as {
			a.Dir, a.Export, a.Kind = nil, false, ConstructExtension
			if err := tree.Add(a); err != nil {
				return nil, err
			}
		}
	}
	for _, cs := range indexes(tree, cfg.indexName(), header) {
		if err := c.emit(tree, cs, ext); err != nil {
			return nil, err
		}
	}
	tree.link(cfg.indexName() + ext)
	log.Debug("tree planned", zap.Int("artifacts", tree.Len()))
	return tree, nil
}

// emit renders the construct and adds its artifact to the tree.
func (c *Compiler) emit(tree *Tree, cs *Construct, ext string) error {
	content, err := c.emitter.Emit(cs)
	if err != nil {
		if IsUnsupportedConstructError(err) {
			return err
		}
		return fmt.Errorf("emit %s %s: %w", cs.Kind, cs.Name, err)
	}
	return tree.Add(&Artifact{
		Dir:     cs.Dir,
		Name:    cs.Name,
		File:    cs.Name + ext,
		Content: content,
		Export:  true,
		Kind:    cs.Kind,
	})
}
