package gen

// Emitter renders constructs into artifact content. It is the only stage
// concerned with the syntax of the target representation. Implementations
// must be pure: the same construct always renders to the same content.
//
// Architecture:
//
//	┌──────────────────────────────────────────────┐
//	│                  Compiler                    │
//	│  (synthesis, layout, indices, collisions)    │
//	└──────────────────────┬───────────────────────┘
//	                       │ uses
//	                       ▼
//	┌──────────────────────────────────────────────┐
//	│                  Emitter                     │
//	│  (construct -> content, e.g. typegraphql)    │
//	└──────────────────────────────────────────────┘
type Emitter interface {
	// Name returns the emitter name (e.g., "typegraphql").
	Name() string
	// Emit renders the construct. Construct kinds the emitter has no
	// template for fail with an UnsupportedConstructError.
	Emit(c *Construct) (string, error)
}

// Extension contributes additional artifacts derived from the synthesized
// API, such as a schema document. Extension artifacts are placed at the
// tree root and are not re-exported by any index.
type Extension interface {
	// Name returns the extension name.
	Name() string
	// Artifacts returns the artifacts of the extension.
	Artifacts(api *API) ([]*Artifact, error)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(*Construct) (string, error)

// Name implements Emitter.
func (EmitterFunc) Name() string { return "func" }

// Emit implements Emitter.
func (f EmitterFunc) Emit(c *Construct) (string, error) { return f(c) }
