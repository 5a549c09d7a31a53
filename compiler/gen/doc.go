// Package gen compiles a data model into the artifact tree of a CRUD API.
//
// # Architecture
//
// The compilation pipeline follows this flow:
//
//	Schema document (schema.yaml)
//	        ↓
//	   load.Schema
//	        ↓
//	   Graph (entities, enums, paired relations)
//	        ↓
//	   API (operations, inputs, outputs, relation resolvers)
//	        ↓
//	   Constructs (planned locations) + indices
//	        ↓
//	   Emitter (construct -> content)
//	        ↓
//	   Tree -> Writer
//
// # Key Types
//
//   - Graph: Holds all Type definitions with validation
//   - Type: Represents an entity with its fields and identifiers
//   - Field: Scalar, enum or relation field of an entity
//   - Shape: Input, argument or output object of the generated API
//   - Construct: A synthesized construct together with its location
//   - Tree: The ordered set of artifacts produced by a run
//   - Config: Global configuration for code generation
//
// # Synthesis
//
// Shapes are identified by their canonical name. Every run owns a registry
// that memoizes shapes by name, so a shape reachable along many paths is
// built once and referenced by pointer. Shapes are registered before their
// fields are built, which terminates cyclic relation graphs.
//
// Nested create and update inputs omit the back-reference of the relation
// they are nested under:
//
//	UserCreateInput
//	└── posts: PostCreateManyWithoutAuthorInput
//	    └── create: [PostCreateWithoutAuthorInput]   // no "author"
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: Invalid schema declarations
//   - ResolutionError: Field types that name nothing
//   - NamingCollisionError: Two constructs mapped to the same artifact
//   - UnsupportedConstructError: Construct kinds an emitter cannot render
//   - ConfigError: Configuration errors
//   - GenerationError: Failures while writing or extending a tree
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, schema)
//	if err != nil {
//	    if gen.IsResolutionError(err) {
//	        // Handle unknown type references
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./generated"),
//	    gen.WithFeatures(gen.FeatureNullableFilters),
//	    gen.WithHeader("Code generated by crudgen. DO NOT EDIT."),
//	)
//
// # Generated Output
//
//	{output}/
//	├── enums/
//	├── models/
//	├── resolvers/
//	│   ├── crud/{Entity}/args/
//	│   ├── inputs/
//	│   ├── outputs/
//	│   └── relations/{Entity}/args/
//	└── index.ts            // at every level
package gen
