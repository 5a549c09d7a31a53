package graphql

import (
	"fmt"
	"path"
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
)

// SchemaHook is a function that is called after GraphQL schema generation.
// It receives the synthesized API and the generated schema content, and can
// modify the schema before it is validated.
type SchemaHook func(api *gen.API, schema string) (string, error)

// Default artifact names.
const (
	DefaultSchemaFile = "schema.graphql"
	DefaultConfigFile = "gqlgen.yml"
)

// Extension implements the gen.Extension interface. It renders the
// synthesized API as a GraphQL SDL document and, optionally, a gqlgen.yml
// binding the generated types to Go models.
//
// Usage:
//
//	import (
//	    "github.com/syssam/crudgen/compiler"
//	    "github.com/syssam/crudgen/compiler/gen"
//	    "github.com/syssam/crudgen/contrib/graphql"
//	)
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithSchemaPath("schema.graphql"),
//	    graphql.WithConfigOutput("gqlgen.yml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err := gen.NewConfig(gen.WithTarget("./generated"))
//	err = compiler.Generate("./schema.yaml", cfg, compiler.Extensions(ex))
type Extension struct {
	config Config

	// gqlgenConfig is the base gqlgen configuration the bindings are
	// merged into.
	gqlgenConfig *GQLGenConfig

	// schemaHooks are hooks to run after schema generation.
	schemaHooks []SchemaHook
}

// Config holds the settings of the extension.
type Config struct {
	// SchemaFilename is the file name of the SDL artifact.
	SchemaFilename string
	// ConfigFilename is the file name of the gqlgen.yml artifact. Empty
	// disables it.
	ConfigFilename string
	// ModelPackage is the Go package holding the models of the entities.
	// When set, the gqlgen configuration autobinds it.
	ModelPackage string
	// Descriptions renders schema comments as SDL descriptions.
	Descriptions bool
	// Validate checks the rendered document with the GraphQL validator.
	Validate bool
}

// ExtensionOption is a function that configures the Extension.
type ExtensionOption func(*Extension) error

// NewExtension creates a new GraphQL extension with the given options.
func NewExtension(opts ...ExtensionOption) (*Extension, error) {
	ex := &Extension{
		config: Config{
			SchemaFilename: DefaultSchemaFile,
			Descriptions:   true,
			Validate:       true,
		},
	}
	for _, opt := range opts {
		if err := opt(ex); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

// Name implements gen.Extension.
func (e *Extension) Name() string {
	return "graphql"
}

// Config returns the extension configuration.
func (e *Extension) Config() Config {
	return e.config
}

// GQLGenConfig returns the base gqlgen configuration, if any.
func (e *Extension) GQLGenConfig() *GQLGenConfig {
	return e.gqlgenConfig
}

// Artifacts implements gen.Extension. It returns the SDL document, followed
// by the gqlgen configuration when enabled.
func (e *Extension) Artifacts(api *gen.API) ([]*gen.Artifact, error) {
	sdl, err := Render(api, e.config.Descriptions)
	if err != nil {
		return nil, err
	}
	for _, h := range e.schemaHooks {
		if sdl, err = h(api, sdl); err != nil {
			return nil, fmt.Errorf("schema hook: %w", err)
		}
	}
	if e.config.Validate {
		if err := Validate(e.config.SchemaFilename, sdl); err != nil {
			return nil, err
		}
	}
	artifacts := []*gen.Artifact{newArtifact(e.config.SchemaFilename, sdl)}
	if e.config.ConfigFilename == "" {
		return artifacts, nil
	}
	cfg := e.gqlgenConfig.clone()
	cfg.BindAPI(api, e.config.SchemaFilename, e.config.ModelPackage)
	out, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}
	return append(artifacts, newArtifact(e.config.ConfigFilename, out)), nil
}

func newArtifact(file, content string) *gen.Artifact {
	return &gen.Artifact{
		Name:    strings.TrimSuffix(file, path.Ext(file)),
		File:    file,
		Content: content,
	}
}

// checkFilename ensures the name is a plain file name: extension artifacts
// live at the root of the tree.
func checkFilename(option, name string) error {
	switch {
	case name == "":
		return gen.NewConfigError(option, name, "empty file name")
	case strings.ContainsAny(name, `/\`):
		return gen.NewConfigError(option, name, "file name must not contain a directory")
	case name == "." || name == "..":
		return gen.NewConfigError(option, name, "invalid file name")
	}
	return nil
}

// =============================================================================
// Extension options
// =============================================================================

// WithSchemaPath sets the file name of the SDL artifact. Names without an
// extension get ".graphql" appended.
func WithSchemaPath(name string) ExtensionOption {
	return func(e *Extension) error {
		if err := checkFilename("SchemaPath", name); err != nil {
			return err
		}
		if path.Ext(name) == "" {
			name += ".graphql"
		}
		e.config.SchemaFilename = name
		return nil
	}
}

// WithConfigOutput enables the gqlgen.yml artifact under the given file
// name.
func WithConfigOutput(name string) ExtensionOption {
	return func(e *Extension) error {
		if err := checkFilename("ConfigOutput", name); err != nil {
			return err
		}
		e.config.ConfigFilename = name
		return nil
	}
}

// WithConfigPath reads an existing gqlgen.yml used as the base of the
// generated configuration. A missing file yields an empty base. It enables
// the gqlgen.yml artifact if WithConfigOutput was not used.
//
// Example:
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithConfigPath("./gqlgen.yml"),
//	    graphql.WithModelPackage("example.com/app/models"),
//	)
func WithConfigPath(p string) ExtensionOption {
	return func(e *Extension) error {
		cfg, err := LoadGQLGenConfig(p)
		if err != nil {
			return fmt.Errorf("load gqlgen config %q: %w", p, err)
		}
		e.gqlgenConfig = cfg
		if e.config.ConfigFilename == "" {
			e.config.ConfigFilename = DefaultConfigFile
		}
		return nil
	}
}

// WithGQLGenConfig sets the base gqlgen configuration directly.
func WithGQLGenConfig(cfg *GQLGenConfig) ExtensionOption {
	return func(e *Extension) error {
		e.gqlgenConfig = cfg
		return nil
	}
}

// WithModelPackage sets the Go package bound to the generated object types.
func WithModelPackage(pkg string) ExtensionOption {
	return func(e *Extension) error {
		e.config.ModelPackage = pkg
		return nil
	}
}

// WithDescriptions enables or disables SDL descriptions. Default is true.
func WithDescriptions(enabled bool) ExtensionOption {
	return func(e *Extension) error {
		e.config.Descriptions = enabled
		return nil
	}
}

// WithValidation enables or disables the validation of the rendered
// document. Default is true.
func WithValidation(enabled bool) ExtensionOption {
	return func(e *Extension) error {
		e.config.Validate = enabled
		return nil
	}
}

// WithSchemaHook adds a hook that runs after GraphQL schema generation.
// Multiple hooks can be added and will be executed in order.
//
// Example:
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithSchemaHook(func(api *gen.API, schema string) (string, error) {
//	        return schema + "\ndirective @auth on FIELD_DEFINITION\n", nil
//	    }),
//	)
func WithSchemaHook(hooks ...SchemaHook) ExtensionOption {
	return func(e *Extension) error {
		e.schemaHooks = append(e.schemaHooks, hooks...)
		return nil
	}
}
