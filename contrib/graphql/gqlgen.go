package graphql

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/syssam/crudgen/compiler/gen"
)

// GQLGenConfig is the part of a gqlgen.yml the schema bindings touch.
// Sections it does not model are kept in Rest and written back unchanged.
type GQLGenConfig struct {
	// SchemaFilename lists the SDL files gqlgen loads.
	SchemaFilename oneOrMany `yaml:"schema,omitempty"`
	// Autobind lists the Go packages searched for models by type name.
	Autobind []string `yaml:"autobind,omitempty"`
	// Models binds GraphQL type names to Go models and field resolvers.
	Models map[string]TypeBinding `yaml:"models,omitempty"`
	Rest   map[string]any         `yaml:",inline"`
}

// TypeBinding is the models entry of one GraphQL type.
type TypeBinding struct {
	Model  oneOrMany               `yaml:"model,omitempty"`
	Fields map[string]FieldBinding `yaml:"fields,omitempty"`
	Rest   map[string]any          `yaml:",inline"`
}

// FieldBinding is the entry of one field. Relation fields get Resolver set
// so gqlgen generates a resolver method instead of reading a struct field.
type FieldBinding struct {
	Resolver bool           `yaml:"resolver,omitempty"`
	Rest     map[string]any `yaml:",inline"`
}

// oneOrMany decodes a scalar or a sequence of strings, and encodes a
// single entry back as a scalar.
type oneOrMany []string

func (l *oneOrMany) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = oneOrMany{node.Value}
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
	default:
		return fmt.Errorf("line %d: want a path or a list of paths", node.Line)
	}
	return nil
}

func (l oneOrMany) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

// LoadGQLGenConfig loads a gqlgen.yml configuration file. A missing file
// yields an empty configuration.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GQLGenConfig{
				Models: make(map[string]TypeBinding),
			}, nil
		}
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}
	return ParseGQLGenConfig(data)
}

// ParseGQLGenConfig parses a gqlgen.yml document.
func ParseGQLGenConfig(data []byte) (*GQLGenConfig, error) {
	var cfg GQLGenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse gqlgen config: %w", err)
	}
	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeBinding)
	}
	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *GQLGenConfig) Marshal() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal gqlgen config: %w", err)
	}
	return string(data), nil
}

// clone returns a deep enough copy for BindAPI to mutate. A nil config
// clones into an empty one.
func (c *GQLGenConfig) clone() *GQLGenConfig {
	if c == nil {
		return &GQLGenConfig{Models: make(map[string]TypeBinding)}
	}
	cp := *c
	cp.SchemaFilename = slices.Clone(c.SchemaFilename)
	cp.Autobind = slices.Clone(c.Autobind)
	cp.Rest = maps.Clone(c.Rest)
	cp.Models = make(map[string]TypeBinding, len(c.Models))
	for k, v := range c.Models {
		v.Model = slices.Clone(v.Model)
		v.Fields = maps.Clone(v.Fields)
		cp.Models[k] = v
	}
	return &cp
}

// AddSchemaPath adds a schema path to the configuration if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// AddAutobind adds a package to the autobind list if not already present.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	if !slices.Contains(c.Autobind, pkg) {
		c.Autobind = append(c.Autobind, pkg)
	}
}

// SetModel sets the model binding for a GraphQL type.
func (c *GQLGenConfig) SetModel(typeName string, modelPath string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeBinding)
	}
	entry := c.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	c.Models[typeName] = entry
}

// SetResolver marks a field of a GraphQL type as resolved by a resolver.
func (c *GQLGenConfig) SetResolver(typeName, field string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeBinding)
	}
	entry := c.Models[typeName]
	if entry.Fields == nil {
		entry.Fields = make(map[string]FieldBinding)
	}
	f := entry.Fields[field]
	f.Resolver = true
	entry.Fields[field] = f
	c.Models[typeName] = entry
}

// BindAPI adds the bindings the generated schema needs:
//   - the schema path
//   - autobind of the model package, if any
//   - the custom scalars used by the schema
//   - a resolver for every relation field
func (c *GQLGenConfig) BindAPI(api *gen.API, schemaPath, modelPackage string) {
	if schemaPath != "" {
		c.AddSchemaPath(schemaPath)
	}
	if modelPackage != "" {
		c.AddAutobind(modelPackage)
	}
	for _, s := range usedScalars(api) {
		if m, ok := goScalars[s]; ok {
			c.SetModel(s.String(), m)
		}
	}
	for _, r := range api.Relations {
		for _, f := range r.Fields {
			c.SetResolver(r.Type.Name, f.Name)
		}
	}
}
