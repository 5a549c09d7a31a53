package graphql

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/crudgen/compiler/gen"
)

// Root operation type names.
const (
	QueryType    = "Query"
	MutationType = "Mutation"
)

// Render renders the API as a GraphQL SDL document.
//
// Definitions are laid out in a fixed order: custom scalars, enums, entity
// objects, output objects, input objects, then the Query and Mutation
// types. The same API always renders to the same document.
func Render(api *gen.API, descriptions bool) (string, error) {
	doc, err := Document(api, descriptions)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String(), nil
}

// Validate loads the document with the GraphQL validator.
func Validate(name, sdl string) error {
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl}); err != nil {
		return gen.NewGenerationError("validate", name, "invalid graphql schema", err)
	}
	return nil
}

// Document builds the SDL document of the API.
func Document(api *gen.API, descriptions bool) (*ast.SchemaDocument, error) {
	if api == nil || api.Graph == nil {
		return nil, gen.NewConfigError("API", nil, "missing api")
	}
	b := &builder{api: api, descriptions: descriptions}
	return b.document(), nil
}

type builder struct {
	api          *gen.API
	descriptions bool
}

func (b *builder) describe(s string) string {
	if !b.descriptions {
		return ""
	}
	return s
}

func (b *builder) document() *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}
	for _, s := range usedScalars(b.api) {
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: s.String()})
	}
	enums := append(append([]*gen.Enum(nil), b.api.Graph.Enums...), b.api.OrderByArg)
	for _, e := range enums {
		doc.Definitions = append(doc.Definitions, b.enum(e))
	}
	for _, t := range b.api.Graph.Nodes {
		doc.Definitions = append(doc.Definitions, b.model(t))
	}
	for _, sh := range b.api.Outputs {
		doc.Definitions = append(doc.Definitions, b.shape(ast.Object, sh))
	}
	for _, sh := range b.api.Inputs {
		doc.Definitions = append(doc.Definitions, b.shape(ast.InputObject, sh))
	}
	query, mutation := b.roots()
	for _, def := range []*ast.Definition{query, mutation} {
		if len(def.Fields) > 0 {
			doc.Definitions = append(doc.Definitions, def)
		}
	}
	return doc
}

func (b *builder) enum(e *gen.Enum) *ast.Definition {
	def := &ast.Definition{Kind: ast.Enum, Name: e.Name, Description: b.describe(e.Comment)}
	for _, v := range e.Values {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
	}
	return def
}

// model returns the object type of an entity: its value fields followed by
// its relation fields.
func (b *builder) model(t *gen.Type) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: t.Name, Description: b.describe(t.Comment)}
	for _, f := range t.ValueFields() {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: b.describe(f.Comment),
			Type:        fieldType(f),
		})
	}
	r := b.relations(t)
	if r == nil {
		return def
	}
	for _, f := range r.Fields {
		fd := &ast.FieldDefinition{
			Name:        f.Name,
			Description: b.describe(f.Comment),
			Type:        typeOf(f.Returns),
		}
		if f.Args != nil {
			fd.Arguments = arguments(f.Args)
		}
		def.Fields = append(def.Fields, fd)
	}
	return def
}

func (b *builder) relations(t *gen.Type) *gen.RelationResolver {
	for _, r := range b.api.Relations {
		if r.Type == t {
			return r
		}
	}
	return nil
}

func (b *builder) shape(kind ast.DefinitionKind, sh *gen.Shape) *ast.Definition {
	def := &ast.Definition{Kind: kind, Name: sh.Name}
	for _, f := range sh.Fields {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: b.describe(f.Comment),
			Type:        typeOf(f.Type),
		})
	}
	return def
}

// roots returns the Query and Mutation types holding the operations of
// every entity, in entity then operation order.
func (b *builder) roots() (query, mutation *ast.Definition) {
	query = &ast.Definition{Kind: ast.Object, Name: QueryType}
	mutation = &ast.Definition{Kind: ast.Object, Name: MutationType}
	for _, c := range b.api.Cruds {
		for _, op := range c.Operations {
			fd := &ast.FieldDefinition{
				Name:      op.Method,
				Arguments: arguments(op.Args),
				Type:      typeOf(op.Returns),
			}
			if op.Kind.Query() {
				query.Fields = append(query.Fields, fd)
			} else {
				mutation.Fields = append(mutation.Fields, fd)
			}
		}
		if a := c.Aggregate; a != nil {
			query.Fields = append(query.Fields, &ast.FieldDefinition{
				Name: a.Method,
				Type: ast.NonNullNamedType(a.Output.Name, nil),
			})
		}
	}
	return query, mutation
}

func arguments(sh *gen.Shape) ast.ArgumentDefinitionList {
	args := make(ast.ArgumentDefinitionList, 0, len(sh.Fields))
	for _, f := range sh.Fields {
		args = append(args, &ast.ArgumentDefinition{Name: f.Name, Type: typeOf(f.Type)})
	}
	return args
}

// Print returns the SDL of a single definition, mostly useful in tests and
// schema hooks.
func Print(def *ast.Definition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(&ast.SchemaDocument{Definitions: ast.DefinitionList{def}})
	return buf.String()
}

// MustRender is like Render but panics on error.
func MustRender(api *gen.API) string {
	sdl, err := Render(api, true)
	if err != nil {
		panic(fmt.Sprintf("graphql: %v", err))
	}
	return sdl
}
