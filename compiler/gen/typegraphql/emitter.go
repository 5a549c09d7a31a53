package typegraphql

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/syssam/crudgen/compiler/gen"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("typegraphql").
	Funcs(template.FuncMap{
		"join":        strings.Join,
		"description": description,
	}).
	ParseFS(templatesFS, "templates/*.tmpl"))

// Emitter implements gen.Emitter for TypeGraphQL. It renders every
// construct as a TypeScript module holding a decorated class (or enum).
type Emitter struct {
	tmpl *template.Template
}

// NewEmitter creates a new TypeGraphQL emitter.
func NewEmitter() *Emitter {
	return &Emitter{tmpl: templates}
}

// Name returns the emitter name.
func (e *Emitter) Name() string {
	return "typegraphql"
}

// Emit renders the construct.
func (e *Emitter) Emit(c *gen.Construct) (string, error) {
	var (
		name string
		data any
	)
	switch c.Kind {
	case gen.ConstructEnum:
		name, data = "enum", &enumView{Header: header(c), Name: c.Enum.Name, Values: c.Enum.Values, Comment: c.Enum.Comment}
	case gen.ConstructModel:
		name, data = "class", classOf(c, "ObjectType", modelFields(c.Model))
	case gen.ConstructInput:
		name, data = "class", classOf(c, "InputType", c.Shape.Fields)
	case gen.ConstructOutput:
		name, data = "class", classOf(c, "ObjectType", c.Shape.Fields)
	case gen.ConstructArgs, gen.ConstructRelationArgs:
		name, data = "class", classOf(c, "ArgsType", c.Shape.Fields)
	case gen.ConstructCrudResolver:
		name, data = "resolver", crudView(c)
	case gen.ConstructOperationResolver:
		name, data = "resolver", operationView(c)
	case gen.ConstructRelationResolver:
		name, data = "resolver", relationsView(c)
	case gen.ConstructIndex:
		name, data = "index", &indexView{Header: header(c), Entries: c.Entries}
	default:
		return "", &gen.UnsupportedConstructError{Kind: c.Kind, Name: c.Name}
	}
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %q for %s: %w", name, c.Name, err)
	}
	return buf.String(), nil
}

// description renders an optional description as a TypeScript expression.
func description(s string) string {
	if s == "" {
		return "undefined"
	}
	return strconv.Quote(s)
}

// Generate is a convenience function compiling the graph with the
// TypeGraphQL emitter.
//
// Example:
//
//	import "github.com/syssam/crudgen/compiler/gen/typegraphql"
//	tree, err := typegraphql.Generate(graph)
func Generate(g *gen.Graph, exts ...gen.Extension) (*gen.Tree, error) {
	return gen.NewCompiler(g).
		WithEmitter(NewEmitter()).
		WithExtensions(exts...).
		Compile()
}
