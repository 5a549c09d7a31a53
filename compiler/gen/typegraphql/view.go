package typegraphql

import (
	"fmt"
	"strings"

	"github.com/syssam/crudgen/compiler/gen"
)

// The views below are the template data. They hold the decisions about
// imports and types, so the templates only lay out text.
type (
	importSpec struct {
		Names []string
		Path  string
	}

	fieldView struct {
		Name     string
		GraphQL  string
		TS       string
		Optional bool
	}

	classView struct {
		Header    []string
		Imports   []*importSpec
		Decorator string
		Name      string
		Fields    []fieldView
	}

	enumView struct {
		Header  []string
		Name    string
		Values  []string
		Comment string
	}

	methodView struct {
		// Decorator is one of Query, Mutation or FieldResolver.
		Decorator string
		Method    string
		Returns   string
		Nullable  bool
		// Root names the parent parameter of field resolvers.
		Root, RootType string
		// Args names the ArgsType class, if any.
		Args string
		TS   string
		Body string
	}

	resolverView struct {
		Header  []string
		Imports []*importSpec
		Of      string
		Name    string
		Methods []methodView
	}

	indexView struct {
		Header  []string
		Entries []gen.IndexEntry
	}
)

// imports collects the imports of one artifact in first-use order.
type imports struct {
	self   string
	specs  []*importSpec
	byPath map[string]*importSpec
}

func newImports(self string) *imports {
	return &imports{self: self, byPath: make(map[string]*importSpec)}
}

func (im *imports) add(path, name string) {
	if name == im.self {
		return
	}
	spec, ok := im.byPath[path]
	if !ok {
		spec = &importSpec{Path: path}
		im.byPath[path] = spec
		im.specs = append(im.specs, spec)
	}
	for _, n := range spec.Names {
		if n == name {
			return
		}
	}
	spec.Names = append(spec.Names, name)
}

// ref returns the GraphQL and TypeScript types of a reference, registering
// the imports it needs.
func (im *imports) ref(c *gen.Construct, r gen.TypeRef) (string, string) {
	var gql, ts string
	switch r.Kind {
	case gen.RefScalar:
		st := scalarOf(r.Scalar)
		if st.Module != "" {
			im.add(st.Module, st.Ident)
		}
		gql, ts = st.GraphQL, st.TS
	case gen.RefEnum:
		im.add(c.Import(gen.ConstructEnum, nil, r.Enum.Name), r.Enum.Name)
		gql, ts = r.Enum.Name, r.Enum.Name
	case gen.RefShape:
		kind := gen.ConstructInput
		if r.Shape.Kind == gen.ShapeOutput {
			kind = gen.ConstructOutput
		}
		im.add(c.Import(kind, r.Shape.Type, r.Shape.Name), r.Shape.Name)
		gql, ts = r.Shape.Name, r.Shape.Name
	case gen.RefModel:
		im.add(c.Import(gen.ConstructModel, nil, r.Model.Name), r.Model.Name)
		gql, ts = r.Model.Name, r.Model.Name
	}
	if r.List {
		gql, ts = "["+gql+"]", ts+"[]"
	}
	if r.Null {
		ts += " | null"
	}
	return gql, ts
}

func header(c *gen.Construct) []string {
	if c.Header == "" {
		return nil
	}
	return strings.Split(c.Header, "\n")
}

func classOf(c *gen.Construct, decorator string, fields []*gen.ShapeField) *classView {
	im := newImports(c.Name)
	v := &classView{
		Header:    header(c),
		Decorator: decorator,
		Name:      c.Name,
	}
	for _, f := range fields {
		gql, ts := im.ref(c, f.Type)
		v.Fields = append(v.Fields, fieldView{
			Name:     f.Name,
			GraphQL:  gql,
			TS:       ts,
			Optional: !f.Type.Required,
		})
	}
	v.Imports = im.specs
	return v
}

// modelFields returns the record fields of an entity as shape fields.
func modelFields(t *gen.Type) []*gen.ShapeField {
	var fields []*gen.ShapeField
	for _, f := range t.ValueFields() {
		ref := gen.TypeRef{Kind: gen.RefScalar, Scalar: f.Scalar, Required: !f.Nullable, Null: f.Nullable}
		if f.IsEnum() {
			ref = gen.TypeRef{Kind: gen.RefEnum, Enum: f.Enum, Required: !f.Nullable, Null: f.Nullable}
		}
		fields = append(fields, &gen.ShapeField{Name: f.Name, Type: ref, Comment: f.Comment})
	}
	return fields
}

// prismaCall returns the client call implementing an operation.
var prismaCall = map[gen.OpKind]string{
	gen.OpCreateOne:  "create",
	gen.OpDeleteOne:  "delete",
	gen.OpDeleteMany: "deleteMany",
	gen.OpFindOne:    "findOne",
	gen.OpFindMany:   "findMany",
	gen.OpUpdateOne:  "update",
	gen.OpUpdateMany: "updateMany",
	gen.OpUpsertOne:  "upsert",
}

func operationMethod(c *gen.Construct, im *imports, op *gen.Operation) methodView {
	gql, ts := im.ref(c, op.Returns)
	if !op.Returns.Required {
		ts += " | null"
	}
	im.add(c.Import(gen.ConstructArgs, op.Type, op.Args.Name), op.Args.Name)
	decorator := "Mutation"
	if op.Kind.Query() {
		decorator = "Query"
	}
	return methodView{
		Decorator: decorator,
		Method:    op.Method,
		Returns:   gql,
		Nullable:  !op.Returns.Required,
		Args:      op.Args.Name,
		TS:        ts,
		Body:      fmt.Sprintf("ctx.prisma.%s.%s(args)", op.Type.Label(), prismaCall[op.Kind]),
	}
}

func aggregateMethod(c *gen.Construct, im *imports, a *gen.Aggregate) methodView {
	im.add(c.Import(gen.ConstructOutput, nil, a.Output.Name), a.Output.Name)
	return methodView{
		Decorator: "Query",
		Method:    a.Method,
		Returns:   a.Output.Name,
		TS:        a.Output.Name,
		Body:      fmt.Sprintf("{ count: await ctx.prisma.%s.count() }", a.Type.Label()),
	}
}

func crudView(c *gen.Construct) *resolverView {
	r := c.Crud
	im := newImports(c.Name)
	v := &resolverView{Header: header(c), Of: r.Type.Name, Name: c.Name}
	im.add(c.Import(gen.ConstructModel, nil, r.Type.Name), r.Type.Name)
	for _, op := range r.Operations {
		v.Methods = append(v.Methods, operationMethod(c, im, op))
	}
	if r.Aggregate != nil {
		v.Methods = append(v.Methods, aggregateMethod(c, im, r.Aggregate))
	}
	v.Imports = im.specs
	return v
}

func operationView(c *gen.Construct) *resolverView {
	op := c.Operation
	im := newImports(c.Name)
	im.add(c.Import(gen.ConstructModel, nil, op.Type.Name), op.Type.Name)
	v := &resolverView{
		Header:  header(c),
		Of:      op.Type.Name,
		Name:    c.Name,
		Methods: []methodView{operationMethod(c, im, op)},
	}
	v.Imports = im.specs
	return v
}

func relationsView(c *gen.Construct) *resolverView {
	r := c.Relations
	t := r.Type
	im := newImports(c.Name)
	im.add(c.Import(gen.ConstructModel, nil, t.Name), t.Name)
	v := &resolverView{Header: header(c), Of: t.Name, Name: c.Name}
	root := t.Label()
	for _, f := range r.Fields {
		gql, ts := im.ref(c, f.Returns)
		if !f.Returns.Required {
			ts += " | null"
		}
		m := methodView{
			Decorator: "FieldResolver",
			Method:    f.Name,
			Returns:   gql,
			Nullable:  !f.Returns.Required,
			Root:      root,
			RootType:  t.Name,
			TS:        ts,
		}
		args := ""
		if f.Args != nil {
			im.add(c.Import(gen.ConstructRelationArgs, t, f.Args.Name), f.Args.Name)
			m.Args, args = f.Args.Name, "args"
		}
		m.Body = fmt.Sprintf("%s.%s(%s)", lookup(t, root), f.Name, args)
		v.Methods = append(v.Methods, m)
	}
	v.Imports = im.specs
	return v
}

// lookup returns the client call fetching the parent record.
func lookup(t *gen.Type, root string) string {
	var (
		keys   = t.IDs
		method = "findOne"
	)
	if !t.HasID() {
		keys, method = t.ValueFields(), "findFirst"
	}
	where := make([]string, len(keys))
	for i, f := range keys {
		where[i] = fmt.Sprintf("%s: %s.%s", f.Name, root, f.Name)
	}
	return fmt.Sprintf("ctx.prisma.%s.%s({ where: { %s } })", t.Label(), method, strings.Join(where, ", "))
}
