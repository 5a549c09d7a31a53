package gen

import "fmt"

// ShapeKind classifies a synthesized shape.
type ShapeKind uint8

// Shape kinds.
const (
	ShapeInput ShapeKind = iota + 1
	ShapeArgs
	ShapeOutput
)

// String returns the shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeInput:
		return "input"
	case ShapeArgs:
		return "args"
	case ShapeOutput:
		return "output"
	default:
		return "invalid"
	}
}

type (
	// Shape is a named, ordered set of fields: an input object, an
	// argument set or an output object of the generated API.
	Shape struct {
		Kind ShapeKind
		// Name is the canonical name of the shape. It identifies the shape
		// in the registry and names its artifact.
		Name string
		// Type is the entity the shape was derived from, if any.
		Type *Type
		// Fields of the shape in declaration order.
		Fields []*ShapeField
	}

	// ShapeField is one field of a shape.
	ShapeField struct {
		Name string
		Type TypeRef
		// Comment holds an optional description of the field.
		Comment string
	}

	// TypeRef references the type of a shape field.
	TypeRef struct {
		Kind RefKind
		// Scalar is set for RefScalar.
		Scalar Scalar
		// Enum is set for RefEnum.
		Enum *Enum
		// Shape is set for RefShape.
		Shape *Shape
		// Model is set for RefModel.
		Model *Type
		// List wraps the type in a list of non-null elements.
		List bool
		// Required marks the value as non-null.
		Required bool
		// Null reports if null is an accepted value with its own meaning,
		// e.g. the null check of a filter.
		Null bool
	}
)

// RefKind tells what a TypeRef points to.
type RefKind uint8

// Reference kinds.
const (
	RefScalar RefKind = iota + 1
	RefEnum
	RefShape
	RefModel
)

// Name returns the name of the referenced type.
func (r TypeRef) Name() string {
	switch r.Kind {
	case RefScalar:
		return r.Scalar.String()
	case RefEnum:
		return r.Enum.Name
	case RefShape:
		return r.Shape.Name
	case RefModel:
		return r.Model.Name
	default:
		return ""
	}
}

// String returns the GraphQL notation of the reference, e.g. "[UserWhereInput!]".
func (r TypeRef) String() string {
	s := r.Name()
	if r.List {
		s = "[" + s + "!]"
	}
	if r.Required {
		s += "!"
	}
	return s
}

// Field returns the shape field with the given name.
func (s *Shape) Field(name string) (*ShapeField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FieldNames returns the names of the shape fields.
func (s *Shape) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Shapes returns the distinct shapes referenced by the fields of s, in
// field order.
func (s *Shape) Shapes() []*Shape {
	var (
		refs []*Shape
		seen = make(map[*Shape]bool)
	)
	for _, f := range s.Fields {
		if sh := f.Type.Shape; f.Type.Kind == RefShape && !seen[sh] {
			seen[sh] = true
			refs = append(refs, sh)
		}
	}
	return refs
}

// Enums returns the distinct enums referenced by the fields of s.
func (s *Shape) Enums() []*Enum {
	var (
		enums []*Enum
		seen  = make(map[*Enum]bool)
	)
	for _, f := range s.Fields {
		if e := f.Type.Enum; f.Type.Kind == RefEnum && !seen[e] {
			seen[e] = true
			enums = append(enums, e)
		}
	}
	return enums
}

// add appends a field to the shape. Field names are unique within a shape.
func (s *Shape) add(name string, ref TypeRef) {
	if _, ok := s.Field(name); ok {
		panic(fmt.Sprintf("crudgen: duplicate field %q in shape %s", name, s.Name))
	}
	s.Fields = append(s.Fields, &ShapeField{Name: name, Type: ref})
}

func scalarRef(s Scalar) TypeRef { return TypeRef{Kind: RefScalar, Scalar: s} }

func enumRef(e *Enum) TypeRef { return TypeRef{Kind: RefEnum, Enum: e} }

func shapeRef(s *Shape) TypeRef { return TypeRef{Kind: RefShape, Shape: s} }

func modelRef(t *Type) TypeRef { return TypeRef{Kind: RefModel, Model: t} }

func (r TypeRef) list() TypeRef {
	r.List = true
	return r
}

func (r TypeRef) required() TypeRef {
	r.Required = true
	return r
}

func (r TypeRef) requiredIf(b bool) TypeRef {
	r.Required = b
	return r
}

// registry holds the shapes synthesized during one compilation, keyed by
// canonical name. It is created per run and never shared.
type registry struct {
	shapes map[string]*Shape
	order  []*Shape
	// err records the first request that reused a name for a shape of a
	// different entity or kind.
	err error
}

func newRegistry() *registry {
	return &registry{shapes: make(map[string]*Shape)}
}

// get returns the shape registered under the given key.
func (r *registry) get(key string) (*Shape, bool) {
	s, ok := r.shapes[key]
	return s, ok
}

// add registers a new shape under the given key. It must be called before
// the shape fields are built, so re-entrant requests for the same key
// receive the in-progress shape instead of recursing.
func (r *registry) add(key string, kind ShapeKind, name string, t *Type) *Shape {
	if _, ok := r.shapes[key]; ok {
		panic(fmt.Sprintf("crudgen: shape %s registered twice", key))
	}
	s := &Shape{Kind: kind, Name: name, Type: t}
	r.shapes[key] = s
	r.order = append(r.order, s)
	return s
}

// memo returns the shape registered under name, or registers a new one and
// calls build to populate it.
func (r *registry) memo(kind ShapeKind, name string, t *Type, build func(*Shape)) *Shape {
	return r.memoIn("", kind, name, t, build)
}

// memoIn is like memo for shapes whose names are unique within a scope
// only, such as the argument shapes of one resolver.
func (r *registry) memoIn(scope string, kind ShapeKind, name string, t *Type, build func(*Shape)) *Shape {
	key := name
	if scope != "" {
		key = scope + "/" + name
	}
	if s, ok := r.get(key); ok {
		if (s.Type != t || s.Kind != kind) && r.err == nil {
			r.err = &NamingCollisionError{Path: key, Existing: shapeConstruct(s.Kind), Colliding: shapeConstruct(kind)}
		}
		return s
	}
	s := r.add(key, kind, name, t)
	build(s)
	return s
}

// list returns the registered shapes of the given kind in registration order.
func (r *registry) list(kind ShapeKind) []*Shape {
	var shapes []*Shape
	for _, s := range r.order {
		if s.Kind == kind {
			shapes = append(shapes, s)
		}
	}
	return shapes
}
