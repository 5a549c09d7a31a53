package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/crudgen/compiler/load"
)

// Graph holds the nodes/entities of the loaded schema together with its
// enumerations. It is immutable after NewGraph returns and safe to share
// between concurrent compilations.
type Graph struct {
	*Config
	// Nodes holds the entities of the schema in declaration order.
	Nodes []*Type
	// Enums holds the enumerations of the schema in declaration order.
	Enums []*Enum
	// Schema holds the raw schema document the graph was built from.
	Schema *load.Schema

	nodes map[string]*Type
	enums map[string]*Enum
}

// reserved names that generated shapes (or the GraphQL schema) use.
var reservedNames = map[string]bool{
	OrderByArgName: true,
	"BatchPayload": true,
	"Query":        true,
	"Mutation":     true,
}

// reservedSuffixes cannot end an entity or enum name, as they are used by
// the shape naming grammar.
var reservedSuffixes = []string{"Input", "Args", "Filter", "Payload"}

// NewGraph creates a new Graph for the code generation from the given
// schema. Resolution happens in two passes: all entities and enums are
// declared first, then field types are resolved, so that fields may refer
// to entities declared later in the document.
func NewGraph(c *Config, s *load.Schema) (g *Graph, err error) {
	if c == nil {
		c = &Config{}
	}
	if s == nil {
		return nil, NewConfigError("Schema", nil, "missing schema")
	}
	g = &Graph{
		Config: c,
		Schema: s,
		nodes:  make(map[string]*Type, len(s.Entities)),
		enums:  make(map[string]*Enum, len(s.Enums)),
	}
	if err := g.declare(); err != nil {
		return nil, err
	}
	for _, t := range g.Nodes {
		if err := g.resolve(t); err != nil {
			return nil, err
		}
	}
	if err := g.pair(); err != nil {
		return nil, err
	}
	if err := g.checkNames(); err != nil {
		return nil, err
	}
	for _, t := range g.Nodes {
		if err := g.checkType(t); err != nil {
			return nil, err
		}
	}
	c.logger().Debug("graph resolved")
	return g, nil
}

// Type returns the entity with the given name.
func (g *Graph) Type(name string) (*Type, bool) {
	t, ok := g.nodes[name]
	return t, ok
}

// Enum returns the enum with the given name.
func (g *Graph) Enum(name string) (*Enum, bool) {
	e, ok := g.enums[name]
	return e, ok
}

// Scalars returns the distinct scalar types used by the graph fields, in
// scalar declaration order.
func (g *Graph) Scalars() []Scalar {
	used := make(map[Scalar]bool)
	for _, t := range g.Nodes {
		for _, f := range t.ScalarFields() {
			used[f.Scalar] = true
		}
	}
	var scalars []Scalar
	for _, s := range Scalars {
		if used[s] {
			scalars = append(scalars, s)
		}
	}
	return scalars
}

// declare is the first pass. It registers all enums and entities.
func (g *Graph) declare() error {
	// Names are compared case-insensitively: they name files of the same
	// directory.
	declared := make(map[string]string)
	check := func(kind, raw, name string) error {
		if err := ValidSchemaName(name); err != nil {
			return NewSchemaError(raw, "", fmt.Sprintf("invalid %s name", kind), err)
		}
		if strings.EqualFold(name, g.indexName()) {
			return NewSchemaError(name, "", fmt.Sprintf("%s name collides with the index file %q", kind, g.indexName()), nil)
		}
		key := strings.ToLower(name)
		if prev, ok := declared[key]; ok {
			return NewSchemaError(name, "", fmt.Sprintf("%s name collides with %s", kind, prev), nil)
		}
		declared[key] = fmt.Sprintf("%s %q", kind, name)
		return nil
	}
	for _, e := range g.Schema.Enums {
		if e == nil {
			return NewSchemaError("", "", "null enum declaration", nil)
		}
		en := newEnum(e)
		if err := check("enum", e.Name, en.Name); err != nil {
			return err
		}
		if err := checkEnum(en); err != nil {
			return err
		}
		g.Enums = append(g.Enums, en)
		g.enums[en.Name] = en
	}
	for _, e := range g.Schema.Entities {
		if e == nil {
			return NewSchemaError("", "", "null entity declaration", nil)
		}
		t := newType(e)
		if err := check("entity", e.Name, t.Name); err != nil {
			return err
		}
		g.Nodes = append(g.Nodes, t)
		g.nodes[t.Name] = t
	}
	// Aggregate{Entity} outputs share the namespace with the entities.
	for _, t := range g.Nodes {
		if name, ok := strings.CutPrefix(t.Name, "Aggregate"); ok && g.nodes[name] != nil {
			return NewSchemaError(t.Name, "", fmt.Sprintf("entity name collides with the aggregate output of %q", name), nil)
		}
	}
	return nil
}

// resolve is the second pass. It classifies the field types of t.
func (g *Graph) resolve(t *Type) error {
	for _, fd := range t.def.Fields {
		if fd == nil {
			return NewSchemaError(t.Name, "", "null field declaration", nil)
		}
		f := &Field{
			def:      fd,
			Owner:    t,
			Name:     fd.Name,
			Nullable: fd.Nullable,
			List:     fd.List,
			ID:       fd.ID,
			Default:  fd.Default,
			Comment:  fd.Comment,
		}
		if err := checkFieldName(t, f); err != nil {
			return err
		}
		if fd.Type == "" {
			return NewSchemaError(t.Name, f.Name, "missing field type", nil)
		}
		if s, ok := ParseScalar(fd.Type); ok {
			f.Kind, f.Scalar = KindScalar, s
		} else if e, ok := g.enums[pascal(fd.Type)]; ok {
			f.Kind, f.Enum = KindEnum, e
		} else if target, ok := g.nodes[pascal(fd.Type)]; ok {
			f.Kind, f.Target = KindRelation, target
		} else {
			return NewResolutionError(t.Name, f.Name, fd.Type)
		}
		t.Fields = append(t.Fields, f)
		t.fields[f.Name] = f
		if f.ID {
			t.IDs = append(t.IDs, f)
		}
	}
	return nil
}

// pair links relation fields with their back-references. Explicit refs are
// linked first, then the remaining fields are paired with the single
// unpaired field on the target that points back at their owner.
func (g *Graph) pair() error {
	for _, t := range g.Nodes {
		for _, f := range t.RelationFields() {
			if f.def.Ref == "" || f.Ref != nil {
				continue
			}
			r, ok := f.Target.Field(f.def.Ref)
			switch {
			case !ok:
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("back-reference %q not found on %s", f.def.Ref, f.Target.Name), nil)
			case !r.IsRelation() || r.Target != t:
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("back-reference %s.%s does not point to %s", f.Target.Name, r.Name, t.Name), nil)
			case r.def.Ref != "" && r.def.Ref != f.Name:
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("back-reference %s.%s refers to %q", f.Target.Name, r.Name, r.def.Ref), nil)
			case r.Ref != nil && r.Ref != f:
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("back-reference %s.%s is already paired with %s.%s", f.Target.Name, r.Name, r.Ref.Owner.Name, r.Ref.Name), nil)
			}
			f.Ref, r.Ref = r, f
		}
	}
	unpaired := func(owner, target *Type) []*Field {
		return owner.FieldsBy(func(f *Field) bool {
			return f.IsRelation() && f.Target == target && f.Ref == nil && f.def.Ref == ""
		})
	}
	for _, t := range g.Nodes {
		for _, f := range t.RelationFields() {
			if f.Ref != nil || f.def.Ref != "" {
				continue
			}
			candidates := unpaired(f.Target, t)
			if f.Target == t {
				// Self relations pair two distinct fields of the same entity.
				switch len(candidates) {
				case 1:
					continue
				case 2:
					r := candidates[0]
					if r == f {
						r = candidates[1]
					}
					f.Ref, r.Ref = r, f
					continue
				}
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("ambiguous self relation: %d unpaired relation fields; set ref explicitly", len(candidates)), nil)
			}
			switch competing := unpaired(t, f.Target); {
			case len(candidates) == 0:
				// Unidirectional.
			case len(candidates) == 1 && len(competing) == 1:
				r := candidates[0]
				f.Ref, r.Ref = r, f
			default:
				return NewSchemaError(t.Name, f.Name, fmt.Sprintf("ambiguous back-reference between %s and %s; set ref explicitly", t.Name, f.Target.Name), nil)
			}
		}
	}
	return nil
}

// checkNames rejects entities whose generated input or method names are
// also generated for another entity, e.g. the scalar-where input of Post
// and the where input of PostScalar.
func (g *Graph) checkNames() error {
	inputs := make(map[string]*Type)
	for _, t := range g.Nodes {
		for _, suffix := range inputSuffixes(t) {
			key := strings.ToLower(t.Name + suffix)
			if prev, ok := inputs[key]; ok && prev != t {
				return NewSchemaError(t.Name, "", fmt.Sprintf("generated input %s%s collides with an input of %s", t.Name, suffix, prev.Name), nil)
			}
			inputs[key] = t
		}
	}
	methods := make(map[string]*Type)
	for _, t := range g.Nodes {
		for _, m := range g.methods(t) {
			if prev, ok := methods[m]; ok && prev != t {
				return NewSchemaError(t.Name, "", fmt.Sprintf("generated method %q collides with a method of %s", m, prev.Name), nil)
			}
			methods[m] = t
		}
	}
	return nil
}

// inputSuffixes returns the suffixes the input shapes of t may append to
// its name, following the grammar of filter.go and nested.go. Shapes of
// nested relations arriving at t are named after the back-references on t.
func inputSuffixes(t *Type) []string {
	suffixes := []string{
		"Filter",
		"WhereInput",
		"ScalarWhereInput",
		"WhereUniqueInput",
		"OrderByInput",
		"CreateInput",
		"UpdateInput",
		"UpdateManyMutationInput",
		"UpdateManyDataInput",
		"UpdateManyWithWhereNestedInput",
		"CreateOneInput",
		"CreateManyInput",
		"UpdateManyInput",
		"UpdateOneInput",
		"UpdateOneRequiredInput",
		"UpdateWithWhereUniqueNestedInput",
		"UpsertWithWhereUniqueNestedInput",
		"UpsertNestedInput",
	}
	for _, f := range t.RelationFields() {
		if f.Ref == nil {
			continue
		}
		w := "Without" + f.StructField()
		suffixes = append(suffixes,
			"Create"+w+"Input",
			"CreateOne"+w+"Input",
			"CreateMany"+w+"Input",
			"Update"+w+"DataInput",
			"UpdateMany"+w+"Input",
			"UpdateOne"+w+"Input",
			"UpdateOneRequired"+w+"Input",
			"UpdateWithWhereUnique"+w+"Input",
			"UpsertWithWhereUnique"+w+"Input",
			"Upsert"+w+"Input",
		)
	}
	return suffixes
}

// methods returns the API method names generated for t.
func (g *Graph) methods(t *Type) []string {
	var ms []string
	for _, k := range t.OpKinds() {
		ms = append(ms, method(t, k))
	}
	if g.featureEnabled(FeatureAggregates) {
		ms = append(ms, aggregateMethod(t))
	}
	return ms
}

// checkType validates the resolved fields of t.
func (g *Graph) checkType(t *Type) error {
	for _, f := range t.Fields {
		switch {
		case f.List && !f.IsRelation():
			return NewSchemaError(t.Name, f.Name, "list fields must be relations", nil)
		case f.List && f.Nullable:
			return NewSchemaError(t.Name, f.Name, "list relations cannot be nullable", nil)
		case f.ID && f.IsRelation():
			return NewSchemaError(t.Name, f.Name, "identifier field cannot be a relation", nil)
		case f.ID && f.Nullable:
			return NewSchemaError(t.Name, f.Name, "identifier field cannot be nullable", nil)
		case f.IsRelation() && f.Default:
			return NewSchemaError(t.Name, f.Name, "relation field cannot have a default", nil)
		case !f.IsRelation() && f.def.Ref != "":
			return NewSchemaError(t.Name, f.Name, "ref is only allowed on relation fields", nil)
		}
	}
	return nil
}

// checkFieldName validates f against the fields already resolved on t.
func checkFieldName(t *Type, f *Field) error {
	switch {
	case f.Name == "":
		return NewSchemaError(t.Name, "", "missing field name", nil)
	case !validIdent(f.Name):
		return NewSchemaError(t.Name, f.Name, "field name must be a valid identifier", nil)
	case f.Name == "AND" || f.Name == "OR" || f.Name == "NOT":
		return NewSchemaError(t.Name, f.Name, "field name is reserved for filter composition", nil)
	}
	for _, prev := range t.Fields {
		switch {
		case prev.Name == f.Name:
			return NewSchemaError(t.Name, f.Name, "duplicate field", nil)
		case prev.StructField() == f.StructField():
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("field name collides with %q in generated names", prev.Name), nil)
		}
	}
	return nil
}

func checkEnum(e *Enum) error {
	if len(e.Values) == 0 {
		return NewSchemaError(e.Name, "", "enum has no values", nil)
	}
	seen := make(map[string]bool, len(e.Values))
	for _, v := range e.Values {
		switch {
		case !validIdent(v):
			return NewSchemaError(e.Name, v, "enum value must be a valid identifier", nil)
		case seen[v]:
			return NewSchemaError(e.Name, v, "duplicate enum value", nil)
		}
		seen[v] = true
	}
	return nil
}

// ValidSchemaName will determine if a name is going to conflict with any
// name used by the generated API surface.
func ValidSchemaName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("missing name")
	case !validIdent(name):
		return fmt.Errorf("name %q is not a valid identifier", name)
	case reservedNames[name]:
		return fmt.Errorf("name %q is reserved by the generated API", name)
	}
	if s, ok := strings.CutPrefix(name, "Nullable"); ok {
		if _, ok := ParseScalar(s); ok {
			return fmt.Errorf("name %q is reserved by the nullable filter of %s", name, s)
		}
	}
	if _, ok := ParseScalar(name); ok {
		return fmt.Errorf("name %q conflicts with a scalar type", name)
	}
	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return fmt.Errorf("name %q cannot end with %q", name, suffix)
		}
	}
	return nil
}
