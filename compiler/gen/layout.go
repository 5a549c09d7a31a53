package gen

import (
	"strings"
)

// ConstructKind is the kind of a construct placed in the artifact tree.
type ConstructKind uint8

// Construct kinds.
const (
	ConstructInvalid ConstructKind = iota
	ConstructEnum
	ConstructModel
	ConstructCrudResolver
	ConstructOperationResolver
	ConstructArgs
	ConstructInput
	ConstructOutput
	ConstructRelationResolver
	ConstructRelationArgs
	ConstructIndex
	// ConstructExtension marks artifacts contributed by extensions.
	ConstructExtension
)

var constructNames = [...]string{
	ConstructInvalid:           "invalid",
	ConstructEnum:              "enum",
	ConstructModel:             "model",
	ConstructCrudResolver:      "crud resolver",
	ConstructOperationResolver: "operation resolver",
	ConstructArgs:              "args",
	ConstructInput:             "input",
	ConstructOutput:            "output",
	ConstructRelationResolver:  "relation resolver",
	ConstructRelationArgs:      "relation args",
	ConstructIndex:             "index",
	ConstructExtension:         "extension",
}

// String returns the construct kind name.
func (k ConstructKind) String() string {
	if int(k) < len(constructNames) {
		return constructNames[k]
	}
	return constructNames[ConstructInvalid]
}

func shapeConstruct(k ShapeKind) ConstructKind {
	switch k {
	case ShapeInput:
		return ConstructInput
	case ShapeOutput:
		return ConstructOutput
	case ShapeArgs:
		return ConstructArgs
	default:
		return ConstructInvalid
	}
}

// Directory names of the artifact tree.
const (
	DirEnums     = "enums"
	DirModels    = "models"
	DirResolvers = "resolvers"
	DirCrud      = "crud"
	DirInputs    = "inputs"
	DirOutputs   = "outputs"
	DirRelations = "relations"
	DirArgs      = "args"
)

// Construct is a synthesized construct together with its planned location.
// Exactly one of the payload fields is set, according to Kind.
type Construct struct {
	Kind ConstructKind
	// Name is the canonical name of the construct and the base name of
	// its artifact.
	Name string
	// Dir holds the directory segments of the artifact.
	Dir []string

	Enum      *Enum
	Model     *Type
	Crud      *CrudResolver
	Operation *Operation
	Shape     *Shape
	Relations *RelationResolver
	// Entries of index constructs.
	Entries []IndexEntry

	// Header holds the comment placed at the top of the artifact.
	Header string
}

// IndexEntry is one re-export of an index.
type IndexEntry struct {
	// Name is the sibling artifact (or subdirectory) name.
	Name string
	// Dir is set for subdirectory indices.
	Dir bool
	// Index is the base name of the subdirectory index.
	Index string
}

// DirPath returns the slash separated directory of the construct.
func (c *Construct) DirPath() string { return strings.Join(c.Dir, "/") }

// Import returns the relative module path from the construct to the
// construct of the given kind and name, e.g. "../inputs/UserWhereInput".
// Scope is the entity owning entity-scoped directories.
func (c *Construct) Import(kind ConstructKind, scope *Type, name string) string {
	return relImport(c.Dir, dirOf(kind, scope), name)
}

// dirOf returns the directory of constructs of the given kind. It is the
// single source of the layout.
func dirOf(kind ConstructKind, scope *Type) []string {
	switch kind {
	case ConstructEnum:
		return []string{DirEnums}
	case ConstructModel:
		return []string{DirModels}
	case ConstructCrudResolver, ConstructOperationResolver:
		return []string{DirResolvers, DirCrud, scope.Name}
	case ConstructArgs:
		return []string{DirResolvers, DirCrud, scope.Name, DirArgs}
	case ConstructInput:
		return []string{DirResolvers, DirInputs}
	case ConstructOutput:
		return []string{DirResolvers, DirOutputs}
	case ConstructRelationResolver:
		return []string{DirResolvers, DirRelations, scope.Name}
	case ConstructRelationArgs:
		return []string{DirResolvers, DirRelations, scope.Name, DirArgs}
	default:
		return nil
	}
}

// relImport returns the relative path from directory from to the file name
// in directory to.
func relImport(from, to []string, name string) string {
	n := 0
	for n < len(from) && n < len(to) && from[n] == to[n] {
		n++
	}
	var b strings.Builder
	if n == len(from) {
		b.WriteString("./")
	}
	for range from[n:] {
		b.WriteString("../")
	}
	for _, seg := range to[n:] {
		b.WriteString(seg)
		b.WriteByte('/')
	}
	b.WriteString(name)
	return b.String()
}

// plan assigns every synthesized construct its location. The returned
// slice is in generation order, which is also the re-export order of the
// indices.
func plan(api *API, header string) []*Construct {
	var cs []*Construct
	add := func(c *Construct) {
		c.Header = header
		cs = append(cs, c)
	}
	for _, e := range api.Graph.Enums {
		add(&Construct{Kind: ConstructEnum, Name: e.Name, Dir: dirOf(ConstructEnum, nil), Enum: e})
	}
	add(&Construct{Kind: ConstructEnum, Name: api.OrderByArg.Name, Dir: dirOf(ConstructEnum, nil), Enum: api.OrderByArg})
	for _, t := range api.Graph.Nodes {
		add(&Construct{Kind: ConstructModel, Name: t.Name, Dir: dirOf(ConstructModel, nil), Model: t})
	}
	for _, r := range api.Cruds {
		add(&Construct{Kind: ConstructCrudResolver, Name: r.Name(), Dir: dirOf(ConstructCrudResolver, r.Type), Crud: r})
		for _, op := range r.Operations {
			add(&Construct{Kind: ConstructOperationResolver, Name: op.Name() + "Resolver", Dir: dirOf(ConstructOperationResolver, r.Type), Operation: op})
		}
		for _, op := range r.Operations {
			add(&Construct{Kind: ConstructArgs, Name: op.Args.Name, Dir: dirOf(ConstructArgs, r.Type), Shape: op.Args})
		}
	}
	for _, r := range api.Relations {
		add(&Construct{Kind: ConstructRelationResolver, Name: r.Name(), Dir: dirOf(ConstructRelationResolver, r.Type), Relations: r})
		for _, f := range r.Fields {
			if f.Args != nil {
				add(&Construct{Kind: ConstructRelationArgs, Name: f.Args.Name, Dir: dirOf(ConstructRelationArgs, r.Type), Shape: f.Args})
			}
		}
	}
	for _, s := range api.Inputs {
		add(&Construct{Kind: ConstructInput, Name: s.Name, Dir: dirOf(ConstructInput, nil), Shape: s})
	}
	for _, s := range api.Outputs {
		add(&Construct{Kind: ConstructOutput, Name: s.Name, Dir: dirOf(ConstructOutput, nil), Shape: s})
	}
	return cs
}

// indexes derives one index construct per directory of the tree: it
// re-exports the exported artifacts of the directory in tree order, then the
// index of each subdirectory in first-seen order. Directories holding only
// subdirectories, including the root, get an index too. Indices are ordered
// deepest first, so an index is always added after the indices it
// re-exports.
func indexes(t *Tree, base, header string) []*Construct {
	var (
		order []string
		dirs  = make(map[string]*Construct)
	)
	var visit func(segs []string) *Construct
	visit = func(segs []string) *Construct {
		key := strings.Join(segs, "/")
		if c, ok := dirs[key]; ok {
			return c
		}
		c := &Construct{Kind: ConstructIndex, Name: base, Dir: segs, Header: header}
		dirs[key] = c
		if len(segs) > 0 {
			parent := visit(segs[:len(segs)-1])
			parent.Entries = append(parent.Entries, IndexEntry{Name: segs[len(segs)-1], Dir: true, Index: base})
		}
		order = append(order, key)
		return c
	}
	for _, a := range t.Artifacts() {
		if !a.Export {
			continue
		}
		c := visit(append([]string(nil), a.Dir...))
		c.Entries = append(c.Entries, IndexEntry{Name: a.Name})
	}
	if len(order) == 0 {
		return nil
	}
	// Files before subdirectories.
	idx := make([]*Construct, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		c := dirs[order[i]]
		files := make([]IndexEntry, 0, len(c.Entries))
		var subdirs []IndexEntry
		for _, e := range c.Entries {
			if e.Dir {
				subdirs = append(subdirs, e)
			} else {
				files = append(files, e)
			}
		}
		c.Entries = append(files, subdirs...)
		idx = append(idx, c)
	}
	return idx
}
