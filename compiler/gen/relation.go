package gen

type (
	// RelationResolver resolves the relation fields of one entity.
	RelationResolver struct {
		Type   *Type
		Fields []*RelationField
	}

	// RelationField resolves one relation field: given a parent record it
	// yields the related record or records.
	RelationField struct {
		*Field
		// Args holds the arguments of list relations; nil for single ones.
		Args *Shape
		// Returns is the result type of the resolver.
		Returns TypeRef
	}
)

// Name returns the resolver name, e.g. "UserRelationsResolver".
func (r *RelationResolver) Name() string { return r.Type.Name + "RelationsResolver" }

// relations derives the relation resolver of t. It returns nil for
// entities without relation fields.
func (s *synth) relations(t *Type) *RelationResolver {
	fields := t.RelationFields()
	if len(fields) == 0 {
		return nil
	}
	r := &RelationResolver{Type: t}
	for _, f := range fields {
		rf := &RelationField{Field: f}
		if f.List {
			rf.Returns = modelRef(f.Target).list().required()
			rf.Args = s.reg.memoIn("relations/"+t.Name, ShapeArgs, t.Name+f.StructField()+"Args", t, func(sh *Shape) {
				s.listArgs(sh, f.Target)
			})
		} else {
			rf.Returns = modelRef(f.Target).requiredIf(!f.Nullable)
		}
		r.Fields = append(r.Fields, rf)
	}
	return r
}
