package gen

// Filter and ordering vocabulary. All shapes are memoized in the run
// registry; where-inputs recurse through relations without cycle-breaking
// since revisiting an entity reuses its in-progress shape.

// scalarFilter returns the filter input of the given scalar type.
func (s *synth) scalarFilter(t Scalar, nullable bool) *Shape {
	name := t.String() + "Filter"
	null := s.nullable[t]
	if s.splitNullable {
		null = nullable
		if nullable {
			name = "Nullable" + name
		}
	}
	return s.reg.memo(ShapeInput, name, nil, func(sh *Shape) {
		for _, op := range t.Ops() {
			ref := scalarRef(t)
			if op.Variadic() {
				ref = ref.list()
			}
			ref.Null = null && op.Nullable()
			sh.add(op.Name(), ref)
		}
	})
}

// enumFilter returns the filter input of the given enum.
func (s *synth) enumFilter(e *Enum) *Shape {
	null := s.enumNullable[e]
	return s.reg.memo(ShapeInput, e.Name+"Filter", nil, func(sh *Shape) {
		for _, op := range EnumOps() {
			ref := enumRef(e)
			if op.Variadic() {
				ref = ref.list()
			}
			ref.Null = null && op.Nullable()
			sh.add(op.Name(), ref)
		}
	})
}

// fieldFilter returns the filter of a scalar or enum field.
func (s *synth) fieldFilter(f *Field) *Shape {
	if f.IsEnum() {
		return s.enumFilter(f.Enum)
	}
	return s.scalarFilter(f.Scalar, f.Nullable)
}

// relationFilter returns the list-relation filter of t, e.g. PostFilter.
func (s *synth) relationFilter(t *Type) *Shape {
	return s.reg.memo(ShapeInput, t.Name+"Filter", t, func(sh *Shape) {
		where := shapeRef(s.where(t))
		sh.add("every", where)
		sh.add("some", where)
		sh.add("none", where)
	})
}

// where returns the where-input of t.
func (s *synth) where(t *Type) *Shape {
	return s.reg.memo(ShapeInput, t.Name+"WhereInput", t, func(sh *Shape) {
		for _, f := range t.Fields {
			switch {
			case !f.IsRelation():
				sh.add(f.Name, shapeRef(s.fieldFilter(f)))
			case f.List:
				sh.add(f.Name, shapeRef(s.relationFilter(f.Target)))
			default:
				sh.add(f.Name, shapeRef(s.where(f.Target)))
			}
		}
		compose(sh)
	})
}

// scalarWhere returns the where-input of t restricted to its value fields.
// It selects related records of a list relation for batch updates.
func (s *synth) scalarWhere(t *Type) *Shape {
	return s.reg.memo(ShapeInput, t.Name+"ScalarWhereInput", t, func(sh *Shape) {
		for _, f := range t.ValueFields() {
			sh.add(f.Name, shapeRef(s.fieldFilter(f)))
		}
		compose(sh)
	})
}

// compose adds the boolean composition fields to a where-input.
func compose(sh *Shape) {
	self := shapeRef(sh).list()
	sh.add("AND", self)
	sh.add("OR", self)
	sh.add("NOT", self)
}

// whereUnique returns the where-unique input of t, built from its
// identifier fields only. It returns nil for entities without identifier.
func (s *synth) whereUnique(t *Type) *Shape {
	if !t.HasID() {
		return nil
	}
	return s.reg.memo(ShapeInput, t.Name+"WhereUniqueInput", t, func(sh *Shape) {
		for _, f := range t.IDs {
			if f.IsEnum() {
				sh.add(f.Name, enumRef(f.Enum))
			} else {
				sh.add(f.Name, scalarRef(f.Scalar))
			}
		}
	})
}

// orderBy returns the order-by input of t, or nil if t has no orderable
// field.
func (s *synth) orderBy(t *Type) *Shape {
	fields := t.FieldsBy((*Field).Orderable)
	if len(fields) == 0 {
		return nil
	}
	return s.reg.memo(ShapeInput, t.Name+"OrderByInput", t, func(sh *Shape) {
		for _, f := range fields {
			sh.add(f.Name, enumRef(s.orderByArg))
		}
	})
}

// valueInput builds an input of optional value fields. The identifier
// fields are skipped for batch updates.
func (s *synth) valueInput(t *Type, name string, ids bool) *Shape {
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		for _, f := range t.ValueFields() {
			if f.ID && !ids {
				continue
			}
			sh.add(f.Name, valueRef(f))
		}
	})
}

// updateManyMutation returns the data input of top-level batch updates.
func (s *synth) updateManyMutation(t *Type) *Shape {
	return s.valueInput(t, t.Name+"UpdateManyMutationInput", false)
}

// updateManyData returns the data input of nested batch updates.
func (s *synth) updateManyData(t *Type) *Shape {
	return s.valueInput(t, t.Name+"UpdateManyDataInput", false)
}

// valueRef returns the reference of a scalar or enum field value.
func valueRef(f *Field) TypeRef {
	ref := scalarRef(f.Scalar)
	if f.IsEnum() {
		ref = enumRef(f.Enum)
	}
	ref.Null = f.Nullable
	return ref
}
