package gen

// Nested inputs create and update related records inline. Arriving at
// entity T through relation field R, the inputs of T omit the
// back-reference of R, which is the only field that leads straight back to
// where the traversal came from. Every shape is registered before its fields
// are built, so each (target, omitted back-reference, role) triple is built
// exactly once and cyclic graphs terminate.

// createData returns the create input of t. via is the relation field the
// input is nested under, or nil for the top-level create input.
func (s *synth) createData(t *Type, via *Field) *Shape {
	name := t.Name + "Create" + infix(via) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		for _, f := range t.Fields {
			switch {
			case omitted(f, via):
			case f.IsRelation():
				sh.add(f.Name, shapeRef(s.createEnvelope(f)).requiredIf(f.RequiredOnCreate()))
			default:
				sh.add(f.Name, valueRef(f).requiredIf(f.RequiredOnCreate()))
			}
		}
	})
}

// updateData returns the update input of t nested under via (or the
// top-level update input for a nil via). All fields are optional.
func (s *synth) updateData(t *Type, via *Field) *Shape {
	name := t.Name + "UpdateInput"
	if via != nil && via.Ref != nil {
		name = t.Name + "Update" + via.without() + "DataInput"
	}
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		for _, f := range t.Fields {
			switch {
			case omitted(f, via):
			case f.IsRelation():
				sh.add(f.Name, shapeRef(s.updateEnvelope(f)))
			default:
				sh.add(f.Name, valueRef(f))
			}
		}
	})
}

// createEnvelope returns the input of relation field r on create: either
// create new related records or connect existing ones.
func (s *synth) createEnvelope(r *Field) *Shape {
	t := r.Target
	card := "One"
	if r.List {
		card = "Many"
	}
	name := t.Name + "Create" + card + infix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		data := shapeRef(s.createData(t, r))
		unique := s.whereUnique(t)
		if r.List {
			sh.add("create", data.list())
		} else {
			sh.add("create", data)
		}
		if unique != nil {
			sh.add("connect", listIf(shapeRef(unique), r.List))
		}
	})
}

// updateEnvelope returns the input of relation field r on update.
func (s *synth) updateEnvelope(r *Field) *Shape {
	if r.List {
		return s.updateManyEnvelope(r)
	}
	return s.updateOneEnvelope(r)
}

func (s *synth) updateManyEnvelope(r *Field) *Shape {
	t := r.Target
	name := t.Name + "UpdateMany" + infix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		sh.add("create", shapeRef(s.createData(t, r)).list())
		unique := s.whereUnique(t)
		if unique != nil {
			ref := shapeRef(unique).list()
			sh.add("connect", ref)
			sh.add("set", ref)
			sh.add("disconnect", ref)
			sh.add("delete", ref)
			sh.add("update", shapeRef(s.updateWithWhereUnique(r)).list())
		}
		sh.add("updateMany", shapeRef(s.updateManyWithWhere(t)).list())
		sh.add("deleteMany", shapeRef(s.scalarWhere(t)).list())
		if unique != nil {
			sh.add("upsert", shapeRef(s.upsertWithWhereUnique(r)).list())
		}
	})
}

func (s *synth) updateOneEnvelope(r *Field) *Shape {
	t := r.Target
	card := "OneRequired"
	if r.Nullable {
		card = "One"
	}
	name := t.Name + "Update" + card + infix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		sh.add("create", shapeRef(s.createData(t, r)))
		if unique := s.whereUnique(t); unique != nil {
			sh.add("connect", shapeRef(unique))
		}
		if r.Nullable {
			sh.add("disconnect", scalarRef(ScalarBoolean))
			sh.add("delete", scalarRef(ScalarBoolean))
		}
		sh.add("update", shapeRef(s.updateData(t, r)))
		sh.add("upsert", shapeRef(s.upsertOne(r)))
	})
}

// updateWithWhereUnique selects one related record of list relation r and
// updates it.
func (s *synth) updateWithWhereUnique(r *Field) *Shape {
	t := r.Target
	name := t.Name + "UpdateWithWhereUnique" + nestedInfix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		sh.add("where", shapeRef(s.whereUnique(t)).required())
		sh.add("data", shapeRef(s.updateData(t, r)).required())
	})
}

// upsertWithWhereUnique updates the selected related record of list
// relation r, or creates it.
func (s *synth) upsertWithWhereUnique(r *Field) *Shape {
	t := r.Target
	name := t.Name + "UpsertWithWhereUnique" + nestedInfix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		sh.add("where", shapeRef(s.whereUnique(t)).required())
		sh.add("update", shapeRef(s.updateData(t, r)).required())
		sh.add("create", shapeRef(s.createData(t, r)).required())
	})
}

// upsertOne updates the record of single relation r, or creates it.
func (s *synth) upsertOne(r *Field) *Shape {
	t := r.Target
	name := t.Name + "Upsert" + nestedInfix(r) + "Input"
	return s.reg.memo(ShapeInput, name, t, func(sh *Shape) {
		sh.add("update", shapeRef(s.updateData(t, r)).required())
		sh.add("create", shapeRef(s.createData(t, r)).required())
	})
}

// updateManyWithWhere batch-updates the related records of t matching a
// scalar filter. It does not depend on the relation it is nested under.
func (s *synth) updateManyWithWhere(t *Type) *Shape {
	return s.reg.memo(ShapeInput, t.Name+"UpdateManyWithWhereNestedInput", t, func(sh *Shape) {
		sh.add("where", shapeRef(s.scalarWhere(t)).required())
		sh.add("data", shapeRef(s.updateManyData(t)).required())
	})
}

// omitted reports if f must be left out of a shape nested under via, that
// is, f is the back-reference of via.
func omitted(f, via *Field) bool {
	return via != nil && via.Reciprocal(f)
}

// infix returns the "Without{BackReference}" part of nested names, or an
// empty string for unidirectional and top-level shapes.
func infix(via *Field) string {
	if via == nil {
		return ""
	}
	return via.without()
}

// nestedInfix is like infix, but names the shapes of unidirectional
// relations "Nested" to keep them apart from the top-level ones.
func nestedInfix(via *Field) string {
	if in := infix(via); in != "" {
		return in
	}
	return "Nested"
}

func listIf(ref TypeRef, list bool) TypeRef {
	if list {
		return ref.list()
	}
	return ref
}
