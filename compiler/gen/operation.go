package gen

// OpKind is the kind of a CRUD operation.
type OpKind uint8

// Operation kinds in generation order.
const (
	OpCreateOne OpKind = iota + 1
	OpDeleteOne
	OpDeleteMany
	OpFindOne
	OpFindMany
	OpUpdateOne
	OpUpdateMany
	OpUpsertOne
)

// OpKinds lists all operation kinds in generation order.
var OpKinds = []OpKind{
	OpCreateOne,
	OpDeleteOne,
	OpDeleteMany,
	OpFindOne,
	OpFindMany,
	OpUpdateOne,
	OpUpdateMany,
	OpUpsertOne,
}

var opKindNames = [...]string{
	OpCreateOne:  "CreateOne",
	OpDeleteOne:  "DeleteOne",
	OpDeleteMany: "DeleteMany",
	OpFindOne:    "FindOne",
	OpFindMany:   "FindMany",
	OpUpdateOne:  "UpdateOne",
	OpUpdateMany: "UpdateMany",
	OpUpsertOne:  "UpsertOne",
}

// String returns the kind name used in artifact names, e.g. "FindOne".
func (k OpKind) String() string {
	if k > 0 && int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// Unique reports if the operation addresses a single record by its
// identifier. Such operations are omitted for entities without identifier.
func (k OpKind) Unique() bool {
	switch k {
	case OpDeleteOne, OpFindOne, OpUpdateOne, OpUpsertOne:
		return true
	default:
		return false
	}
}

// Query reports if the operation is read-only.
func (k OpKind) Query() bool { return k == OpFindOne || k == OpFindMany }

// Batch reports if the operation is a mutation over many records, which
// returns a BatchPayload.
func (k OpKind) Batch() bool { return k == OpDeleteMany || k == OpUpdateMany }

// Operation is one CRUD operation of an entity.
type Operation struct {
	Kind OpKind
	Type *Type
	// Args holds the argument shape of the operation.
	Args *Shape
	// Method is the name of the operation in the generated API, e.g.
	// "createUser" or "users".
	Method string
	// Returns is the result type of the operation.
	Returns TypeRef
}

// Name returns the operation name used in artifact names, e.g. "FindOneUser".
func (o *Operation) Name() string { return o.Kind.String() + o.Type.Name }

// Aggregate is the aggregate query of an entity.
type Aggregate struct {
	Type *Type
	// Method is the name of the query, e.g. "aggregateUser".
	Method string
	// Output holds the Aggregate{Entity} output shape.
	Output *Shape
}

// CrudResolver groups the operations of one entity.
type CrudResolver struct {
	Type       *Type
	Operations []*Operation
	// Aggregate is nil if aggregates are disabled.
	Aggregate *Aggregate
}

// Name returns the resolver name, e.g. "UserCrudResolver".
func (r *CrudResolver) Name() string { return r.Type.Name + "CrudResolver" }

// Operation returns the operation of the given kind.
func (r *CrudResolver) Operation(k OpKind) (*Operation, bool) {
	for _, op := range r.Operations {
		if op.Kind == k {
			return op, true
		}
	}
	return nil, false
}

// operations derives the operations of t.
func (s *synth) operations(t *Type) *CrudResolver {
	r := &CrudResolver{Type: t}
	for _, k := range t.OpKinds() {
		r.Operations = append(r.Operations, s.operation(t, k))
	}
	if s.aggregates {
		r.Aggregate = &Aggregate{
			Type:   t,
			Method: aggregateMethod(t),
			Output: s.aggregateOutput(t),
		}
	}
	return r
}

func (s *synth) operation(t *Type, k OpKind) *Operation {
	op := &Operation{Kind: k, Type: t, Method: method(t, k)}
	op.Args = s.reg.memoIn("crud/"+t.Name, ShapeArgs, op.Name()+"Args", t, func(sh *Shape) {
		switch k {
		case OpCreateOne:
			sh.add("data", shapeRef(s.createData(t, nil)).required())
		case OpFindOne, OpDeleteOne:
			sh.add("where", shapeRef(s.whereUnique(t)).required())
		case OpUpdateOne:
			sh.add("data", shapeRef(s.updateData(t, nil)).required())
			sh.add("where", shapeRef(s.whereUnique(t)).required())
		case OpUpsertOne:
			sh.add("where", shapeRef(s.whereUnique(t)).required())
			sh.add("create", shapeRef(s.createData(t, nil)).required())
			sh.add("update", shapeRef(s.updateData(t, nil)).required())
		case OpFindMany, OpDeleteMany:
			s.listArgs(sh, t)
		case OpUpdateMany:
			sh.add("data", shapeRef(s.updateManyMutation(t)).required())
			s.listArgs(sh, t)
		}
	})
	switch {
	case k.Batch():
		op.Returns = shapeRef(s.batchPayload()).required()
	case k == OpFindMany:
		op.Returns = modelRef(t).list().required()
	case k == OpCreateOne || k == OpUpsertOne:
		op.Returns = modelRef(t).required()
	default:
		op.Returns = modelRef(t)
	}
	return op
}

// listArgs adds the filtering, ordering and pagination arguments of the
// operations over many records to sh. Pagination arguments are opaque scalars.
func (s *synth) listArgs(sh *Shape, t *Type) {
	sh.add("where", shapeRef(s.where(t)))
	if order := s.orderBy(t); order != nil {
		sh.add("orderBy", shapeRef(order).list())
	}
	sh.add("skip", scalarRef(ScalarInt))
	sh.add("take", scalarRef(ScalarInt))
	sh.add("cursor", scalarRef(ScalarString))
}

// batchPayload returns the result of batch mutations.
func (s *synth) batchPayload() *Shape {
	return s.reg.memo(ShapeOutput, "BatchPayload", nil, func(sh *Shape) {
		sh.add("count", scalarRef(ScalarInt).required())
	})
}

// aggregateOutput returns the Aggregate{Entity} output.
func (s *synth) aggregateOutput(t *Type) *Shape {
	return s.reg.memo(ShapeOutput, "Aggregate"+t.Name, t, func(sh *Shape) {
		sh.add("count", scalarRef(ScalarInt).required())
	})
}

// OpKinds returns the operation kinds generated for t. Entities without
// identifier have no operations over a single record.
func (t *Type) OpKinds() []OpKind {
	kinds := make([]OpKind, 0, len(OpKinds))
	for _, k := range OpKinds {
		if k.Unique() && !t.HasID() {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

func aggregateMethod(t *Type) string { return "aggregate" + t.Name }

// method returns the API name of the operation.
func method(t *Type, k OpKind) string {
	switch k {
	case OpFindOne:
		return t.Label()
	case OpFindMany:
		return t.PluralLabel()
	case OpCreateOne:
		return "create" + t.Name
	case OpDeleteOne:
		return "delete" + t.Name
	case OpDeleteMany:
		return "deleteMany" + t.Name
	case OpUpdateOne:
		return "update" + t.Name
	case OpUpdateMany:
		return "updateMany" + t.Name
	case OpUpsertOne:
		return "upsert" + t.Name
	default:
		return ""
	}
}
