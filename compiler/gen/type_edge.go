package gen

// Rel is a relation type of a relation field.
type Rel int

// Relation types.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one / has one.
	O2M            // One to many / has many.
	M2O            // Many to one (inverse of O2M).
	M2M            // Many to many.
)

// String returns the relation name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2O:
		s = "O2O"
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	}
	return s
}

// Relation describes a relation field together with its back-reference.
type Relation struct {
	// Type holds the cardinality of the relation.
	Type Rel
	// Forward is the field the relation was derived from.
	Forward *Field
	// Back is the back-reference of Forward. Nil for unidirectional
	// relations.
	Back *Field
}

// Bidi reports if the relation is navigable from both sides.
func (r Relation) Bidi() bool { return r.Back != nil }

// Self reports if the relation points back to the entity declaring it.
func (r Relation) Self() bool { return r.Forward.Target == r.Forward.Owner }

// =============================================================================
// Relation field methods
// =============================================================================

// Rel returns the relation of a relation field. The cardinality is derived
// from the list flags of both sides. A unidirectional list is treated as
// O2M and a unidirectional single relation as M2O.
func (f *Field) Rel() Relation {
	r := Relation{Forward: f, Back: f.Ref}
	if !f.IsRelation() {
		return r
	}
	switch back := f.Ref; {
	case f.List && back != nil && back.List:
		r.Type = M2M
	case f.List:
		r.Type = O2M
	case back != nil && !back.List:
		r.Type = O2O
	default:
		r.Type = M2O
	}
	return r
}

// M2M indicates if this relation field is M2M.
func (f *Field) M2M() bool { return f.Rel().Type == M2M }

// M2O indicates if this relation field is M2O.
func (f *Field) M2O() bool { return f.Rel().Type == M2O }

// O2M indicates if this relation field is O2M.
func (f *Field) O2M() bool { return f.Rel().Type == O2M }

// O2O indicates if this relation field is O2O.
func (f *Field) O2O() bool { return f.Rel().Type == O2O }

// without returns the infix used in nested shape names when arriving at the
// target of f, e.g. "WithoutAuthor". Empty for unidirectional relations.
func (f *Field) without() string {
	if f.Ref == nil {
		return ""
	}
	return "Without" + f.Ref.StructField()
}
