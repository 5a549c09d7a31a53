package gen

// =============================================================================
// Field methods
// =============================================================================

// IsScalar reports if the field holds a scalar value.
func (f *Field) IsScalar() bool { return f.Kind == KindScalar }

// IsEnum reports if the field holds an enum value.
func (f *Field) IsEnum() bool { return f.Kind == KindEnum }

// IsRelation reports if the field is a relation to another entity.
func (f *Field) IsRelation() bool { return f.Kind == KindRelation }

// TypeName returns the name of the field type: the scalar name, the enum
// name or the target entity name.
func (f *Field) TypeName() string {
	switch f.Kind {
	case KindScalar:
		return f.Scalar.String()
	case KindEnum:
		return f.Enum.Name
	case KindRelation:
		return f.Target.Name
	default:
		return f.def.Type
	}
}

// StructField returns the PascalCase form of the field name, used when the
// field name is embedded into a shape name. For example, "Posts" for "posts".
func (f *Field) StructField() string { return pascal(f.Name) }

// RequiredOnCreate reports if the field must be provided on create.
// List relations and fields with a default or without a value are optional.
func (f *Field) RequiredOnCreate() bool {
	return !f.Nullable && !f.Default && !f.List
}

// Orderable reports if the field can appear in an order-by input.
func (f *Field) Orderable() bool {
	switch f.Kind {
	case KindScalar:
		return f.Scalar.Orderable()
	case KindEnum:
		return true
	default:
		return false
	}
}

// Reciprocal reports if r is the back-reference of f, i.e. traversing f and
// then r leads back to the owner of f. This is the field that nested inputs
// arriving through f must omit.
func (f *Field) Reciprocal(r *Field) bool {
	return f.Ref != nil && f.Ref == r && r.Target == f.Owner
}
