package gen

import (
	"github.com/syssam/crudgen/compiler/load"
)

// The following types and their exported methods are used by the
// synthesizers and the emitters to generate the assets.
type (
	// Type represents one entity in the graph, its fields and the relations
	// it holds to other entities.
	Type struct {
		def *load.Entity
		// Name holds the PascalCase name of the entity.
		Name string
		// Fields holds all fields of the entity in declaration order.
		Fields []*Field
		fields map[string]*Field
		// IDs holds the identifier fields of the entity. Empty for
		// entities that cannot be addressed by a unique key.
		IDs []*Field
		// Comment holds the documentation of the entity.
		Comment string
	}

	// Field holds the information of an entity field. A field is either
	// scalar, enum-valued or a relation to another entity.
	Field struct {
		def *load.Field
		// Owner is the entity that declares the field.
		Owner *Type
		// Name is the name of the field as declared in the schema.
		Name string
		// Kind tells how the field type was resolved.
		Kind FieldKind
		// Scalar holds the scalar type of scalar fields.
		Scalar Scalar
		// Enum holds the enumeration of enum-valued fields.
		Enum *Enum
		// Target holds the entity a relation field points to.
		Target *Type
		// Ref points to the back-reference of a relation field, which is the
		// field on Target pointing back to Owner. Nil for unidirectional
		// relations.
		Ref *Field
		// Nullable indicates that the field may hold no value.
		Nullable bool
		// List indicates a to-many relation.
		List bool
		// ID indicates that the field is (part of) the entity identifier.
		ID bool
		// Default indicates the field has a default value, which makes it
		// optional on create.
		Default bool
		// Comment holds the documentation of the field.
		Comment string
	}
)

// FieldKind describes how a field type was resolved.
type FieldKind uint8

// Field kinds.
const (
	KindInvalid FieldKind = iota
	KindScalar
	KindEnum
	KindRelation
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindRelation:
		return "relation"
	default:
		return "invalid"
	}
}

// newType declares an entity. Field types are resolved in a second pass
// once every entity and enum of the schema is known.
func newType(e *load.Entity) *Type {
	return &Type{
		def:     e,
		Name:    pascal(e.Name),
		Comment: e.Comment,
		Fields:  make([]*Field, 0, len(e.Fields)),
		fields:  make(map[string]*Field, len(e.Fields)),
	}
}

// =============================================================================
// Type methods
// =============================================================================

// Field returns the field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// HasID reports if the entity has identifier fields, that is, it can be
// addressed by a unique key.
func (t *Type) HasID() bool { return len(t.IDs) > 0 }

// ScalarFields returns the scalar fields of the entity.
func (t *Type) ScalarFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Kind == KindScalar })
}

// EnumFields returns the enum-valued fields of the entity.
func (t *Type) EnumFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Kind == KindEnum })
}

// RelationFields returns the relation fields of the entity.
func (t *Type) RelationFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Kind == KindRelation })
}

// ValueFields returns the scalar and enum-valued fields in declaration
// order, i.e. the fields stored on the entity record itself.
func (t *Type) ValueFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Kind != KindRelation })
}

// HasRelations reports if the entity declares relation fields.
func (t *Type) HasRelations() bool {
	for _, f := range t.Fields {
		if f.IsRelation() {
			return true
		}
	}
	return false
}

// FieldsBy returns the fields that satisfy the given predicate.
func (t *Type) FieldsBy(fn func(*Field) bool) []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if fn(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Label returns the camelCase name of the entity, used for single-entity
// query names. For example, "user" for "User".
func (t *Type) Label() string { return camel(t.Name) }

// PluralLabel returns the camelCase plural name of the entity, used for
// list query names. For example, "users" for "User".
func (t *Type) PluralLabel() string { return camel(plural(t.Name)) }
