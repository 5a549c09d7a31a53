package graphql

// This file contains helper functions converting the synthesized type
// references into GraphQL AST types.

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/crudgen/compiler/gen"
)

// typeOf returns the AST type of a reference. List elements are always
// non-null.
func typeOf(r gen.TypeRef) *ast.Type {
	name := r.Name()
	if !r.List {
		if r.Required {
			return ast.NonNullNamedType(name, nil)
		}
		return ast.NamedType(name, nil)
	}
	elem := ast.NonNullNamedType(name, nil)
	if r.Required {
		return ast.NonNullListType(elem, nil)
	}
	return ast.ListType(elem, nil)
}

// fieldType returns the AST type of an entity value field.
func fieldType(f *gen.Field) *ast.Type {
	name := f.Scalar.String()
	if f.IsEnum() {
		name = f.Enum.Name
	}
	if f.Nullable {
		return ast.NamedType(name, nil)
	}
	return ast.NonNullNamedType(name, nil)
}

// usedScalars returns the custom scalars the document has to declare.
func usedScalars(api *gen.API) []gen.Scalar {
	var scalars []gen.Scalar
	for _, s := range api.Graph.Scalars() {
		if s.Custom() {
			scalars = append(scalars, s)
		}
	}
	return scalars
}

// goScalars maps custom scalars to the gqlgen types implementing them.
var goScalars = map[gen.Scalar]string{
	gen.ScalarDateTime: "github.com/99designs/gqlgen/graphql.Time",
	gen.ScalarJSON:     "github.com/99designs/gqlgen/graphql.Map",
	gen.ScalarBigInt:   "github.com/99designs/gqlgen/graphql.Int64",
	gen.ScalarDecimal:  "github.com/99designs/gqlgen/graphql.String",
	gen.ScalarBytes:    "github.com/99designs/gqlgen/graphql.String",
}
