package typegraphql

import "github.com/syssam/crudgen/compiler/gen"

// scalarType describes how a scalar is declared in TypeGraphQL classes.
type scalarType struct {
	// GraphQL holds the type expression passed to the decorators.
	GraphQL string
	// TS holds the TypeScript type of the class property.
	TS string
	// Module and Ident name the import providing the scalar, if any.
	Module, Ident string
}

var scalarTypes = map[gen.Scalar]scalarType{
	gen.ScalarString:   {GraphQL: "String", TS: "string"},
	gen.ScalarInt:      {GraphQL: "TypeGraphQL.Int", TS: "number"},
	gen.ScalarFloat:    {GraphQL: "TypeGraphQL.Float", TS: "number"},
	gen.ScalarBoolean:  {GraphQL: "Boolean", TS: "boolean"},
	gen.ScalarDateTime: {GraphQL: "Date", TS: "Date"},
	gen.ScalarJSON:     {GraphQL: "GraphQLJSON", TS: "any", Module: "graphql-type-json", Ident: "GraphQLJSON"},
	gen.ScalarBigInt:   {GraphQL: "GraphQLBigInt", TS: "bigint", Module: "graphql-scalars", Ident: "GraphQLBigInt"},
	gen.ScalarDecimal:  {GraphQL: "GraphQLDecimal", TS: "string", Module: "prisma-graphql-type-decimal", Ident: "GraphQLDecimal"},
	gen.ScalarBytes:    {GraphQL: "GraphQLByte", TS: "Buffer", Module: "graphql-scalars", Ident: "GraphQLByte"},
}

func scalarOf(s gen.Scalar) scalarType {
	if st, ok := scalarTypes[s]; ok {
		return st
	}
	return scalarType{GraphQL: s.String(), TS: s.TSType()}
}
