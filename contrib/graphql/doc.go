// Package graphql renders the API synthesized by crudgen as a GraphQL SDL
// document.
//
// The document mirrors the generated TypeGraphQL classes: it declares the
// custom scalars in use, the schema enums and OrderByArg, one object type per
// entity (value fields followed by relation fields), the output and input
// objects, and the Query and Mutation root types. The rendered document is
// validated with gqlparser before it is added to the tree.
//
// # Usage
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithSchemaPath("schema.graphql"),
//	    graphql.WithConfigPath("./gqlgen.yml"),
//	    graphql.WithModelPackage("example.com/app/models"),
//	)
//	if err != nil {
//	    log.Fatalf("creating graphql extension: %v", err)
//	}
//	if err := compiler.Generate("./schema.yaml", cfg, compiler.Extensions(ex)); err != nil {
//	    log.Fatalf("running crudgen: %v", err)
//	}
//
// # gqlgen
//
// When a gqlgen.yml output is configured, the extension also emits a gqlgen
// configuration binding the custom scalars to gqlgen types and marking every
// relation field as resolved. The base configuration read by WithConfigPath
// is never written back; the result is an artifact of the tree.
//
// Both artifacts are placed at the root of the output directory and are not
// re-exported by the index modules.
package graphql
