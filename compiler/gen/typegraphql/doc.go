// Package typegraphql implements the TypeGraphQL emitter.
//
// The emitter renders the constructs planned by the compiler into TypeScript
// modules decorated for TypeGraphQL: enums are registered with
// registerEnumType, entity records become ObjectType classes, inputs and
// arguments InputType and ArgsType classes, and resolvers delegate to a
// Prisma-style client found on the request context.
//
// Generated output structure:
//
//	{output}/
//	├── enums/
//	│   ├── {Enum}.ts
//	│   └── OrderByArg.ts
//	├── models/
//	│   └── {Entity}.ts
//	└── resolvers/
//	    ├── crud/{Entity}/
//	    │   ├── {Entity}CrudResolver.ts
//	    │   ├── {Kind}{Entity}Resolver.ts
//	    │   └── args/{Kind}{Entity}Args.ts
//	    ├── inputs/{Input}.ts
//	    ├── outputs/{Output}.ts
//	    └── relations/{Entity}/
//	        ├── {Entity}RelationsResolver.ts
//	        └── args/{Entity}{Field}Args.ts
//
// Every directory also holds an index module re-exporting its content.
package typegraphql
