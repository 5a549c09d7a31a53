package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/load"
)

// blogSchema returns the Color/User/Post schema.
func blogSchema() *load.Schema {
	return &load.Schema{
		Enums: []*load.Enum{
			{Name: "Color", Values: []string{"RED", "GREEN", "BLUE"}},
		},
		Entities: []*load.Entity{
			{
				Name: "User",
				Fields: []*load.Field{
					{Name: "id", Type: "Int", ID: true, Default: true},
					{Name: "name", Type: "String", Nullable: true},
					{Name: "posts", Type: "Post", List: true},
				},
			},
			{
				Name: "Post",
				Fields: []*load.Field{
					{Name: "uuid", Type: "String", ID: true, Default: true},
					{Name: "content", Type: "String"},
					{Name: "author", Type: "User"},
					{Name: "color", Type: "Color"},
				},
			},
		},
	}
}

func mustGraph(t testing.TB, s *load.Schema, opts ...Option) *Graph {
	t.Helper()
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	g, err := NewGraph(cfg, s)
	require.NoError(t, err)
	return g
}

func entity(name string, fields ...*load.Field) *load.Entity {
	return &load.Entity{Name: name, Fields: fields}
}

func TestNewGraph(t *testing.T) {
	g := mustGraph(t, blogSchema())

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Enums, 1)
	user, ok := g.Type("User")
	require.True(t, ok)
	post, ok := g.Type("Post")
	require.True(t, ok)
	color, ok := g.Enum("Color")
	require.True(t, ok)
	_, ok = g.Type("Comment")
	assert.False(t, ok)

	posts, _ := user.Field("posts")
	author, _ := post.Field("author")
	assert.Same(t, post, posts.Target)
	assert.Same(t, user, author.Target)
	assert.Same(t, author, posts.Ref, "relation fields are paired")
	assert.Same(t, posts, author.Ref)

	c, _ := post.Field("color")
	assert.Equal(t, KindEnum, c.Kind)
	assert.Same(t, color, c.Enum)

	assert.Equal(t, []Scalar{ScalarString, ScalarInt}, g.Scalars())
}

func TestNewGraphForwardReference(t *testing.T) {
	s := &load.Schema{
		Entities: []*load.Entity{
			entity("post", &load.Field{Name: "author", Type: "user"}),
			entity("user", &load.Field{Name: "id", Type: "Int", ID: true}),
		},
	}
	g := mustGraph(t, s)
	post, ok := g.Type("Post")
	require.True(t, ok, "names are PascalCased")
	author, _ := post.Field("author")
	assert.Equal(t, "User", author.Target.Name)
	assert.Nil(t, author.Ref, "unidirectional")
}

func TestNewGraphErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *load.Schema
		check  func(error) bool
		msg    string
	}{
		{
			name:   "unknown type",
			schema: &load.Schema{Entities: []*load.Entity{entity("Post", &load.Field{Name: "author", Type: "Usr"})}},
			check:  IsResolutionError,
			msg:    `"Usr"`,
		},
		{
			name:   "unknown enum",
			schema: &load.Schema{Entities: []*load.Entity{entity("Post", &load.Field{Name: "color", Type: "Colour"})}},
			check:  IsResolutionError,
		},
		{
			name:   "missing type",
			schema: &load.Schema{Entities: []*load.Entity{entity("Post", &load.Field{Name: "title"})}},
			check:  IsSchemaError,
			msg:    "missing field type",
		},
		{
			name: "duplicate entity",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User"), entity("user"),
			}},
			check: IsSchemaError,
			msg:   "collides",
		},
		{
			name: "enum and entity share a name",
			schema: &load.Schema{
				Enums:    []*load.Enum{{Name: "Status", Values: []string{"A"}}},
				Entities: []*load.Entity{entity("Status")},
			},
			check: IsSchemaError,
			msg:   "collides",
		},
		{
			name:   "reserved name",
			schema: &load.Schema{Entities: []*load.Entity{entity("OrderByArg")}},
			check:  IsSchemaError,
			msg:    "reserved",
		},
		{
			name:   "reserved suffix",
			schema: &load.Schema{Entities: []*load.Entity{entity("UserInput")}},
			check:  IsSchemaError,
		},
		{
			name:   "scalar name",
			schema: &load.Schema{Entities: []*load.Entity{entity("DateTime")}},
			check:  IsSchemaError,
			msg:    "scalar",
		},
		{
			name:   "aggregate collision",
			schema: &load.Schema{Entities: []*load.Entity{entity("User"), entity("AggregateUser")}},
			check:  IsSchemaError,
			msg:    "aggregate",
		},
		{
			name: "scalar-where input collision",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("Post", &load.Field{Name: "id", Type: "Int", ID: true}),
				entity("PostScalar", &load.Field{Name: "id", Type: "Int", ID: true}),
			}},
			check: IsSchemaError,
			msg:   "PostScalarWhereInput",
		},
		{
			name: "nested input collision",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User",
					&load.Field{Name: "id", Type: "Int", ID: true},
					&load.Field{Name: "create", Type: "Post", List: true},
				),
				entity("Post",
					&load.Field{Name: "id", Type: "Int", ID: true},
					&load.Field{Name: "owner", Type: "User"},
				),
				entity("UserUpsertWithout", &load.Field{Name: "id", Type: "Int", ID: true}),
			}},
			check: IsSchemaError,
			msg:   "collides",
		},
		{
			name: "plural method collision",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User", &load.Field{Name: "id", Type: "Int", ID: true}),
				entity("Users", &load.Field{Name: "id", Type: "Int", ID: true}),
			}},
			check: IsSchemaError,
			msg:   `method "users"`,
		},
		{
			name: "operation method collision",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User", &load.Field{Name: "id", Type: "Int", ID: true}),
				entity("CreateUser", &load.Field{Name: "id", Type: "Int", ID: true}),
			}},
			check: IsSchemaError,
			msg:   `method "createUser"`,
		},
		{
			name: "case-insensitive entity names",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User"), entity("USER"),
			}},
			check: IsSchemaError,
			msg:   "collides",
		},
		{
			name:   "index file name",
			schema: &load.Schema{Entities: []*load.Entity{entity("Index")}},
			check:  IsSchemaError,
			msg:    "index file",
		},
		{
			name:   "nullable filter name",
			schema: &load.Schema{Enums: []*load.Enum{{Name: "NullableString", Values: []string{"A"}}}},
			check:  IsSchemaError,
			msg:    "nullable filter",
		},
		{
			name:   "empty enum",
			schema: &load.Schema{Enums: []*load.Enum{{Name: "Color"}}},
			check:  IsSchemaError,
			msg:    "no values",
		},
		{
			name:   "duplicate enum value",
			schema: &load.Schema{Enums: []*load.Enum{{Name: "Color", Values: []string{"RED", "RED"}}}},
			check:  IsSchemaError,
			msg:    "duplicate enum value",
		},
		{
			name: "duplicate field",
			schema: &load.Schema{Entities: []*load.Entity{entity("User",
				&load.Field{Name: "name", Type: "String"},
				&load.Field{Name: "name", Type: "String"},
			)}},
			check: IsSchemaError,
			msg:   "duplicate field",
		},
		{
			name: "fields colliding in generated names",
			schema: &load.Schema{Entities: []*load.Entity{entity("User",
				&load.Field{Name: "user_name", Type: "String"},
				&load.Field{Name: "userName", Type: "String"},
			)}},
			check: IsSchemaError,
			msg:   "collides",
		},
		{
			name:   "reserved field name",
			schema: &load.Schema{Entities: []*load.Entity{entity("User", &load.Field{Name: "AND", Type: "String"})}},
			check:  IsSchemaError,
			msg:    "reserved",
		},
		{
			name:   "list of scalars",
			schema: &load.Schema{Entities: []*load.Entity{entity("User", &load.Field{Name: "tags", Type: "String", List: true})}},
			check:  IsSchemaError,
			msg:    "list fields must be relations",
		},
		{
			name:   "nullable list",
			schema: &load.Schema{Entities: []*load.Entity{entity("User", &load.Field{Name: "friends", Type: "User", List: true, Nullable: true})}},
			check:  IsSchemaError,
			msg:    "cannot be nullable",
		},
		{
			name:   "nullable identifier",
			schema: &load.Schema{Entities: []*load.Entity{entity("User", &load.Field{Name: "id", Type: "Int", ID: true, Nullable: true})}},
			check:  IsSchemaError,
		},
		{
			name:   "ref on scalar",
			schema: &load.Schema{Entities: []*load.Entity{entity("User", &load.Field{Name: "name", Type: "String", Ref: "x"})}},
			check:  IsSchemaError,
			msg:    "ref is only allowed",
		},
		{
			name: "missing back-reference",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User", &load.Field{Name: "posts", Type: "Post", List: true, Ref: "writer"}),
				entity("Post", &load.Field{Name: "author", Type: "User"}),
			}},
			check: IsSchemaError,
			msg:   `back-reference "writer" not found`,
		},
		{
			name: "ambiguous back-reference",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User",
					&load.Field{Name: "posts", Type: "Post", List: true},
					&load.Field{Name: "drafts", Type: "Post", List: true},
				),
				entity("Post",
					&load.Field{Name: "author", Type: "User"},
					&load.Field{Name: "editor", Type: "User"},
				),
			}},
			check: IsSchemaError,
			msg:   "ambiguous",
		},
		{
			name: "ambiguous self relation",
			schema: &load.Schema{Entities: []*load.Entity{
				entity("User",
					&load.Field{Name: "a", Type: "User"},
					&load.Field{Name: "b", Type: "User"},
					&load.Field{Name: "c", Type: "User"},
				),
			}},
			check: IsSchemaError,
			msg:   "ambiguous self relation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(&Config{}, tt.schema)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}

	t.Run("missing schema", func(t *testing.T) {
		_, err := NewGraph(&Config{}, nil)
		assert.True(t, IsConfigError(err))
	})
}

func TestNewGraphPairing(t *testing.T) {
	t.Run("explicit refs", func(t *testing.T) {
		g := mustGraph(t, &load.Schema{Entities: []*load.Entity{
			entity("User",
				&load.Field{Name: "id", Type: "Int", ID: true},
				&load.Field{Name: "posts", Type: "Post", List: true, Ref: "author"},
				&load.Field{Name: "reviews", Type: "Post", List: true, Ref: "reviewer"},
			),
			entity("Post",
				&load.Field{Name: "id", Type: "Int", ID: true},
				&load.Field{Name: "author", Type: "User"},
				&load.Field{Name: "reviewer", Type: "User", Nullable: true},
			),
		}})
		user, _ := g.Type("User")
		post, _ := g.Type("Post")
		posts, _ := user.Field("posts")
		reviews, _ := user.Field("reviews")
		author, _ := post.Field("author")
		reviewer, _ := post.Field("reviewer")
		assert.Same(t, author, posts.Ref)
		assert.Same(t, posts, author.Ref)
		assert.Same(t, reviewer, reviews.Ref)
		assert.Same(t, reviews, reviewer.Ref)
	})

	t.Run("self relation pairs two fields", func(t *testing.T) {
		g := mustGraph(t, &load.Schema{Entities: []*load.Entity{
			entity("Category",
				&load.Field{Name: "id", Type: "Int", ID: true},
				&load.Field{Name: "parent", Type: "Category", Nullable: true},
				&load.Field{Name: "children", Type: "Category", List: true},
			),
		}})
		c, _ := g.Type("Category")
		parent, _ := c.Field("parent")
		children, _ := c.Field("children")
		assert.Same(t, children, parent.Ref)
		assert.Same(t, parent, children.Ref)
		assert.True(t, parent.Rel().Self())
	})

	t.Run("single self relation is unidirectional", func(t *testing.T) {
		g := mustGraph(t, &load.Schema{Entities: []*load.Entity{
			entity("Node", &load.Field{Name: "next", Type: "Node", Nullable: true}),
		}})
		n, _ := g.Type("Node")
		next, _ := n.Field("next")
		assert.Nil(t, next.Ref)
	})
}

func TestValidSchemaName(t *testing.T) {
	for _, name := range []string{"User", "Post", "Category"} {
		assert.NoError(t, ValidSchemaName(name), name)
	}
	for _, name := range []string{"", "1User", "Query", "Mutation", "BatchPayload", "UserArgs", "PostFilter", "Int", "Json", "NullableInt"} {
		assert.Error(t, ValidSchemaName(name), name)
	}
}

func TestNewGraphNames(t *testing.T) {
	t.Run("distinct names", func(t *testing.T) {
		mustGraph(t, &load.Schema{Entities: []*load.Entity{
			entity("Post", &load.Field{Name: "id", Type: "Int", ID: true}),
			entity("PostScalars", &load.Field{Name: "id", Type: "Int", ID: true}),
			entity("PostTag", &load.Field{Name: "id", Type: "Int", ID: true}),
		}})
	})

	t.Run("index name follows the config", func(t *testing.T) {
		mustGraph(t, &load.Schema{Entities: []*load.Entity{entity("Index")}}, WithIndexName("barrel"))
		_, err := NewGraph(&Config{IndexName: "barrel"}, &load.Schema{Entities: []*load.Entity{entity("Barrel")}})
		assert.True(t, IsSchemaError(err))
	})

	t.Run("aggregate methods only when enabled", func(t *testing.T) {
		s := &load.Schema{Entities: []*load.Entity{
			entity("User", &load.Field{Name: "id", Type: "Int", ID: true}),
			entity("Person", &load.Field{Name: "id", Type: "Int", ID: true}),
		}}
		g := mustGraph(t, s)
		u, _ := g.Type("User")
		assert.Contains(t, g.methods(u), "aggregateUser")
		g = mustGraph(t, s, WithoutFeatures(FeatureAggregates.Name))
		assert.NotContains(t, g.methods(u), "aggregateUser")
	})

	t.Run("suffixes cover the synthesized inputs", func(t *testing.T) {
		for _, opts := range [][]Option{nil, {WithFeatures(FeatureNullableFilters)}} {
			api := mustAPI(t, cyclicSchema(), opts...)
			for _, in := range api.Inputs {
				if in.Type == nil {
					continue
				}
				suffix, ok := strings.CutPrefix(in.Name, in.Type.Name)
				require.True(t, ok, in.Name)
				assert.Contains(t, inputSuffixes(in.Type), suffix, in.Name)
			}
		}
	})
}

// cyclicSchema mixes bidirectional, self and unidirectional relations,
// with and without identifier.
func cyclicSchema() *load.Schema {
	s := blogSchema()
	s.Entities = append(s.Entities,
		entity("Category",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "parent", Type: "Category", Nullable: true},
			&load.Field{Name: "children", Type: "Category", List: true},
			&load.Field{Name: "featured", Type: "Post", Nullable: true},
			&load.Field{Name: "pinned", Type: "Post", List: true},
		),
		entity("Log",
			&load.Field{Name: "message", Type: "String", Nullable: true},
			&load.Field{Name: "user", Type: "User"},
		),
	)
	return s
}
