package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/load"
)

func TestRelationResolvers(t *testing.T) {
	api := mustAPI(t, blogSchema())
	require.Len(t, api.Relations, 2)

	user := api.Relations[0]
	assert.Equal(t, "UserRelationsResolver", user.Name())
	require.Len(t, user.Fields, 1)
	posts := user.Fields[0]
	assert.Equal(t, "posts", posts.Name)
	assert.Equal(t, "[Post!]!", posts.Returns.String())
	require.NotNil(t, posts.Args)
	assert.Equal(t, "UserPostsArgs", posts.Args.Name)
	assert.Equal(t, ShapeArgs, posts.Args.Kind)
	assert.Equal(t, []string{"where", "orderBy", "skip", "take", "cursor"}, posts.Args.FieldNames())
	where, _ := posts.Args.Field("where")
	assert.Equal(t, "PostWhereInput", where.Type.String())

	post := api.Relations[1]
	assert.Equal(t, "PostRelationsResolver", post.Name())
	require.Len(t, post.Fields, 1)
	author := post.Fields[0]
	assert.Nil(t, author.Args, "single relations take no arguments")
	assert.Equal(t, "User!", author.Returns.String())
}

func TestRelationResolversNullable(t *testing.T) {
	api := mustAPI(t, &load.Schema{Entities: []*load.Entity{
		entity("User",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "profile", Type: "Profile", Nullable: true},
		),
		entity("Profile",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "bio", Type: "String"},
		),
	}})
	require.Len(t, api.Relations, 1, "entities without relations have no resolver")
	profile := api.Relations[0].Fields[0]
	assert.Equal(t, "Profile", profile.Returns.String())
}

func TestRelationResolversDisabled(t *testing.T) {
	api := mustAPI(t, blogSchema(), WithoutFeatures(FeatureRelationResolvers.Name))
	assert.Empty(t, api.Relations)
}

func TestRelationArgsScope(t *testing.T) {
	// Both entities own a "tags" list relation; the argument shapes are
	// scoped to their resolver.
	api := mustAPI(t, &load.Schema{Entities: []*load.Entity{
		entity("Post",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "tags", Type: "Tag", List: true, Ref: "posts"},
		),
		entity("Page",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "tags", Type: "Tag", List: true, Ref: "pages"},
		),
		entity("Tag",
			&load.Field{Name: "id", Type: "Int", ID: true},
			&load.Field{Name: "posts", Type: "Post", List: true},
			&load.Field{Name: "pages", Type: "Page", List: true},
		),
	}})
	require.Len(t, api.Relations, 3)
	assert.Equal(t, "PostTagsArgs", api.Relations[0].Fields[0].Args.Name)
	assert.Equal(t, "PageTagsArgs", api.Relations[1].Fields[0].Args.Name)
	assert.Equal(t, []string{"TagPostsArgs", "TagPagesArgs"}, []string{
		api.Relations[2].Fields[0].Args.Name,
		api.Relations[2].Fields[1].Args.Name,
	})
}
