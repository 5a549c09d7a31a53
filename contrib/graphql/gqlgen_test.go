package graphql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGQLGenConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadGQLGenConfig(filepath.Join(t.TempDir(), "gqlgen.yml"))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Models)
		assert.Empty(t, cfg.SchemaFilename)
	})

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gqlgen.yml")
		require.NoError(t, os.WriteFile(path, []byte(`schema:
  - schema.graphql
  - extra.graphql
exec:
  filename: generated/exec.go
  package: generated
resolver:
  layout: follow-schema
  dir: resolvers
autobind:
  - example.com/app/models
models:
  ID:
    model:
      - github.com/99designs/gqlgen/graphql.ID
      - github.com/99designs/gqlgen/graphql.Int
  User:
    model: example.com/app/models.User
    fields:
      posts:
        resolver: true
      name:
        fieldName: FullName
`), 0o644))
		cfg, err := LoadGQLGenConfig(path)
		require.NoError(t, err)
		assert.Equal(t, oneOrMany{"schema.graphql", "extra.graphql"}, cfg.SchemaFilename)
		assert.Equal(t, map[string]any{"filename": "generated/exec.go", "package": "generated"}, cfg.Rest["exec"])
		assert.Contains(t, cfg.Rest, "resolver")
		assert.Len(t, cfg.Models["ID"].Model, 2)
		assert.Equal(t, oneOrMany{"example.com/app/models.User"}, cfg.Models["User"].Model)
		assert.True(t, cfg.Models["User"].Fields["posts"].Resolver)
		assert.Equal(t, "FullName", cfg.Models["User"].Fields["name"].Rest["fieldName"])
	})

	t.Run("unmodeled sections survive", func(t *testing.T) {
		src := "schema: api.graphql\nexec:\n  filename: generated/exec.go\nskip_validation: true\n"
		cfg, err := ParseGQLGenConfig([]byte(src))
		require.NoError(t, err)
		cfg.BindAPI(synthesize(t, blogSchema()), "api.graphql", "")
		out, err := cfg.Marshal()
		require.NoError(t, err)
		assert.Contains(t, out, "exec:\n    filename: generated/exec.go\n")
		assert.Contains(t, out, "skip_validation: true\n")
		assert.Contains(t, out, "schema: api.graphql\n")
	})

	t.Run("unreadable path", func(t *testing.T) {
		_, err := LoadGQLGenConfig(t.TempDir())
		require.Error(t, err)
	})

	t.Run("invalid list", func(t *testing.T) {
		_, err := ParseGQLGenConfig([]byte("schema:\n  key: value\n"))
		require.Error(t, err)
	})
}

func TestGQLGenConfigMutators(t *testing.T) {
	cfg := &GQLGenConfig{}
	cfg.AddSchemaPath("schema.graphql")
	cfg.AddSchemaPath("schema.graphql")
	cfg.AddAutobind("example.com/app/models")
	cfg.AddAutobind("example.com/app/models")
	cfg.SetModel("DateTime", "github.com/99designs/gqlgen/graphql.Time")
	cfg.SetModel("DateTime", "github.com/99designs/gqlgen/graphql.Time")
	cfg.SetResolver("User", "posts")

	assert.Equal(t, oneOrMany{"schema.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, []string{"example.com/app/models"}, cfg.Autobind)
	assert.Len(t, cfg.Models["DateTime"].Model, 1)
	assert.True(t, cfg.Models["User"].Fields["posts"].Resolver)
}

func TestGQLGenConfigMarshal(t *testing.T) {
	cfg := &GQLGenConfig{}
	cfg.AddSchemaPath("schema.graphql")
	cfg.SetModel("Json", "github.com/99designs/gqlgen/graphql.Map")
	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, out, "schema: schema.graphql\n", "single entries are scalars")
	assert.NotContains(t, out, "exec:", "empty sections are omitted")

	back, err := ParseGQLGenConfig([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, cfg.SchemaFilename, back.SchemaFilename)
	assert.Equal(t, cfg.Models["Json"].Model, back.Models["Json"].Model)
}

func TestGQLGenConfigClone(t *testing.T) {
	assert.NotNil(t, (*GQLGenConfig)(nil).clone().Models)

	base := &GQLGenConfig{Autobind: []string{"a"}, Rest: map[string]any{"skip_validation": true}}
	base.SetResolver("User", "posts")
	cp := base.clone()
	cp.AddAutobind("b")
	cp.SetResolver("User", "groups")
	cp.SetModel("User", "m")
	cp.Rest["skip_validation"] = false

	assert.Equal(t, []string{"a"}, base.Autobind)
	assert.Len(t, base.Models["User"].Fields, 1)
	assert.Empty(t, base.Models["User"].Model)
	assert.Equal(t, true, base.Rest["skip_validation"])
}

func TestBindAPI(t *testing.T) {
	api := synthesize(t, blogSchema())
	cfg := &GQLGenConfig{}
	cfg.BindAPI(api, "schema.graphql", "")

	assert.Equal(t, oneOrMany{"schema.graphql"}, cfg.SchemaFilename)
	assert.Empty(t, cfg.Autobind)
	assert.Contains(t, cfg.Models, "DateTime")
	assert.NotContains(t, cfg.Models, "Json")
	assert.True(t, cfg.Models["User"].Fields["posts"].Resolver)
	assert.True(t, cfg.Models["Post"].Fields["author"].Resolver)
}
