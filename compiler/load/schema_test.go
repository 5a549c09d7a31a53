package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	for _, name := range []string{"testdata/blog.yaml", "testdata/blog.json"} {
		t.Run(name, func(t *testing.T) {
			s, err := ReadFile(name)
			require.NoError(t, err)

			require.Len(t, s.Enums, 1)
			assert.Equal(t, "Color", s.Enums[0].Name)
			assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, s.Enums[0].Values)

			require.Len(t, s.Entities, 2)
			user := s.Entities[0]
			require.Equal(t, "User", user.Name)
			require.Len(t, user.Fields, 3)
			assert.Equal(t, &Field{Name: "id", Type: "Int", ID: true, Default: true}, user.Fields[0])
			assert.True(t, user.Fields[1].Nullable)
			assert.True(t, user.Fields[2].List)

			post := s.Entities[1]
			require.Equal(t, "Post", post.Name)
			assert.Equal(t, "User", post.Fields[2].Type)
			assert.Equal(t, "Color", post.Fields[3].Type)
		})
	}

	t.Run("json keeps refs", func(t *testing.T) {
		s, err := ReadFile("testdata/blog.json")
		require.NoError(t, err)
		assert.Equal(t, "posts", s.Entities[1].Fields[2].Ref)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile("testdata/missing.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read schema")
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := ReadFile("testdata/unknown_key.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "primary")
	})
}

func TestUnmarshalSchema(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty document", "", "empty schema document"},
		{"null entity", "entities:\n  - null\n", "null entity entry"},
		{"null field", "entities:\n  - name: User\n    fields: [null]\n", "null field entry"},
		{"null enum", "enums:\n  - null\n", "null enum entry"},
		{"malformed", "entities: {", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSchema([]byte(tt.input))
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}

	t.Run("entities only", func(t *testing.T) {
		s, err := UnmarshalSchema([]byte("entities:\n  - name: Tag\n    fields:\n      - {name: label, type: String}\n"))
		require.NoError(t, err)
		assert.Empty(t, s.Enums)
		require.Len(t, s.Entities, 1)
	})
}

func TestMarshalSchema(t *testing.T) {
	s, err := ReadFile("testdata/blog.yaml")
	require.NoError(t, err)

	buf, err := MarshalSchema(s)
	require.NoError(t, err)
	got, err := UnmarshalSchema(buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
