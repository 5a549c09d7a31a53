package gen

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func treeOf(t testing.TB, files map[string]string) *Tree {
	t.Helper()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	tree := NewTree()
	for _, p := range paths {
		dir, file := path.Split(p)
		a := &Artifact{Name: strings.TrimSuffix(file, path.Ext(file)), File: file, Content: files[p], Export: true}
		if dir != "" {
			a.Dir = strings.Split(strings.TrimSuffix(dir, "/"), "/")
		}
		require.NoError(t, tree.Add(a))
	}
	return tree
}

func readFile(t testing.TB, path string) string {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(buf)
}

func TestWriter(t *testing.T) {
	target := t.TempDir()
	cfg := &Config{Target: target, Workers: 2}
	tree := treeOf(t, map[string]string{
		"index.ts":                  "export * from './models'",
		"models/User.ts":            "class User {}",
		"models/index.ts":           "export * from './User'",
		"resolvers/inputs/A.ts":     "class A {}",
		"resolvers/inputs/B.ts":     "class B {}",
		"resolvers/inputs/C.ts":     "class C {}",
		"resolvers/inputs/index.ts": "export * from './A'",
	})

	w := NewWriter(cfg)
	require.NoError(t, w.Write(context.Background(), tree))
	assert.Equal(t, 7, w.Metrics().FilesWritten)
	assert.Equal(t, 0, w.Metrics().FilesUnchanged)
	assert.Positive(t, w.Metrics().TotalBytes)
	assert.Equal(t, "class User {}", readFile(t, filepath.Join(target, "models", "User.ts")))

	m, err := NewWriter(cfg).readManifest()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, manifestVersion, m.Version)
	assert.Len(t, m.Files, 7)
	for _, item := range m.Files {
		a, ok := tree.Get(item.Path)
		require.True(t, ok, item.Path)
		assert.Equal(t, sum([]byte(a.Content)), item.Sum)
	}

	t.Run("unchanged files are not rewritten", func(t *testing.T) {
		w := NewWriter(cfg)
		require.NoError(t, w.Write(context.Background(), tree))
		assert.Equal(t, 0, w.Metrics().FilesWritten)
		assert.Equal(t, 7, w.Metrics().FilesUnchanged)
	})
}

func TestWriterCleanStale(t *testing.T) {
	target := t.TempDir()
	cfg := &Config{Target: target}
	first := treeOf(t, map[string]string{
		"models/User.ts":                          "class User {}",
		"models/Post.ts":                          "class Post {}",
		"resolvers/crud/Post/PostCrudResolver.ts": "class PostCrudResolver {}",
		"resolvers/crud/Post/edited.ts":           "generated",
	})
	require.NoError(t, NewWriter(cfg).Write(context.Background(), first))

	edited := filepath.Join(target, "resolvers", "crud", "Post", "edited.ts")
	require.NoError(t, os.WriteFile(edited, []byte("hand written"), 0o644))
	foreign := filepath.Join(target, "models", "custom.ts")
	require.NoError(t, os.WriteFile(foreign, []byte("not generated"), 0o644))

	second := treeOf(t, map[string]string{"models/User.ts": "class User {}"})
	w := NewWriter(cfg)
	require.NoError(t, w.Write(context.Background(), second))
	assert.Equal(t, 2, w.Metrics().FilesRemoved)

	assert.NoFileExists(t, filepath.Join(target, "models", "Post.ts"))
	assert.NoFileExists(t, filepath.Join(target, "resolvers", "crud", "Post", "PostCrudResolver.ts"))
	assert.FileExists(t, edited, "files edited since generation are kept")
	assert.FileExists(t, foreign, "files never generated are kept")
	assert.FileExists(t, filepath.Join(target, "models", "User.ts"))

	m, err := NewWriter(cfg).readManifest()
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Len(t, m.Files, 1)
	assert.Equal(t, "models/User.ts", m.Files[0].Path)
}

func TestWriterRemovesEmptyDirs(t *testing.T) {
	target := t.TempDir()
	cfg := &Config{Target: target}
	require.NoError(t, NewWriter(cfg).Write(context.Background(), treeOf(t, map[string]string{
		"index.ts":                        "root",
		"resolvers/relations/User/U.ts":   "u",
		"resolvers/relations/User/a/A.ts": "a",
	})))
	require.NoError(t, NewWriter(cfg).Write(context.Background(), treeOf(t, map[string]string{"index.ts": "root"})))
	assert.NoDirExists(t, filepath.Join(target, "resolvers"))
	assert.FileExists(t, filepath.Join(target, "index.ts"))
}

func TestWriterCleanDisabled(t *testing.T) {
	target := t.TempDir()
	cfg := &Config{Target: target, Disabled: []string{FeatureCleanStale.Name}}
	require.NoError(t, NewWriter(cfg).Write(context.Background(), treeOf(t, map[string]string{"a.ts": "a", "b.ts": "b"})))
	w := NewWriter(cfg)
	require.NoError(t, w.Write(context.Background(), treeOf(t, map[string]string{"a.ts": "a"})))
	assert.Zero(t, w.Metrics().FilesRemoved)
	assert.FileExists(t, filepath.Join(target, "b.ts"))
}

func TestWriterManifest(t *testing.T) {
	t.Run("corrupt manifest disables cleanup", func(t *testing.T) {
		target := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(target, "stale.ts"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(target, ManifestFile), []byte{0xc1}, 0o644))
		require.NoError(t, NewWriter(&Config{Target: target}).Write(context.Background(), treeOf(t, map[string]string{"a.ts": "a"})))
		assert.FileExists(t, filepath.Join(target, "stale.ts"))
	})

	t.Run("non-local entries are skipped", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "out")
		outside := filepath.Join(root, "outside.ts")
		require.NoError(t, os.MkdirAll(target, 0o755))
		require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
		buf, err := msgpack.Marshal(&Manifest{Version: manifestVersion, Files: []ManifestItem{{Path: "../outside.ts", Sum: sum([]byte("x"))}}})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(target, ManifestFile), buf, 0o644))

		require.NoError(t, NewWriter(&Config{Target: target}).Write(context.Background(), treeOf(t, map[string]string{"a.ts": "a"})))
		assert.FileExists(t, outside)
	})

	t.Run("missing manifest", func(t *testing.T) {
		m, err := NewWriter(&Config{Target: t.TempDir()}).readManifest()
		require.NoError(t, err)
		assert.Nil(t, m)
	})
}

func TestWriterErrors(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		err := NewWriter(&Config{}).Write(context.Background(), NewTree())
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewWriter(&Config{Target: t.TempDir()}).Write(ctx, treeOf(t, map[string]string{"a.ts": "a"}))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("target is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		err := NewWriter(&Config{Target: file}).Write(context.Background(), NewTree())
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})
}

func TestWriterWorkers(t *testing.T) {
	w := NewWriter(&Config{Target: "out"})
	assert.Positive(t, w.workers)
	assert.Equal(t, runtime.GOMAXPROCS(0), w.workers)
	assert.Equal(t, 5, NewWriter(&Config{Target: "out", Workers: 5}).workers)
}
