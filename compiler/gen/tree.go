package gen

import (
	"path"
	"strings"
)

// Artifact is one generated file of the tree.
type Artifact struct {
	// Dir holds the directory segments, relative to the tree root.
	Dir []string
	// Name is the base name of the file without extension.
	Name string
	// File is the file name including the extension.
	File string
	// Content of the file.
	Content string
	// Export reports if the artifact is re-exported by the indices of its
	// directory and of every ancestor directory.
	Export bool
	// ExportedBy holds the paths of the index artifacts re-exporting the
	// artifact, nearest first.
	ExportedBy []string
	// Kind of the construct the artifact was rendered from.
	Kind ConstructKind
}

// Path returns the slash separated path of the artifact.
func (a *Artifact) Path() string {
	return path.Join(append(append([]string(nil), a.Dir...), a.File)...)
}

// DirPath returns the slash separated directory of the artifact.
func (a *Artifact) DirPath() string { return strings.Join(a.Dir, "/") }

// Tree is an ordered, path addressable set of artifacts.
type Tree struct {
	artifacts []*Artifact
	paths     map[string]*Artifact
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{paths: make(map[string]*Artifact)}
}

// Add adds an artifact to the tree. Adding an artifact whose path is taken
// by one with identical content is a no-op; different content fails with a
// NamingCollisionError.
func (t *Tree) Add(a *Artifact) error {
	p := a.Path()
	if prev, ok := t.paths[p]; ok {
		if prev.Content == a.Content {
			return nil
		}
		return &NamingCollisionError{Path: p, Existing: prev.Kind, Colliding: a.Kind}
	}
	t.paths[p] = a
	t.artifacts = append(t.artifacts, a)
	return nil
}

// Get returns the artifact at the given slash separated path.
func (t *Tree) Get(p string) (*Artifact, bool) {
	a, ok := t.paths[p]
	return a, ok
}

// Artifacts returns the artifacts in the order they were added.
func (t *Tree) Artifacts() []*Artifact {
	return append([]*Artifact(nil), t.artifacts...)
}

// Paths returns the artifact paths in the order they were added.
func (t *Tree) Paths() []string {
	paths := make([]string, len(t.artifacts))
	for i, a := range t.artifacts {
		paths[i] = a.Path()
	}
	return paths
}

// Len returns the number of artifacts.
func (t *Tree) Len() int { return len(t.artifacts) }

// Dir returns the artifacts located directly in the given directory.
func (t *Tree) Dir(dir string) []*Artifact {
	var as []*Artifact
	for _, a := range t.artifacts {
		if a.DirPath() == dir {
			as = append(as, a)
		}
	}
	return as
}

// link fills the ExportedBy sets of the exported artifacts, given the file
// name of the indices.
func (t *Tree) link(index string) {
	for _, a := range t.artifacts {
		if !a.Export {
			continue
		}
		a.ExportedBy = a.ExportedBy[:0]
		dir := a.Dir
		if a.Kind == ConstructIndex {
			if len(dir) == 0 {
				continue
			}
			dir = dir[:len(dir)-1]
		}
		for i := len(dir); i >= 0; i-- {
			if idx, ok := t.paths[path.Join(append(append([]string(nil), dir[:i]...), index)...)]; ok {
				a.ExportedBy = append(a.ExportedBy, idx.Path())
			}
		}
	}
}
