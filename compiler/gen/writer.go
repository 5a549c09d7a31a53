package gen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ManifestFile is the name of the file recording the artifacts written by
// the last run, relative to the target directory.
const ManifestFile = ".crudgen-manifest"

// Manifest records the files written by a run, so the next run can remove
// the ones it no longer generates.
type Manifest struct {
	Version int            `msgpack:"version"`
	Files   []ManifestItem `msgpack:"files"`
}

// ManifestItem is one file of the manifest.
type ManifestItem struct {
	Path string `msgpack:"path"`
	Sum  string `msgpack:"sum"`
}

const manifestVersion = 1

// Writer persists artifact trees to the target directory with parallel
// execution.
type Writer struct {
	target  string
	workers int
	clean   bool
	log     *zap.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks writer performance.
type WriterMetrics struct {
	FilesWritten   int
	FilesUnchanged int
	FilesRemoved   int
	TotalBytes     int64
	WriteTime      int64 // nanoseconds
}

// NewWriter creates a new writer for the configured target directory.
func NewWriter(c *Config) *Writer {
	w := &Writer{
		workers: runtime.GOMAXPROCS(0),
		clean:   c.featureEnabled(FeatureCleanStale),
		log:     c.logger(),
		metrics: &WriterMetrics{},
	}
	if c.Target != "" {
		w.target = filepath.Clean(c.Target)
	}
	if c.Workers > 0 {
		w.workers = c.Workers
	}
	return w
}

// Metrics returns the writer metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Write persists the tree. Files whose content did not change are left
// untouched. With FeatureCleanStale enabled, files recorded by the previous
// manifest but missing from the tree are removed, unless they were edited
// since they were generated.
func (w *Writer) Write(ctx context.Context, t *Tree) error {
	if w.target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	start := time.Now()
	if err := os.MkdirAll(w.target, 0o755); err != nil {
		return NewGenerationError("write", w.target, "create output directory", err)
	}
	prev, err := w.readManifest()
	if err != nil {
		return err
	}
	var (
		artifacts = t.Artifacts()
		items     = make([]ManifestItem, len(artifacts))
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, a := range artifacts {
		items[i] = ManifestItem{Path: a.Path(), Sum: sum([]byte(a.Content))}
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(a)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if w.clean && prev != nil {
		if err := w.removeStale(prev, t); err != nil {
			return err
		}
	}
	if err := w.writeManifest(&Manifest{Version: manifestVersion, Files: items}); err != nil {
		return err
	}
	w.metrics.WriteTime = time.Since(start).Nanoseconds()
	w.log.Info("tree written",
		zap.String("target", w.target),
		zap.Int("written", w.metrics.FilesWritten),
		zap.Int("unchanged", w.metrics.FilesUnchanged),
		zap.Int("removed", w.metrics.FilesRemoved),
		zap.Int64("bytes", w.metrics.TotalBytes),
	)
	return nil
}

// writeFile writes a single artifact.
func (w *Writer) writeFile(a *Artifact) error {
	fullPath := filepath.Join(w.target, filepath.FromSlash(a.Path()))
	content := []byte(a.Content)
	if cur, err := os.ReadFile(fullPath); err == nil && bytes.Equal(cur, content) {
		w.mu.Lock()
		w.metrics.FilesUnchanged++
		w.mu.Unlock()
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", a.Path(), "create directory", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return NewGenerationError("write", a.Path(), "", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	return nil
}

// removeStale removes the files of the previous manifest that are not part
// of the tree, then the directories left empty.
func (w *Writer) removeStale(prev *Manifest, t *Tree) error {
	dirs := make(map[string]bool)
	for _, item := range prev.Files {
		if _, ok := t.Get(item.Path); ok {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(item.Path)) {
			w.log.Warn("skipping non-local manifest entry", zap.String("path", item.Path))
			continue
		}
		fullPath := filepath.Join(w.target, filepath.FromSlash(item.Path))
		cur, err := os.ReadFile(fullPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return NewGenerationError("clean", item.Path, "", err)
		case sum(cur) != item.Sum:
			w.log.Warn("keeping stale file modified since generation", zap.String("path", item.Path))
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			return NewGenerationError("clean", item.Path, "", err)
		}
		w.metrics.FilesRemoved++
		dirs[filepath.Dir(fullPath)] = true
	}
	// Deepest directories first, so parents can become empty.
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		for ; d != w.target && d != "." && d != string(filepath.Separator); d = filepath.Dir(d) {
			sorted = append(sorted, d)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for _, d := range sorted {
		// Non-empty directories fail to be removed; that is fine.
		_ = os.Remove(d)
	}
	return nil
}

func (w *Writer) readManifest() (*Manifest, error) {
	buf, err := os.ReadFile(filepath.Join(w.target, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, NewGenerationError("manifest", ManifestFile, "read", err)
	}
	m := &Manifest{}
	if err := msgpack.Unmarshal(buf, m); err != nil {
		// A corrupt manifest only disables the cleanup.
		w.log.Warn("ignoring unreadable manifest", zap.Error(err))
		return nil, nil
	}
	if m.Version != manifestVersion {
		w.log.Warn("ignoring manifest of unknown version", zap.Int("version", m.Version))
		return nil, nil
	}
	return m, nil
}

func (w *Writer) writeManifest(m *Manifest) error {
	buf, err := msgpack.Marshal(m)
	if err != nil {
		return NewGenerationError("manifest", ManifestFile, "encode", err)
	}
	if err := os.WriteFile(filepath.Join(w.target, ManifestFile), buf, 0o644); err != nil {
		return NewGenerationError("manifest", ManifestFile, "write", err)
	}
	return nil
}

func sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
