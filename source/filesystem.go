package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FilesystemSource serves assets from a directory on the real filesystem.
// It is the default source of the pipeline and the delegate the embedded
// source falls back to.
type FilesystemSource struct {
	root string
}

// NewFilesystemSource creates a source rooted at dir. The directory does not
// have to exist yet; missing files surface as ErrNotFound on access.
func NewFilesystemSource(dir string) *FilesystemSource {
	return &FilesystemSource{root: dir}
}

// Root returns the directory this source serves from.
func (s *FilesystemSource) Root() string {
	return s.root
}

// resolve normalizes an asset path and maps it onto the host filesystem.
func (s *FilesystemSource) resolve(p string) (string, error) {
	norm, err := Normalize(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(norm)), nil
}

// Read opens the file at path relative to the source root.
func (s *FilesystemSource) Read(_ context.Context, p string) (io.ReadCloser, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFound(p)
		}
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	return f, nil
}

// ReadMeta opens the sidecar metadata file for path.
func (s *FilesystemSource) ReadMeta(ctx context.Context, p string) (io.ReadCloser, error) {
	return s.Read(ctx, MetaPath(p))
}

// ReadDirectory lists the direct children of path as asset paths.
func (s *FilesystemSource) ReadDirectory(_ context.Context, p string) ([]string, error) {
	norm, err := Normalize(p)
	if err != nil {
		return nil, err
	}
	full := filepath.Join(s.root, filepath.FromSlash(norm))
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFound(p)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
	}
	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		children = append(children, path.Join(norm, entry.Name()))
	}
	return children, nil
}

// IsDirectory reports whether path names a directory under the root.
func (s *FilesystemSource) IsDirectory(_ context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return info.IsDir(), nil
}

// Exists reports whether path names a file or directory under the root.
func (s *FilesystemSource) Exists(_ context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return true, nil
}

// Watch starts an fsnotify watch on path and translates its notifications
// into asset-path events.
func (s *FilesystemSource) Watch(p string) (Watcher, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher for %s: %w", p, err)
	}
	if err := fsw.Add(full); err != nil {
		fsw.Close()
		if os.IsNotExist(err) {
			return nil, NotFound(p)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", p, err)
	}

	w := &fsWatcher{
		inner:  fsw,
		root:   s.root,
		events: make(chan Event),
		quit:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// fsWatcher adapts an fsnotify watcher to the Watcher interface.
type fsWatcher struct {
	inner  *fsnotify.Watcher
	root   string
	events chan Event
	quit   chan struct{}
	once   sync.Once
}

func (w *fsWatcher) run() {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.inner.Events:
			if !ok {
				return
			}
			// The consumer may have stopped receiving; never stay
			// parked in the send past Close.
			select {
			case w.events <- Event{Path: w.assetPath(ev.Name)}:
			case <-w.quit:
				return
			}
		case _, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			// Watch errors are a capability degradation, not an
			// asset failure. Keep delivering what still arrives.
		case <-w.quit:
			return
		}
	}
}

// assetPath converts a host filesystem path back into an asset path.
func (w *fsWatcher) assetPath(name string) string {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return filepath.ToSlash(name)
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}

func (w *fsWatcher) Events() <-chan Event {
	return w.events
}

// Close stops the watch. Safe to call multiple times; the events channel is
// closed once the forwarding goroutine has exited.
func (w *fsWatcher) Close() error {
	w.once.Do(func() {
		close(w.quit)
	})
	return w.inner.Close()
}
