// Package source defines the asset-source seam of the loading pipeline: the
// capability set a source must provide, the error taxonomy shared by all
// implementations, and the registry the pipeline resolves asset references
// against.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors shared by every Source implementation. Callers should test
// with errors.Is since sources wrap these with the offending path.
var (
	// ErrNotFound reports that a path is not served by the source. It is a
	// normal, expected outcome for the pipeline's missing-asset handling,
	// not a fault.
	ErrNotFound = errors.New("asset not found")

	// ErrInvalidPath reports a path that fails normalization, such as one
	// escaping the logical root. It is distinct from ErrNotFound so that a
	// malformed path is never silently resolved to an unrelated file.
	ErrInvalidPath = errors.New("invalid asset path")

	// ErrWatchUnsupported reports that a source cannot watch for changes.
	// The pipeline treats it as a capability gap, not a failure.
	ErrWatchUnsupported = errors.New("watching for changes is not supported")
)

// NotFound wraps ErrNotFound with the path that was requested.
func NotFound(path string) error {
	return fmt.Errorf("%s: %w", path, ErrNotFound)
}

// InvalidPath wraps ErrInvalidPath with the path that was rejected.
func InvalidPath(path string) error {
	return fmt.Errorf("%s: %w", path, ErrInvalidPath)
}

// Source answers file-read, directory-listing and watch requests for a
// namespace of logical asset paths. Paths are relative, forward-slash
// separated and case-sensitive. Implementations must be safe for concurrent
// use.
type Source interface {
	// Read opens the asset at path for sequential reading. A missing asset
	// is reported with ErrNotFound.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadMeta opens the sidecar metadata of the asset at path, stored
	// under path + ".meta".
	ReadMeta(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadDirectory lists the paths of the direct children of path, one
	// segment deeper only. Callers must not assume any particular order.
	ReadDirectory(ctx context.Context, path string) ([]string, error)

	// IsDirectory reports whether path names a directory in this source.
	IsDirectory(ctx context.Context, path string) (bool, error)

	// Exists reports whether path names a file or directory in this source.
	Exists(ctx context.Context, path string) (bool, error)

	// Watch starts watching path for changes. Sources backed by immutable
	// data return ErrWatchUnsupported.
	Watch(path string) (Watcher, error)
}

// Event describes one change observed by a Watcher.
type Event struct {
	// Path is the asset path that changed.
	Path string
}

// Watcher delivers change events for a watched path until closed.
type Watcher interface {
	// Events returns the channel change events are delivered on. The
	// channel is closed when the watcher is closed.
	Events() <-chan Event

	// Close stops the watch and releases its resources.
	Close() error
}
