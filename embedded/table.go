// Package embedded serves compile-time embedded assets through the pipeline's
// source interface. The embedding table is built once at startup from
// generated data and never mutated afterwards, so it can be read concurrently
// without locking.
package embedded

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/samdwyer/assetpack/source"
)

// Entry is one generated (path, payload) pair produced by the build-time
// collector. Path must already be normalized to forward slashes.
type Entry struct {
	Path string
	Data []byte
}

// Registry accepts generated assets. The file emitted by `assetpack gen`
// calls InsertIncludedAsset once per embedded file.
type Registry interface {
	InsertIncludedAsset(name string, data []byte)
}

// Builder collects entries, typically from a generated RegisterAll function,
// and turns them into a Table.
type Builder struct {
	entries []Entry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// InsertIncludedAsset records one generated asset, preserving call order.
func (b *Builder) InsertIncludedAsset(name string, data []byte) {
	b.entries = append(b.entries, Entry{Path: name, Data: data})
}

// Table builds the embedding table from the collected entries.
func (b *Builder) Table() (*Table, error) {
	return NewTable(b.entries)
}

// Table is an immutable mapping from asset path to payload. Lookup order for
// directory listings is the insertion order of the generation step.
type Table struct {
	payloads map[string][]byte
	order    []string
}

// NewTable builds a table from generated entries. It fails fast on malformed
// input, a duplicate or invalid path means the generation step is broken and
// the application should not start.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		payloads: make(map[string][]byte, len(entries)),
		order:    make([]string, 0, len(entries)),
	}
	for _, entry := range entries {
		norm, err := source.Normalize(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("embedded table: %w", err)
		}
		if norm == "" {
			return nil, fmt.Errorf("embedded table: entry path must not be empty: %w", source.ErrInvalidPath)
		}
		if _, dup := t.payloads[norm]; dup {
			return nil, fmt.Errorf("embedded table: duplicate entry %s", norm)
		}
		t.payloads[norm] = entry.Data
		t.order = append(t.order, norm)
	}
	return t, nil
}

// FromFS builds a table by walking an io/fs filesystem rooted at root, using
// "." for the whole filesystem. Paths are stored relative to root in walk
// order. This suits consumers that embed a directory with a single
// `//go:embed all:dir` directive instead of running the generator.
func FromFS(fsys fs.FS, root string) (*Table, error) {
	if root == "" {
		root = "."
	}
	builder := NewBuilder()
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := p
		if root != "." {
			name = strings.TrimPrefix(p, root+"/")
		}
		builder.InsertIncludedAsset(name, data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embedded table: failed to walk filesystem: %w", err)
	}
	return builder.Table()
}

// Lookup returns the payload stored under path. Absence is a normal outcome,
// reported through ok, not an error.
func (t *Table) Lookup(path string) (data []byte, ok bool) {
	data, ok = t.payloads[path]
	return data, ok
}

// Paths returns every stored path in insertion order. The returned slice is
// shared and must not be modified.
func (t *Table) Paths() []string {
	return t.order
}

// Len returns the number of stored assets.
func (t *Table) Len() int {
	return len(t.order)
}
