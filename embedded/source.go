package embedded

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/assetpack/source"
)

// Source serves assets out of an embedding table, presenting the same
// capability set as a filesystem-backed source so the pipeline cannot tell
// the difference. With a fallback delegate configured, paths absent from the
// table are retried against the delegate and its results, including its
// errors, are passed through unchanged.
//
// Source is stateless apart from the table reference and the optional
// delegate, so one value can serve any number of concurrent requests.
type Source struct {
	table    *Table
	fallback source.Source
}

// New creates a source serving only the embedding table.
func New(table *Table) *Source {
	return &Source{table: table}
}

// NewWithFallback creates a source that retries table misses against
// fallback.
func NewWithFallback(table *Table, fallback source.Source) *Source {
	return &Source{table: table, fallback: fallback}
}

// Table returns the embedding table this source serves from.
func (s *Source) Table() *Table {
	return s.table
}

// Read returns a new reader over the embedded payload at path. Each call
// hands out an independent cursor.
func (s *Source) Read(ctx context.Context, p string) (io.ReadCloser, error) {
	norm, err := source.Normalize(p)
	if err != nil {
		return nil, err
	}
	if data, ok := s.table.Lookup(norm); ok {
		return NewReader(norm, data), nil
	}
	if s.fallback != nil {
		return s.fallback.Read(ctx, p)
	}
	return nil, source.NotFound(p)
}

// ReadMeta returns a reader over the embedded sidecar metadata of path.
func (s *Source) ReadMeta(ctx context.Context, p string) (io.ReadCloser, error) {
	norm, err := source.Normalize(p)
	if err != nil {
		return nil, err
	}
	metaPath := source.MetaPath(norm)
	if data, ok := s.table.Lookup(metaPath); ok {
		return NewReader(metaPath, data), nil
	}
	if s.fallback != nil {
		return s.fallback.ReadMeta(ctx, p)
	}
	return nil, source.NotFound(metaPath)
}

// ReadDirectory lists the table entries that are direct children of path,
// one segment deeper, in the insertion order of the generation step. Entries
// from deeper subdirectories are excluded.
func (s *Source) ReadDirectory(ctx context.Context, p string) ([]string, error) {
	norm, err := source.Normalize(p)
	if err != nil {
		return nil, err
	}
	if !s.isDirectory(norm) {
		if s.fallback != nil {
			return s.fallback.ReadDirectory(ctx, p)
		}
		return nil, source.NotFound(p)
	}

	prefix := ""
	if norm != "" {
		prefix = norm + "/"
	}
	var children []string
	for _, stored := range s.table.Paths() {
		if !strings.HasPrefix(stored, prefix) {
			continue
		}
		if strings.Contains(stored[len(prefix):], "/") {
			continue
		}
		children = append(children, stored)
	}
	return children, nil
}

// isDirectory reports whether path names a directory in the table: some
// stored path has path/ as a strict prefix. The root is a directory whenever
// the table is non-empty.
func (s *Source) isDirectory(norm string) bool {
	if norm == "" {
		return s.table.Len() > 0
	}
	prefix := norm + "/"
	for _, stored := range s.table.Paths() {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// IsDirectory reports whether path names a directory, consulting the
// fallback when the table says no.
func (s *Source) IsDirectory(ctx context.Context, p string) (bool, error) {
	norm, err := source.Normalize(p)
	if err != nil {
		return false, err
	}
	if s.isDirectory(norm) {
		return true, nil
	}
	if s.fallback != nil {
		return s.fallback.IsDirectory(ctx, p)
	}
	return false, nil
}

// Exists reports whether path names an embedded file or directory,
// consulting the fallback when the table says no.
func (s *Source) Exists(ctx context.Context, p string) (bool, error) {
	norm, err := source.Normalize(p)
	if err != nil {
		return false, err
	}
	if _, ok := s.table.Lookup(norm); ok {
		return true, nil
	}
	if s.isDirectory(norm) {
		return true, nil
	}
	if s.fallback != nil {
		return s.fallback.Exists(ctx, p)
	}
	return false, nil
}

// Watch reports ErrWatchUnsupported: embedded assets are immutable for the
// process lifetime, so there is never anything to deliver. With a fallback
// configured the watch is delegated so on-disk assets keep their change
// notifications.
func (s *Source) Watch(p string) (source.Watcher, error) {
	if s.fallback != nil {
		return s.fallback.Watch(p)
	}
	return nil, fmt.Errorf("%s: %w", p, source.ErrWatchUnsupported)
}
