package source

import (
	"fmt"
	"strings"
	"sync"
)

// Schemes recognized by the registry. An asset reference selects its source
// with a "scheme://" prefix; references without one use DefaultScheme.
const (
	// DefaultScheme is the scheme used by references with no explicit
	// scheme prefix.
	DefaultScheme = "file"

	// EmbeddedScheme is the conventional scheme for compile-time embedded
	// assets.
	EmbeddedScheme = "embedded"
)

const schemeSeparator = "://"

// Registry maps schemes to their sources. Registration is a one-shot setup
// step: the registry seals itself on the first Resolve, after which further
// registration fails, since swapping sources with requests in flight is not
// safe.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	sealed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register installs src under scheme. It fails if the scheme is already
// taken or if the registry has started serving resolutions.
func (r *Registry) Register(scheme string, src Source) error {
	if scheme == "" {
		return fmt.Errorf("scheme must not be empty")
	}
	if src == nil {
		return fmt.Errorf("scheme %s: source must not be nil", scheme)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("scheme %s: registry is sealed, sources must be registered before any asset request", scheme)
	}
	if _, taken := r.sources[scheme]; taken {
		return fmt.Errorf("scheme %s: already registered", scheme)
	}
	r.sources[scheme] = src
	return nil
}

// Replace installs src under scheme, displacing any source already there.
// Like Register it fails once the registry is sealed.
func (r *Registry) Replace(scheme string, src Source) error {
	if scheme == "" {
		return fmt.Errorf("scheme must not be empty")
	}
	if src == nil {
		return fmt.Errorf("scheme %s: source must not be nil", scheme)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("scheme %s: registry is sealed, sources must be registered before any asset request", scheme)
	}
	r.sources[scheme] = src
	return nil
}

// Resolve splits an asset reference into its source and relative path. The
// first call seals the registry against further registration.
func (r *Registry) Resolve(ref string) (Source, string, error) {
	scheme := DefaultScheme
	rel := ref
	if i := strings.Index(ref, schemeSeparator); i >= 0 {
		scheme = ref[:i]
		rel = ref[i+len(schemeSeparator):]
	}

	// Once sealed the map never changes again, so concurrent resolutions
	// only share the read lock. The write lock is taken at most once.
	r.mu.RLock()
	sealed := r.sealed
	src, ok := r.sources[scheme]
	r.mu.RUnlock()

	if !sealed {
		r.mu.Lock()
		r.sealed = true
		src, ok = r.sources[scheme]
		r.mu.Unlock()
	}

	if !ok {
		return nil, "", fmt.Errorf("no source registered for scheme %s: %w", scheme, ErrNotFound)
	}
	return src, rel, nil
}

// Sealed reports whether the registry has started serving resolutions.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}
