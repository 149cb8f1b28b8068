// Package assetpack wires compile-time embedded assets into an asset-loading
// pipeline. The Plugin builds the embedding table from generated data and
// installs an embedded source into a source registry under one of three
// modes, before the pipeline starts serving requests.
package assetpack

import (
	"errors"
	"fmt"

	"github.com/samdwyer/assetpack/embedded"
	"github.com/samdwyer/assetpack/source"
)

// Mode selects how the embedded source is installed into the registry.
type Mode int

const (
	// ModeAutoLoad registers the embedded source under the "embedded"
	// scheme, leaving the default source alone. Assets are addressed as
	// "embedded://path".
	ModeAutoLoad Mode = iota

	// ModeReplaceDefault installs the embedded source as the default
	// scheme. Paths absent from the table report ErrNotFound.
	ModeReplaceDefault

	// ModeReplaceAndFallback installs the embedded source as the default
	// scheme, wrapping a filesystem source so paths absent at build time
	// fall back to the real asset directory.
	ModeReplaceAndFallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAutoLoad:
		return "auto-load"
	case ModeReplaceDefault:
		return "replace-default"
	case ModeReplaceAndFallback:
		return "replace-and-fallback"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DefaultFallbackPath is the asset directory used by ModeReplaceAndFallback
// when the plugin does not name one.
const DefaultFallbackPath = "assets"

// ErrAlreadyInstalled reports a second Install on the same plugin.
// Registration is a one-shot setup, there is no unregister or reconfigure.
var ErrAlreadyInstalled = errors.New("plugin already installed")

// Plugin configures and installs the embedded asset source. Configure the
// fields, then call Install exactly once during application setup, before
// any asset request is resolved.
type Plugin struct {
	// Mode selects how the source is installed. The zero value is
	// ModeAutoLoad.
	Mode Mode

	// Assets is the generated registration function that feeds the
	// embedding table, typically the RegisterAll emitted by
	// `assetpack gen`.
	Assets func(embedded.Registry)

	// FallbackPath is the directory served by the fallback source in
	// ModeReplaceAndFallback. Empty means DefaultFallbackPath.
	FallbackPath string

	installed bool
}

// Install builds the embedding table, constructs the source for the
// configured mode and registers it. A malformed embedding table aborts the
// install so the application fails at startup instead of at first asset
// access.
func (p *Plugin) Install(reg *source.Registry) error {
	if p.installed {
		return ErrAlreadyInstalled
	}
	if p.Assets == nil {
		return errors.New("plugin has no generated assets: set Plugin.Assets to the generated RegisterAll")
	}

	builder := embedded.NewBuilder()
	p.Assets(builder)
	table, err := builder.Table()
	if err != nil {
		return fmt.Errorf("failed to build embedding table: %w", err)
	}

	switch p.Mode {
	case ModeAutoLoad:
		if err := reg.Register(source.EmbeddedScheme, embedded.New(table)); err != nil {
			return err
		}
	case ModeReplaceDefault:
		if err := reg.Replace(source.DefaultScheme, embedded.New(table)); err != nil {
			return err
		}
	case ModeReplaceAndFallback:
		dir := p.FallbackPath
		if dir == "" {
			dir = DefaultFallbackPath
		}
		fallback := source.NewFilesystemSource(dir)
		if err := reg.Replace(source.DefaultScheme, embedded.NewWithFallback(table, fallback)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown plugin mode %d", int(p.Mode))
	}

	p.installed = true
	return nil
}
