// Package generator implements the build-time collector: it walks an asset
// directory and emits the Go file that embeds every file and registers it
// with the embedding table.
package generator

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// Options controls one generation run.
type Options struct {
	// AssetDir is the directory to collect, relative to the working
	// directory.
	AssetDir string

	// OutFile is the path of the generated file. It must live in a
	// directory containing AssetDir, go:embed cannot reach parent
	// directories.
	OutFile string

	// Package is the package name of the generated file.
	Package string

	// BuildTag, when set, constrains the generated file to builds with
	// that tag and emits a companion stub with the inverse constraint, so
	// development builds skip the embedding entirely.
	BuildTag string

	// Exclude lists path.Match patterns; matching asset paths are skipped.
	Exclude []string
}

// Asset is one collected file.
type Asset struct {
	// Name is the table key: the path relative to AssetDir with forward
	// slashes.
	Name string

	// Embed is the go:embed pattern, relative to the generated file.
	Embed string

	// Ident is the variable name holding the payload.
	Ident string
}

// Collect walks dir and returns every file as an asset, in walk order. The
// embedPrefix is prepended to each go:embed pattern.
func Collect(dir, embedPrefix string, exclude []string) ([]Asset, error) {
	var assets []Asset
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		excluded, err := matches(exclude, name)
		if err != nil {
			return err
		}
		if excluded {
			return nil
		}
		assets = append(assets, Asset{
			Name:  name,
			Embed: path.Join(embedPrefix, name),
			Ident: fmt.Sprintf("asset%d", len(assets)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect assets from %s: %w", dir, err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets found in %s", dir)
	}
	return assets, nil
}

func matches(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

var embedTemplate = template.Must(template.New("embed").Parse(`// Code generated by assetpack gen. DO NOT EDIT.

{{if .BuildTag}}//go:build {{.BuildTag}}

{{end}}package {{.Package}}

import (
	_ "embed"

	"github.com/samdwyer/assetpack/embedded"
)

{{range .Assets}}//go:embed {{printf "%q" .Embed}}
var {{.Ident}} []byte

{{end}}// RegisterAll inserts every embedded asset into r.
func RegisterAll(r embedded.Registry) {
{{range .Assets}}	r.InsertIncludedAsset({{printf "%q" .Name}}, {{.Ident}})
{{end}}}
`))

var stubTemplate = template.Must(template.New("stub").Parse(`// Code generated by assetpack gen. DO NOT EDIT.

//go:build !{{.BuildTag}}

package {{.Package}}

import "github.com/samdwyer/assetpack/embedded"

// RegisterAll embeds nothing in development builds. Serve assets from the
// on-disk directory through the fallback source instead.
func RegisterAll(_ embedded.Registry) {}
`))

// Render writes the embedding file for the collected assets.
func Render(w io.Writer, opts Options, assets []Asset) error {
	return embedTemplate.Execute(w, struct {
		Package  string
		BuildTag string
		Assets   []Asset
	}{opts.Package, opts.BuildTag, assets})
}

// RenderDevStub writes the development counterpart of a tagged embedding
// file.
func RenderDevStub(w io.Writer, opts Options) error {
	return stubTemplate.Execute(w, struct {
		Package  string
		BuildTag string
	}{opts.Package, opts.BuildTag})
}

// Run collects the asset directory and writes the generated file, plus the
// development stub when a build tag is configured.
func Run(opts Options) error {
	outDir := filepath.Dir(opts.OutFile)
	embedPrefix, err := filepath.Rel(outDir, opts.AssetDir)
	if err != nil {
		return fmt.Errorf("failed to relate %s to %s: %w", opts.AssetDir, outDir, err)
	}
	embedPrefix = filepath.ToSlash(embedPrefix)
	if embedPrefix == ".." || strings.HasPrefix(embedPrefix, "../") {
		return fmt.Errorf("asset directory %s is outside the output package directory %s, go:embed cannot reach it", opts.AssetDir, outDir)
	}

	assets, err := Collect(opts.AssetDir, embedPrefix, opts.Exclude)
	if err != nil {
		return err
	}

	if err := writeFile(opts.OutFile, func(w io.Writer) error {
		return Render(w, opts, assets)
	}); err != nil {
		return err
	}

	if opts.BuildTag != "" {
		stub := stubPath(opts.OutFile)
		if err := writeFile(stub, func(w io.Writer) error {
			return RenderDevStub(w, opts)
		}); err != nil {
			return err
		}
	}
	return nil
}

// stubPath derives the development stub filename from the embedding file,
// foo.go becomes foo_dev.go.
func stubPath(outFile string) string {
	ext := filepath.Ext(outFile)
	return strings.TrimSuffix(outFile, ext) + "_dev" + ext
}

func writeFile(name string, render func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
