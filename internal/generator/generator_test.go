package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"images/a.png":     "a",
		"images/sub/b.png": "b",
		"sounds/hit.ogg":   "hit",
	})

	assets, err := Collect(dir, "assets", nil)
	if err != nil {
		t.Fatalf("Failed to collect: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("Expected 3 assets, got %d", len(assets))
	}

	// WalkDir visits lexically, so the order is deterministic
	wantNames := []string{"images/a.png", "images/sub/b.png", "sounds/hit.ogg"}
	for i, want := range wantNames {
		if assets[i].Name != want {
			t.Errorf("Asset %d: name %q, want %q", i, assets[i].Name, want)
		}
	}
	if assets[0].Embed != "assets/images/a.png" {
		t.Errorf("Embed pattern %q, want assets/images/a.png", assets[0].Embed)
	}
	if assets[0].Ident != "asset0" || assets[2].Ident != "asset2" {
		t.Errorf("Unexpected idents: %q, %q", assets[0].Ident, assets[2].Ident)
	}
}

func TestCollectExclude(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"images/a.png": "a",
		"images/a.psd": "working file",
	})

	assets, err := Collect(dir, ".", []string{"*/*.psd"})
	if err != nil {
		t.Fatalf("Failed to collect: %v", err)
	}
	if len(assets) != 1 || assets[0].Name != "images/a.png" {
		t.Errorf("Expected only images/a.png, got %v", assets)
	}
}

func TestCollectEmpty(t *testing.T) {
	if _, err := Collect(t.TempDir(), ".", nil); err == nil {
		t.Error("Expected error for empty asset directory")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"assets/images/a.png": "a",
		"assets/hit.ogg":      "hit",
	})

	out := filepath.Join(dir, "assets_gen.go")
	err := Run(Options{
		AssetDir: filepath.Join(dir, "assets"),
		OutFile:  out,
		Package:  "game",
	})
	if err != nil {
		t.Fatalf("Failed to run generator: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read generated file: %v", err)
	}
	generated := string(content)

	for _, want := range []string{
		"// Code generated by assetpack gen. DO NOT EDIT.",
		"package game",
		`//go:embed "assets/hit.ogg"`,
		`//go:embed "assets/images/a.png"`,
		"func RegisterAll(r embedded.Registry) {",
		`r.InsertIncludedAsset("hit.ogg", asset0)`,
		`r.InsertIncludedAsset("images/a.png", asset1)`,
	} {
		if !strings.Contains(generated, want) {
			t.Errorf("Generated file missing %q:\n%s", want, generated)
		}
	}
	if strings.Contains(generated, "//go:build") {
		t.Error("Untagged run should not emit a build constraint")
	}
}

func TestRunWithBuildTag(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"assets/a.png": "a"})

	out := filepath.Join(dir, "assets_gen.go")
	err := Run(Options{
		AssetDir: filepath.Join(dir, "assets"),
		OutFile:  out,
		Package:  "game",
		BuildTag: "release",
	})
	if err != nil {
		t.Fatalf("Failed to run generator: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read generated file: %v", err)
	}
	if !strings.Contains(string(content), "//go:build release") {
		t.Error("Tagged file missing build constraint")
	}

	stub, err := os.ReadFile(filepath.Join(dir, "assets_gen_dev.go"))
	if err != nil {
		t.Fatalf("Failed to read dev stub: %v", err)
	}
	devStub := string(stub)
	if !strings.Contains(devStub, "//go:build !release") {
		t.Error("Dev stub missing inverse build constraint")
	}
	if !strings.Contains(devStub, "func RegisterAll(_ embedded.Registry) {}") {
		t.Error("Dev stub should register nothing")
	}
}

func TestRunOutsidePackage(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"assets/a.png": "a"})

	err := Run(Options{
		AssetDir: filepath.Join(dir, "assets"),
		OutFile:  filepath.Join(dir, "pkg", "sub", "assets_gen.go"),
		Package:  "sub",
	})
	if err == nil {
		t.Error("Expected error when asset dir is outside the output package directory")
	}
}
