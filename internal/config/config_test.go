package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "assetpack.yaml")
	content := `assets: game/assets
output: game/assets_gen.go
package: game
tag: release
exclude:
  - "*.psd"
  - "*.blend"
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Assets != "game/assets" {
		t.Errorf("Assets = %q, want game/assets", cfg.Assets)
	}
	if cfg.Output != "game/assets_gen.go" {
		t.Errorf("Output = %q, want game/assets_gen.go", cfg.Output)
	}
	if cfg.Package != "game" {
		t.Errorf("Package = %q, want game", cfg.Package)
	}
	if cfg.Tag != "release" {
		t.Errorf("Tag = %q, want release", cfg.Tag)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Expected 2 exclude patterns, got %d", len(cfg.Exclude))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Assets != "assets" {
		t.Errorf("Assets default = %q, want assets", cfg.Assets)
	}
	if cfg.Output != "assets_gen.go" {
		t.Errorf("Output default = %q, want assets_gen.go", cfg.Output)
	}
	if cfg.Package != "main" {
		t.Errorf("Package default = %q, want main", cfg.Package)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"ok", Config{Output: "assets_gen.go"}, true},
		{"not a go file", Config{Output: "assets_gen.txt"}, false},
		{"bad tag", Config{Output: "a.go", Tag: "rel ease"}, false},
		{"bad exclude", Config{Output: "a.go", Exclude: []string{"[unclosed"}}, false},
	}
	for _, tt := range tests {
		err := Validate(&tt.cfg)
		if tt.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}
