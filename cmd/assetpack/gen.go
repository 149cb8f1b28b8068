package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/assetpack/internal/config"
	"github.com/samdwyer/assetpack/internal/generator"
)

var genFlags struct {
	configFile string
	assets     string
	out        string
	pkg        string
	tag        string
	exclude    []string
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the Go file embedding an asset directory",
	Long: `gen walks the asset directory and writes a generated Go file with one
go:embed directive per asset and a RegisterAll function feeding the embedding
table. Settings come from assetpack.yaml when present; flags override it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadGenConfig()
		if err != nil {
			return err
		}

		opts := generator.Options{
			AssetDir: cfg.Assets,
			OutFile:  cfg.Output,
			Package:  cfg.Package,
			BuildTag: cfg.Tag,
			Exclude:  cfg.Exclude,
		}
		if err := generator.Run(opts); err != nil {
			return err
		}
		fmt.Printf("Generated %s from %s\n", cfg.Output, cfg.Assets)
		return nil
	},
}

// loadGenConfig merges the config file, when one exists, with the command
// line flags. Flags win.
func loadGenConfig() (*config.Config, error) {
	cfg := &config.Config{}

	file := genFlags.configFile
	explicit := file != ""
	if !explicit {
		file = config.DefaultFile
	}
	if _, err := os.Stat(file); err == nil {
		loaded, err := config.Load(file)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if explicit {
		return nil, fmt.Errorf("config file %s not found", file)
	}

	if genFlags.assets != "" {
		cfg.Assets = genFlags.assets
	}
	if genFlags.out != "" {
		cfg.Output = genFlags.out
	}
	if genFlags.pkg != "" {
		cfg.Package = genFlags.pkg
	}
	if genFlags.tag != "" {
		cfg.Tag = genFlags.tag
	}
	if len(genFlags.exclude) > 0 {
		cfg.Exclude = genFlags.exclude
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	genCmd.Flags().StringVarP(&genFlags.configFile, "config", "c", "", "config file (default assetpack.yaml when present)")
	genCmd.Flags().StringVarP(&genFlags.assets, "assets", "a", "", "asset directory to embed")
	genCmd.Flags().StringVarP(&genFlags.out, "out", "o", "", "generated file path")
	genCmd.Flags().StringVarP(&genFlags.pkg, "package", "p", "", "package name of the generated file")
	genCmd.Flags().StringVarP(&genFlags.tag, "tag", "t", "", "build tag constraining the embedding to release-style builds")
	genCmd.Flags().StringSliceVarP(&genFlags.exclude, "exclude", "x", nil, "glob patterns of asset paths to skip")
	rootCmd.AddCommand(genCmd)
}
