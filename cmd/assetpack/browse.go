package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/assetpack/embedded"
	"github.com/samdwyer/assetpack/internal/browser"
)

var browseCmd = &cobra.Command{
	Use:   "browse <dir>",
	Short: "Inspect what a directory would embed in a terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := embedded.FromFS(os.DirFS(args[0]), ".")
		if err != nil {
			return err
		}
		b, err := browser.New(table)
		if err != nil {
			return err
		}
		return b.Run()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
