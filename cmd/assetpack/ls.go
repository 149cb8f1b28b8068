package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/assetpack/embedded"
)

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List what a directory would embed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := embedded.FromFS(os.DirFS(args[0]), ".")
		if err != nil {
			return err
		}
		total := 0
		for _, p := range table.Paths() {
			data, _ := table.Lookup(p)
			fmt.Printf("%8d  %s\n", len(data), p)
			total += len(data)
		}
		fmt.Printf("%8d  total in %d assets\n", total, table.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
