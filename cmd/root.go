// Package cmd provides the CLI commands for crosstalk.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crosstalk",
	Short: "Crosstalk - cell-cell communication analysis objects",
	Long: `Crosstalk manages the in-memory objects of cell-cell communication
analysis: labeled expression matrices, ligand-receptor databases, and the
derived communication artifacts built on top of them.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
