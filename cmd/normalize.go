package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adalundhe/crosstalk/core/matrix"
	"github.com/adalundhe/crosstalk/core/normalize"
)

var (
	normalizeOut         string
	normalizeScaleFactor float64
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <counts.csv>",
	Short: "Library-size normalize a count matrix",
	Long: `Library-size normalize a labeled CSV count matrix (counts per scale
factor, log1p) and write the normalized matrix as CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "output CSV path (default stdout)")
	normalizeCmd.Flags().Float64Var(&normalizeScaleFactor, "scale-factor", normalize.DefaultScaleFactor, "counts-per scale factor")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	obj, err := loadObject(args[0], false)
	if err != nil {
		return err
	}
	if err := normalize.LibrarySize(obj, normalizeScaleFactor); err != nil {
		return err
	}

	out := os.Stdout
	if normalizeOut != "" {
		f, err := os.Create(normalizeOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := matrix.WriteCSV(out, obj.Data); err != nil {
		return fmt.Errorf("writing normalized matrix: %w", err)
	}
	return nil
}
