package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adalundhe/crosstalk/core/lrdb"
)

var (
	pairsDB       string
	pairsMinCells int
)

var pairsCmd = &cobra.Command{
	Use:   "pairs <counts.csv>",
	Short: "List ligand-receptor pairs detectable in a count matrix",
	Long: `Detect which interactions of a YAML ligand-receptor database are usable
against a labeled CSV count matrix: a pair is kept when its ligand, receptor,
and receptor subunits are each expressed in at least --min-cells cells.`,
	Args: cobra.ExactArgs(1),
	RunE: runPairs,
}

func init() {
	pairsCmd.Flags().StringVar(&pairsDB, "db", "", "ligand-receptor database YAML (required)")
	pairsCmd.Flags().IntVar(&pairsMinCells, "min-cells", 10, "minimum expressing cells per gene")
	_ = pairsCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, args []string) error {
	obj, err := loadObject(args[0], false)
	if err != nil {
		return err
	}
	db, err := lrdb.Load(pairsDB)
	if err != nil {
		return err
	}
	if err := obj.AttachDB(db); err != nil {
		return err
	}
	obj.LR = db.Detect(obj.Data, pairsMinCells)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tLIGAND\tRECEPTOR\tPATHWAY")
	for _, p := range obj.LR.Pairs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Ligand, p.Receptor, p.Pathway)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d pairs detected\n", obj.LR.Len(), len(db.Pairs))
	return nil
}
