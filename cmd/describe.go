package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adalundhe/crosstalk/core/comm"
	"github.com/adalundhe/crosstalk/core/matrix"
)

var describeDense bool

var describeCmd = &cobra.Command{
	Use:   "describe <counts.csv>",
	Short: "Create a communication object from a count matrix and summarize it",
	Long: `Create a communication object from a labeled CSV count matrix and print
its summary. The CSV header row holds cell names; each data row starts with a
gene name.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().BoolVar(&describeDense, "dense", false, "keep dense storage instead of converting to sparse")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	obj, err := loadObject(args[0], describeDense)
	if err != nil {
		return err
	}
	fmt.Println(obj.Describe())
	return nil
}

func loadObject(path string, dense bool) (*comm.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := matrix.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return comm.Create(m, &comm.CreateConfig{DenseStorage: dense})
}
