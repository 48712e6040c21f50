package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"

	"github.com/spf13/cobra"
)

var baselinesCmd = &cobra.Command{
	Use:   "baselines",
	Short: "Print the normative baseline table",
	RunE:  runBaselines,
}

func init() {
	rootCmd.AddCommand(baselinesCmd)
}

func runBaselines(cmd *cobra.Command, args []string) error {
	table := analysis.NormativeBaselines()

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tX_AVG\tY_AVG\tX_STD\tY_STD")
	for _, task := range models.KnownTaskTypes {
		b := table[task]
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\n", task, b.XAvg, b.YAvg, b.XStd, b.YStd)
	}
	return w.Flush()
}
