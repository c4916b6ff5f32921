// Package hsa handles the HSA-eligible expense export command
package hsa

import (
	"errors"

	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/cmd/root"
	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/exporter"
)

// Cmd represents the hsa command
var Cmd = &cobra.Command{
	Use:   "hsa",
	Short: "Export HSA-eligible expenses across all years",
	Long: `Export all HSA-eligible bill records as a sectioned CSV file with
per-year totals. Which categories count as eligible comes from the
configuration (default: medical, dental, vision, pharmacy).

Example:
  hsa-bills hsa -o hsa_expenses.csv`,
	Run: hsaFunc,
}

func hsaFunc(cmd *cobra.Command, args []string) {
	s := root.OpenStore()

	view, err := exporter.BuildHSAExport(s.All(), root.Cfg.HSA.EligibleCategories)
	if err != nil {
		var noData *billerror.NoDataError
		if errors.As(err, &noData) {
			root.Log.Warn("No HSA-eligible records found, nothing to export")
			return
		}
		root.Log.Fatalf("Error building HSA export: %v", err)
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = "hsa_expenses.csv"
	}

	if err := exporter.WriteHSAExportCSV(view, output); err != nil {
		root.Log.Fatalf("Error writing HSA export: %v", err)
	}

	root.Log.Infof("Exported %d HSA-eligible records to %s", len(view.Records), output)
}
