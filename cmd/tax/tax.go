// Package tax handles the yearly tax export command
package tax

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/cmd/root"
	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/exporter"
	"fjacquet/hsa-bills/internal/validation"
)

// Cmd represents the tax command
var Cmd = &cobra.Command{
	Use:   "tax",
	Short: "Export the tax view for one calendar year",
	Long: `Export all bill records for a calendar year as a sectioned CSV file:
the records themselves, category totals, monthly totals and summary
statistics.

Example:
  hsa-bills tax --year 2024 -o tax_2024.csv`,
	Run: taxFunc,
}

func init() {
	Cmd.Flags().IntVarP(&root.Year, "year", "y", 0, "Calendar year to export")
	_ = Cmd.MarkFlagRequired("year")
}

func taxFunc(cmd *cobra.Command, args []string) {
	if err := validation.IsValidYear(root.Year); err != nil {
		root.Log.Fatalf("Invalid year: %v", err)
	}

	s := root.OpenStore()

	view, err := exporter.BuildTaxExport(s.All(), root.Year)
	if err != nil {
		var noData *billerror.NoDataError
		if errors.As(err, &noData) {
			root.Log.Warnf("No records found for year %d, nothing to export", root.Year)
			return
		}
		root.Log.Fatalf("Error building tax export: %v", err)
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = fmt.Sprintf("tax_%d.csv", root.Year)
	}

	if err := exporter.WriteTaxExportCSV(view, output); err != nil {
		root.Log.Fatalf("Error writing tax export: %v", err)
	}

	root.Log.Infof("Exported %d records for %d to %s (total %s)",
		len(view.Records), root.Year, output, view.Stats.Total.StringFixed(2))
}
