// Package summary handles the on-demand store summary command
package summary

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/cmd/root"
	"fjacquet/hsa-bills/internal/fileutils"
	"fjacquet/hsa-bills/internal/report"
	"fjacquet/hsa-bills/internal/validation"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals and breakdowns for the whole store",
	Long: `Summarize the record store: record count, grand total, date range,
and breakdowns by year, category and provider. Output goes to the
terminal unless -o names a file.

Example:
  hsa-bills summary --format json -o summary.json`,
	Run: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Format, "format", "f", "text", "Output format: text, json or csv")
}

func summaryFunc(cmd *cobra.Command, args []string) {
	if err := validation.IsValidOutputFormat(root.Format); err != nil {
		root.Log.Fatalf("Invalid format: %v", err)
	}

	s := root.OpenStore()

	rendered, err := report.Render(report.BuildSummary(s.All()), root.Format)
	if err != nil {
		root.Log.Fatalf("Error rendering summary: %v", err)
	}

	if root.SharedFlags.Output == "" {
		fmt.Fprintln(os.Stdout, string(rendered))
		return
	}

	if err := fileutils.AtomicWriteFile(root.SharedFlags.Output, rendered, 0o644); err != nil {
		root.Log.Fatalf("Error writing summary file: %v", err)
	}
	root.Log.Infof("Summary written to %s", root.SharedFlags.Output)
}
