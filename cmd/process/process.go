// Package process handles batch processing of PDF bills
package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/cmd/root"
	"fjacquet/hsa-bills/internal/extractor"
	"fjacquet/hsa-bills/internal/inference"
	"fjacquet/hsa-bills/internal/processor"
	"fjacquet/hsa-bills/internal/validation"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process a directory of PDF bills into the store",
	Long: `Process all PDF bills in a directory: extract their text, infer the
bill fields, and append the resulting records to the store. Documents
that cannot be processed are reported and skipped; the batch always
runs to completion.

Example:
  hsa-bills process -i bills/ --recursive`,
	Run: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input", "i", "", "Directory containing PDF bills")
	Cmd.Flags().BoolVarP(&root.Recursive, "recursive", "R", false, "Scan subdirectories as well")
	_ = Cmd.MarkFlagRequired("input")
}

func processFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Process command called")

	if err := validation.IsValidInputDir(root.InputDir); err != nil {
		root.Log.Fatalf("Invalid input directory: %v", err)
	}

	s := root.OpenStore()

	categorizer, err := inference.NewKeywordCategorizerFromFile(root.Cfg.Categorization.RulesFile)
	if err != nil {
		root.Log.Fatalf("Error loading categorization rules: %v", err)
	}

	p := processor.New(extractor.NewPDFExtractor(), root.NewInferrer(), categorizer, s)

	outcomes, err := p.ProcessDirectory(cmd.Context(), root.InputDir, root.Recursive)
	if err != nil {
		root.Log.Fatalf("Error processing directory: %v", err)
	}

	for _, o := range outcomes {
		if o.Status == processor.StatusFailed {
			root.Log.Warnf("Skipped %s: %v", o.File, o.Err)
		}
	}

	added, failed := processor.Summarize(outcomes)
	root.Log.Info(fmt.Sprintf("Processing completed. %d records added, %d documents skipped.", added, failed))
}
