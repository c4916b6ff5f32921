// Package add handles manual entry of bill records
package add

import (
	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/cmd/root"
	"fjacquet/hsa-bills/internal/models"
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add a healthcare bill record by hand",
	Long: `Add a single bill record to the store from command-line flags.
The record is validated and persisted before the command returns.

Example:
  hsa-bills add -d 2024-03-15 -p "Dr. Smith" -a 450.00 -c medical`,
	Run: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Date, "date", "d", "", "Service date (e.g. 2024-03-15)")
	Cmd.Flags().StringVarP(&root.Provider, "provider", "p", "", "Provider name")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Bill amount")
	Cmd.Flags().StringVarP(&root.Category, "category", "c", "", "Category (default: medical)")
	Cmd.Flags().StringVarP(&root.Description, "description", "n", "", "Description (optional)")
	Cmd.Flags().StringVarP(&root.SourceRef, "source", "r", "", "Source document reference (optional)")
	_ = Cmd.MarkFlagRequired("date")
	_ = Cmd.MarkFlagRequired("provider")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) {
	amount, err := models.ParseAmount(root.Amount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", root.Amount, err)
	}

	s := root.OpenStore()
	added, err := s.Append(models.BillRecord{
		Date:            root.Date,
		Provider:        root.Provider,
		Amount:          amount,
		Category:        root.Category,
		Description:     root.Description,
		SourceReference: root.SourceRef,
	})
	if err != nil {
		root.Log.Fatalf("Error adding record: %v", err)
	}

	root.Log.Infof("Added %s bill for %s on %s: %s",
		added.Category, added.Provider, added.Date, added.Amount.StringFixed(2))
	root.Log.Infof("Store now holds %d records", s.Count())
}
