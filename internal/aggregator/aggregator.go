// Package aggregator computes derived summaries over an in-memory snapshot
// of bill records. Every function here is pure: no mutation, no I/O, and all
// monetary arithmetic stays in decimals so totals never drift.
package aggregator

import (
	"github.com/shopspring/decimal"

	"fjacquet/hsa-bills/internal/models"
)

// Summary holds the count and decimal total for one aggregation key.
type Summary struct {
	Count int
	Total decimal.Decimal
}

func add(summary Summary, amount decimal.Decimal) Summary {
	return Summary{
		Count: summary.Count + 1,
		Total: summary.Total.Add(amount),
	}
}

// ByYear aggregates records into per-year count and total.
// Empty input yields an empty map, never an error.
func ByYear(records []models.BillRecord) map[int]Summary {
	result := make(map[int]Summary)
	for _, r := range records {
		result[r.Year] = add(result[r.Year], r.Amount)
	}
	return result
}

// ByCategory aggregates records into per-category count and total.
// Category keys are normalized (trimmed, lowercased) so "Dental " and
// "dental" land in the same bucket.
func ByCategory(records []models.BillRecord) map[string]Summary {
	result := make(map[string]Summary)
	for _, r := range records {
		key := models.NormalizeCategory(r.Category)
		result[key] = add(result[key], r.Amount)
	}
	return result
}

// ByProvider aggregates records into per-provider count and total.
// Provider names are matched verbatim; they come from the same inference
// pipeline so spelling is already consistent per provider.
func ByProvider(records []models.BillRecord) map[string]Summary {
	result := make(map[string]Summary)
	for _, r := range records {
		result[r.Provider] = add(result[r.Provider], r.Amount)
	}
	return result
}

// HSASubset filters records to those whose category belongs to the eligible
// set. Matching is case-insensitive and whitespace-trimmed. A nil eligible
// set means the default HSA-eligible categories.
func HSASubset(records []models.BillRecord, eligible []string) []models.BillRecord {
	if eligible == nil {
		eligible = models.DefaultHSAEligibleCategories
	}

	subset := make([]models.BillRecord, 0, len(records))
	for _, r := range records {
		if r.IsHSAEligible(eligible) {
			subset = append(subset, r)
		}
	}
	return subset
}

// GrandTotal sums all record amounts.
func GrandTotal(records []models.BillRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
