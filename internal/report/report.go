// Package report builds the on-demand summary of the record store and
// renders it for the terminal or for machine consumption.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/hsa-bills/internal/aggregator"
	"fjacquet/hsa-bills/internal/models"
)

// DimensionRow is one line of a per-dimension breakdown table.
type DimensionRow struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// Summary is the full snapshot of the store used by the summary command.
type Summary struct {
	Count      int             `json:"count"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	FirstDate  string          `json:"first_date,omitempty"`
	LastDate   string          `json:"last_date,omitempty"`
	ByYear     []DimensionRow  `json:"by_year"`
	ByCategory []DimensionRow  `json:"by_category"`
	ByProvider []DimensionRow  `json:"by_provider"`
}

// BuildSummary computes the summary over all records in the store. An empty
// store produces a valid zero-count summary, not an error.
func BuildSummary(records []models.BillRecord) Summary {
	summary := Summary{
		Count:      len(records),
		GrandTotal: aggregator.GrandTotal(records),
	}

	for _, r := range records {
		if summary.FirstDate == "" || r.Date < summary.FirstDate {
			summary.FirstDate = r.Date
		}
		if r.Date > summary.LastDate {
			summary.LastDate = r.Date
		}
	}

	summary.ByYear = yearRows(aggregator.ByYear(records), summary.GrandTotal)
	summary.ByCategory = stringRows(aggregator.ByCategory(records), summary.GrandTotal)
	summary.ByProvider = stringRows(aggregator.ByProvider(records), summary.GrandTotal)
	return summary
}

func yearRows(byYear map[int]aggregator.Summary, grand decimal.Decimal) []DimensionRow {
	rows := make([]DimensionRow, 0, len(byYear))
	for year, s := range byYear {
		rows = append(rows, DimensionRow{
			Key:     fmt.Sprintf("%d", year),
			Count:   s.Count,
			Total:   s.Total,
			Percent: percentOf(s.Total, grand),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

func stringRows(byKey map[string]aggregator.Summary, grand decimal.Decimal) []DimensionRow {
	rows := make([]DimensionRow, 0, len(byKey))
	for key, s := range byKey {
		rows = append(rows, DimensionRow{
			Key:     key,
			Count:   s.Count,
			Total:   s.Total,
			Percent: percentOf(s.Total, grand),
		})
	}
	// Largest totals first, ties broken alphabetically for stable output.
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).DivRound(whole, 1)
}

// RenderText formats the summary for terminal output.
func (s Summary) RenderText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Healthcare Bills Summary\n")
	fmt.Fprintf(&b, "========================\n")
	fmt.Fprintf(&b, "Records:     %d\n", s.Count)
	fmt.Fprintf(&b, "Grand total: %s\n", s.GrandTotal.StringFixed(2))
	if s.FirstDate != "" {
		fmt.Fprintf(&b, "Date range:  %s to %s\n", s.FirstDate, s.LastDate)
	}

	writeTable(&b, "By Year", s.ByYear)
	writeTable(&b, "By Category", s.ByCategory)
	writeTable(&b, "By Provider", s.ByProvider)
	return b.String()
}

func writeTable(b *strings.Builder, title string, rows []DimensionRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, row := range rows {
		fmt.Fprintf(b, "  %-24s %4d  %12s  %5s%%\n",
			row.Key, row.Count, row.Total.StringFixed(2), row.Percent.StringFixed(1))
	}
}
