// Package exporter builds the derived tax-year and HSA reconciliation views
// over a record snapshot and writes them out as sectioned CSV files. Views
// are recomputed from the records on every request; nothing is cached.
package exporter

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/aggregator"
	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/logging"
	"fjacquet/hsa-bills/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logging.NewLogrusAdapterFromLogger(logger)
	}
}

// SummaryStats holds the overall statistics block of a tax export.
type SummaryStats struct {
	Count int
	Total decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
	Mean  decimal.Decimal
}

// TaxExportView is the derived, read-only view for one tax year: the full
// record detail plus category totals, zero-filled monthly totals, and
// overall statistics.
type TaxExportView struct {
	Year           int
	Records        []models.BillRecord
	CategoryTotals map[string]aggregator.Summary
	MonthlyTotals  map[int]decimal.Decimal
	Stats          SummaryStats
}

// HSAView is the derived, read-only view of HSA-eligible records with their
// per-year totals.
type HSAView struct {
	Records      []models.BillRecord
	YearlyTotals map[int]aggregator.Summary
}

// BuildTaxExport filters the records to the given year and computes the tax
// export view. Returns NoDataError when the year has no matching records,
// signaling that no output file should be written.
func BuildTaxExport(records []models.BillRecord, year int) (*TaxExportView, error) {
	var yearRecords []models.BillRecord
	for _, r := range records {
		if r.Year == year {
			yearRecords = append(yearRecords, r)
		}
	}

	if len(yearRecords) == 0 {
		return nil, &billerror.NoDataError{Filter: fmt.Sprintf("year %d", year)}
	}

	sort.SliceStable(yearRecords, func(i, j int) bool {
		return yearRecords[i].Date < yearRecords[j].Date
	})

	// Monthly totals keyed 1-12, zero-filled for quiet months
	monthly := make(map[int]decimal.Decimal, 12)
	for month := 1; month <= 12; month++ {
		monthly[month] = decimal.Zero
	}
	for _, r := range yearRecords {
		monthly[r.Month] = monthly[r.Month].Add(r.Amount)
	}

	stats := computeStats(yearRecords)

	log.WithFields(
		logging.Field{Key: logging.FieldYear, Value: year},
		logging.Field{Key: logging.FieldCount, Value: stats.Count},
	).Debug("Built tax export view")

	return &TaxExportView{
		Year:           year,
		Records:        yearRecords,
		CategoryTotals: aggregator.ByCategory(yearRecords),
		MonthlyTotals:  monthly,
		Stats:          stats,
	}, nil
}

// BuildHSAExport filters the records to the HSA-eligible subset and computes
// its yearly totals. Returns NoDataError when no record is eligible.
func BuildHSAExport(records []models.BillRecord, eligible []string) (*HSAView, error) {
	subset := aggregator.HSASubset(records, eligible)
	if len(subset) == 0 {
		return nil, &billerror.NoDataError{Filter: "HSA-eligible categories"}
	}

	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].Date < subset[j].Date
	})

	return &HSAView{
		Records:      subset,
		YearlyTotals: aggregator.ByYear(subset),
	}, nil
}

func computeStats(records []models.BillRecord) SummaryStats {
	stats := SummaryStats{
		Count: len(records),
		Total: decimal.Zero,
	}
	if stats.Count == 0 {
		return stats
	}

	stats.Min = records[0].Amount
	stats.Max = records[0].Amount
	for _, r := range records {
		stats.Total = stats.Total.Add(r.Amount)
		if r.Amount.LessThan(stats.Min) {
			stats.Min = r.Amount
		}
		if r.Amount.GreaterThan(stats.Max) {
			stats.Max = r.Amount
		}
	}
	stats.Mean = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	return stats
}
