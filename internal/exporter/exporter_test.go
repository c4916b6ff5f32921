package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/models"
)

func record(date string, year, month int, provider, category, amount string) models.BillRecord {
	return models.BillRecord{
		Date:     date,
		Year:     year,
		Month:    month,
		Provider: provider,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestBuildTaxExport_FiltersAndTotals(t *testing.T) {
	records := []models.BillRecord{
		record("2024-03-15", 2024, 3, "Dr. Smith", "medical", "450.00"),
		record("2023-01-01", 2023, 1, "Dr. Smith", "medical", "100.00"),
	}

	view, err := BuildTaxExport(records, 2024)
	require.NoError(t, err)

	require.Len(t, view.Records, 1)
	assert.Equal(t, "2024-03-15", view.Records[0].Date)

	require.Len(t, view.CategoryTotals, 1)
	assert.True(t, decimal.RequireFromString("450.00").Equal(view.CategoryTotals["medical"].Total))

	require.Len(t, view.MonthlyTotals, 12)
	assert.True(t, decimal.RequireFromString("450.00").Equal(view.MonthlyTotals[3]))
	for month := 1; month <= 12; month++ {
		if month == 3 {
			continue
		}
		assert.True(t, view.MonthlyTotals[month].IsZero(), "month %d should be zero", month)
	}

	assert.Equal(t, 1, view.Stats.Count)
	assert.True(t, decimal.RequireFromString("450.00").Equal(view.Stats.Total))
}

func TestBuildTaxExport_EmptyYearIsNoDataError(t *testing.T) {
	records := []models.BillRecord{
		record("2023-01-01", 2023, 1, "Dr. Smith", "medical", "100.00"),
	}

	_, err := BuildTaxExport(records, 2019)
	var noData *billerror.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Contains(t, noData.Error(), "2019")
}

func TestBuildTaxExport_SortsByDate(t *testing.T) {
	records := []models.BillRecord{
		record("2024-09-10", 2024, 9, "B", "dental", "20.00"),
		record("2024-02-01", 2024, 2, "A", "medical", "10.00"),
		record("2024-05-05", 2024, 5, "C", "vision", "30.00"),
	}

	view, err := BuildTaxExport(records, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", view.Records[0].Date)
	assert.Equal(t, "2024-05-05", view.Records[1].Date)
	assert.Equal(t, "2024-09-10", view.Records[2].Date)
}

func TestBuildTaxExport_Stats(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, 1, "A", "medical", "100.00"),
		record("2024-02-01", 2024, 2, "B", "medical", "200.00"),
		record("2024-03-01", 2024, 3, "C", "medical", "50.00"),
	}

	view, err := BuildTaxExport(records, 2024)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Stats.Count)
	assert.True(t, decimal.RequireFromString("350.00").Equal(view.Stats.Total))
	assert.True(t, decimal.RequireFromString("50.00").Equal(view.Stats.Min))
	assert.True(t, decimal.RequireFromString("200.00").Equal(view.Stats.Max))
	assert.True(t, decimal.RequireFromString("116.67").Equal(view.Stats.Mean))
}

func TestBuildHSAExport(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, 1, "A", "medical", "100.00"),
		record("2024-02-01", 2024, 2, "B", "vision", "50.00"),
		record("2023-03-01", 2023, 3, "C", "dental", "75.00"),
	}

	view, err := BuildHSAExport(records, []string{"medical", "dental"})
	require.NoError(t, err)

	require.Len(t, view.Records, 2)
	total := decimal.Zero
	for _, r := range view.Records {
		assert.NotEqual(t, "vision", r.Category)
		total = total.Add(r.Amount)
	}
	assert.True(t, decimal.RequireFromString("175.00").Equal(total))

	require.Len(t, view.YearlyTotals, 2)
	assert.True(t, decimal.RequireFromString("100.00").Equal(view.YearlyTotals[2024].Total))
	assert.True(t, decimal.RequireFromString("75.00").Equal(view.YearlyTotals[2023].Total))
}

func TestBuildHSAExport_NoEligibleRecords(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, 1, "A", "cosmetic", "500.00"),
	}

	_, err := BuildHSAExport(records, nil)
	var noData *billerror.NoDataError
	assert.ErrorAs(t, err, &noData)
}

func TestWriteTaxExportCSV_Sections(t *testing.T) {
	records := []models.BillRecord{
		record("2024-03-15", 2024, 3, "Dr. Smith", "medical", "450.00"),
	}
	view, err := BuildTaxExport(records, 2024)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "tax_2024.csv")
	require.NoError(t, WriteTaxExportCSV(view, file))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Healthcare Bills 2024")
	assert.Contains(t, text, "Dr. Smith")
	assert.Contains(t, text, "Category Totals")
	assert.Contains(t, text, "medical,1,450.00")
	assert.Contains(t, text, "Monthly Totals")
	assert.Contains(t, text, "March,450.00")
	assert.Contains(t, text, "January,0.00")
	assert.Contains(t, text, "Summary")
	assert.Contains(t, text, "Total Amount,450.00")
}

func TestWriteHSAExportCSV_Sections(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, 1, "A", "medical", "100.00"),
		record("2023-03-01", 2023, 3, "C", "dental", "75.00"),
	}
	view, err := BuildHSAExport(records, nil)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "hsa.csv")
	require.NoError(t, WriteHSAExportCSV(view, file))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "HSA-Eligible Expenses")
	assert.Contains(t, text, "Yearly Totals")
	assert.Contains(t, text, "2023,1,75.00")
	assert.Contains(t, text, "2024,1,100.00")
}
