package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/hsa-bills/internal/models"
)

func record(date string, year int, provider, category, amount string) models.BillRecord {
	return models.BillRecord{
		Date:     date,
		Year:     year,
		Provider: provider,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func testRecords() []models.BillRecord {
	return []models.BillRecord{
		record("2024-03-15", 2024, "Dr. Smith", "medical", "450.00"),
		record("2024-05-02", 2024, "City Dental", "dental", "75.00"),
		record("2023-01-01", 2023, "Dr. Smith", "medical", "100.00"),
		record("2023-07-20", 2023, "VisionWorks", "vision", "50.00"),
	}
}

func TestByYear(t *testing.T) {
	byYear := ByYear(testRecords())
	require.Len(t, byYear, 2)

	assert.Equal(t, 2, byYear[2024].Count)
	assert.True(t, decimal.RequireFromString("525.00").Equal(byYear[2024].Total))
	assert.Equal(t, 2, byYear[2023].Count)
	assert.True(t, decimal.RequireFromString("150.00").Equal(byYear[2023].Total))
}

func TestByCategory_NormalizesKeys(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, "A", "Medical", "10.00"),
		record("2024-01-02", 2024, "B", "  medical ", "20.00"),
		record("2024-01-03", 2024, "C", "DENTAL", "5.00"),
	}

	byCategory := ByCategory(records)
	require.Len(t, byCategory, 2)
	assert.Equal(t, 2, byCategory["medical"].Count)
	assert.True(t, decimal.RequireFromString("30.00").Equal(byCategory["medical"].Total))
	assert.Equal(t, 1, byCategory["dental"].Count)
}

func TestByProvider(t *testing.T) {
	byProvider := ByProvider(testRecords())
	require.Len(t, byProvider, 3)
	assert.Equal(t, 2, byProvider["Dr. Smith"].Count)
	assert.True(t, decimal.RequireFromString("550.00").Equal(byProvider["Dr. Smith"].Total))
}

func TestEmptyInput_AllDimensions(t *testing.T) {
	assert.Empty(t, ByYear(nil))
	assert.Empty(t, ByCategory(nil))
	assert.Empty(t, ByProvider(nil))
	assert.Empty(t, HSASubset(nil, nil))
	assert.True(t, GrandTotal(nil).IsZero())
}

func TestCrossAggregationConsistency(t *testing.T) {
	records := testRecords()
	grand := GrandTotal(records)

	yearTotal := decimal.Zero
	for _, s := range ByYear(records) {
		yearTotal = yearTotal.Add(s.Total)
	}
	categoryTotal := decimal.Zero
	for _, s := range ByCategory(records) {
		categoryTotal = categoryTotal.Add(s.Total)
	}
	providerTotal := decimal.Zero
	for _, s := range ByProvider(records) {
		providerTotal = providerTotal.Add(s.Total)
	}

	assert.True(t, grand.Equal(yearTotal))
	assert.True(t, grand.Equal(categoryTotal))
	assert.True(t, grand.Equal(providerTotal))
}

func TestHSASubset_EligibleSet(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, "A", "medical", "100.00"),
		record("2024-01-02", 2024, "B", "vision", "50.00"),
		record("2024-01-03", 2024, "C", "dental", "75.00"),
	}

	subset := HSASubset(records, []string{"medical", "dental"})
	require.Len(t, subset, 2)
	assert.True(t, decimal.RequireFromString("175.00").Equal(GrandTotal(subset)))
	for _, r := range subset {
		assert.NotEqual(t, "vision", r.Category)
	}
}

func TestHSASubset_DefaultEligibleSet(t *testing.T) {
	records := []models.BillRecord{
		record("2024-01-01", 2024, "A", "medical", "100.00"),
		record("2024-01-02", 2024, "B", "Pharmacy", "25.00"),
		record("2024-01-03", 2024, "C", "cosmetic", "500.00"),
	}

	subset := HSASubset(records, nil)
	require.Len(t, subset, 2)
}

func TestNoFloatDrift_ManySmallAmounts(t *testing.T) {
	var records []models.BillRecord
	for i := 0; i < 1000; i++ {
		records = append(records, record("2024-01-01", 2024, "A", "medical", "0.10"))
	}
	assert.True(t, decimal.RequireFromString("100.00").Equal(GrandTotal(records)))
}
