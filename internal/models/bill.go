// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/hsa-bills/internal/dateutils"
)

// BillRecord represents one processed healthcare bill in the tracking store.
// The csv tags define the backing-store column layout; Year and Month are
// derived from Date by the store and never supplied independently.
type BillRecord struct {
	Date            string          `csv:"date"`             // Service date in YYYY-MM-DD format
	Provider        string          `csv:"provider"`         // Provider or facility name
	Amount          decimal.Decimal `csv:"amount"`           // Billed amount, non-negative
	Category        string          `csv:"category"`         // medical, dental, vision, pharmacy, ...
	Description     string          `csv:"description"`      // Free-text description, optional
	SourceReference string          `csv:"source_reference"` // Path of the origin document, optional
	Year            int             `csv:"year"`             // Derived from Date
	Month           int             `csv:"month"`            // Derived from Date, 1-12
	AddedOn         string          `csv:"added_on"`         // RFC3339 insertion timestamp, set once
}

// Well-known categories. The set is open: any non-empty string is a valid
// category, these are the ones the inference layer is steered towards.
const (
	CategoryMedical  = "medical"
	CategoryDental   = "dental"
	CategoryVision   = "vision"
	CategoryPharmacy = "pharmacy"
	CategoryOther    = "other"
)

// DefaultHSAEligibleCategories are the categories counted as HSA-eligible
// when no explicit set is configured.
var DefaultHSAEligibleCategories = []string{
	CategoryMedical,
	CategoryDental,
	CategoryVision,
	CategoryPharmacy,
}

// NormalizeCategory lowercases and trims a category label. An empty label
// falls back to medical, matching the tracker's historical default.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return CategoryMedical
	}
	return c
}

// ParseAmount parses a string amount to decimal.Decimal, tolerating currency
// symbols, thousand separators and comma decimal points as they appear on
// billing documents.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	amount = strings.ReplaceAll(amount, "CHF", "")
	amount = strings.ReplaceAll(amount, "EUR", "")
	amount = strings.ReplaceAll(amount, "€", "")
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")

	// A comma is a thousand separator when a dot is present, a decimal
	// point otherwise.
	if strings.Contains(amount, ".") {
		amount = strings.ReplaceAll(amount, ",", "")
	} else {
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	return decimal.NewFromString(amount)
}

// ParsedDate returns the record's service date as a time.Time.
func (r *BillRecord) ParsedDate() (time.Time, error) {
	t, _, err := dateutils.ParseDate(r.Date)
	return t, err
}

// IsHSAEligible reports whether the record's category belongs to the given
// eligible set. Comparison is case-insensitive and whitespace-trimmed.
func (r *BillRecord) IsHSAEligible(eligible []string) bool {
	category := NormalizeCategory(r.Category)
	for _, e := range eligible {
		if category == NormalizeCategory(e) {
			return true
		}
	}
	return false
}
