package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"

	"fjacquet/hsa-bills/internal/aggregator"
	"fjacquet/hsa-bills/internal/common"
	"fjacquet/hsa-bills/internal/dateutils"
	"fjacquet/hsa-bills/internal/fileutils"
	"fjacquet/hsa-bills/internal/logging"
	"fjacquet/hsa-bills/internal/models"
)

// sectionWriter accumulates the blank-line-separated sections of an export
// file. Each section has a title row, a header row, and data rows.
type sectionWriter struct {
	buf bytes.Buffer
	err error
}

func (w *sectionWriter) section(title string, write func(cw *csv.Writer) error) {
	if w.err != nil {
		return
	}
	if w.buf.Len() > 0 {
		w.buf.WriteString("\n")
	}
	cw := csv.NewWriter(&w.buf)
	cw.Comma = common.Delimiter
	if err := cw.Write([]string{title}); err != nil {
		w.err = err
		return
	}
	if err := write(cw); err != nil {
		w.err = err
		return
	}
	cw.Flush()
	w.err = cw.Error()
}

func (w *sectionWriter) records(title string, records []models.BillRecord) {
	if w.err != nil {
		return
	}
	if w.buf.Len() > 0 {
		w.buf.WriteString("\n")
	}
	cw := csv.NewWriter(&w.buf)
	cw.Comma = common.Delimiter
	if err := cw.Write([]string{title}); err != nil {
		w.err = err
		return
	}
	cw.Flush()
	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(cw)); err != nil {
		w.err = err
	}
}

// WriteTaxExportCSV writes the tax export view as one CSV file with four
// sections: record detail, category totals, monthly totals, and overall
// summary statistics.
func WriteTaxExportCSV(view *TaxExportView, filePath string) error {
	w := &sectionWriter{}

	w.records(fmt.Sprintf("Healthcare Bills %d", view.Year), view.Records)

	w.section("Category Totals", func(cw *csv.Writer) error {
		if err := cw.Write([]string{"category", "count", "total"}); err != nil {
			return err
		}
		for _, category := range sortedKeys(view.CategoryTotals) {
			summary := view.CategoryTotals[category]
			if err := cw.Write([]string{
				category,
				strconv.Itoa(summary.Count),
				summary.Total.StringFixed(2),
			}); err != nil {
				return err
			}
		}
		return nil
	})

	w.section("Monthly Totals", func(cw *csv.Writer) error {
		if err := cw.Write([]string{"month", "total"}); err != nil {
			return err
		}
		for month := 1; month <= 12; month++ {
			if err := cw.Write([]string{
				dateutils.MonthName(month),
				view.MonthlyTotals[month].StringFixed(2),
			}); err != nil {
				return err
			}
		}
		return nil
	})

	w.section("Summary", func(cw *csv.Writer) error {
		if err := cw.Write([]string{"metric", "value"}); err != nil {
			return err
		}
		rows := [][]string{
			{"Tax Year", strconv.Itoa(view.Year)},
			{"Number of Bills", strconv.Itoa(view.Stats.Count)},
			{"Total Amount", view.Stats.Total.StringFixed(2)},
			{"Minimum Bill", view.Stats.Min.StringFixed(2)},
			{"Maximum Bill", view.Stats.Max.StringFixed(2)},
			{"Average Bill", view.Stats.Mean.StringFixed(2)},
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})

	if w.err != nil {
		return fmt.Errorf("error building tax export: %w", w.err)
	}

	if err := fileutils.AtomicWriteFile(filePath, w.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing tax export: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: filePath},
		logging.Field{Key: logging.FieldYear, Value: view.Year},
	).Info("Wrote tax export")
	return nil
}

// WriteHSAExportCSV writes the HSA view as one CSV file with two sections:
// eligible record detail and year-by-year totals.
func WriteHSAExportCSV(view *HSAView, filePath string) error {
	w := &sectionWriter{}

	w.records("HSA-Eligible Expenses", view.Records)

	w.section("Yearly Totals", func(cw *csv.Writer) error {
		if err := cw.Write([]string{"year", "count", "total"}); err != nil {
			return err
		}
		years := make([]int, 0, len(view.YearlyTotals))
		for year := range view.YearlyTotals {
			years = append(years, year)
		}
		sort.Ints(years)
		for _, year := range years {
			summary := view.YearlyTotals[year]
			if err := cw.Write([]string{
				strconv.Itoa(year),
				strconv.Itoa(summary.Count),
				summary.Total.StringFixed(2),
			}); err != nil {
				return err
			}
		}
		return nil
	})

	if w.err != nil {
		return fmt.Errorf("error building HSA export: %w", w.err)
	}

	if err := fileutils.AtomicWriteFile(filePath, w.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing HSA export: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(view.Records)},
	).Info("Wrote HSA reconciliation export")
	return nil
}

func sortedKeys(m map[string]aggregator.Summary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
