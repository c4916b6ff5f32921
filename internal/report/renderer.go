package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"fjacquet/hsa-bills/internal/logging"
)

var log = logging.GetLogger()

// Render produces the summary in the requested format (text, json or csv).
// It returns the rendered report as a byte slice and an error if the format
// is unsupported.
func Render(summary Summary, format string) ([]byte, error) {
	switch format {
	case "text", "":
		return []byte(summary.RenderText()), nil
	case "json":
		return renderJSON(summary)
	case "csv":
		return renderCSV(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func renderJSON(summary Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.WithError(err).Error("Failed to marshal JSON summary")
		return nil, fmt.Errorf("failed to marshal JSON summary: %w", err)
	}
	return data, nil
}

// renderCSV writes each breakdown as its own titled section of key,count,
// total,percent rows, separated by blank lines.
func renderCSV(summary Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	sections := []struct {
		title string
		rows  []DimensionRow
	}{
		{"By Year", summary.ByYear},
		{"By Category", summary.ByCategory},
		{"By Provider", summary.ByProvider},
	}

	if err := w.Write([]string{"metric", "value"}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"records", fmt.Sprintf("%d", summary.Count)}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"grand_total", summary.GrandTotal.StringFixed(2)}); err != nil {
		return nil, err
	}
	if summary.FirstDate != "" {
		if err := w.Write([]string{"first_date", summary.FirstDate}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{"last_date", summary.LastDate}); err != nil {
			return nil, err
		}
	}

	for _, section := range sections {
		if len(section.rows) == 0 {
			continue
		}
		w.Flush()
		buf.WriteString("\n")
		if err := w.Write([]string{section.title}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{"key", "count", "total", "percent"}); err != nil {
			return nil, err
		}
		for _, row := range section.rows {
			record := []string{
				row.Key,
				fmt.Sprintf("%d", row.Count),
				row.Total.StringFixed(2),
				row.Percent.StringFixed(1),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
