package inference

import "strings"

// ParseFieldsFromResponse parses the "Key: value" lines of a model response
// into Fields. Unknown lines and surrounding prose are ignored; missing keys
// leave the corresponding field empty. Bracket placeholders the model may
// echo back verbatim are treated as empty.
func ParseFieldsFromResponse(response string) Fields {
	var fields Fields

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Provider:"):
			fields.Provider = cleanValue(strings.TrimPrefix(line, "Provider:"))
		case strings.HasPrefix(line, "Date:"):
			fields.Date = cleanValue(strings.TrimPrefix(line, "Date:"))
		case strings.HasPrefix(line, "Amount:"):
			fields.Amount = cleanValue(strings.TrimPrefix(line, "Amount:"))
		case strings.HasPrefix(line, "Category:"):
			fields.Category = cleanValue(strings.TrimPrefix(line, "Category:"))
		case strings.HasPrefix(line, "Description:"):
			fields.Description = cleanValue(strings.TrimPrefix(line, "Description:"))
		}
	}

	return fields
}

func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	// Models sometimes echo the placeholder brackets from the prompt
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return ""
	}
	return value
}
