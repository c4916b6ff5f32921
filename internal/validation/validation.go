// Package validation checks user-supplied command inputs before any work
// is done with them.
package validation

import (
	"fmt"
	"os"
	"time"
)

// IsValidInputDir checks that the given path exists and is a directory.
func IsValidInputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given summary format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'csv'", format)
	}
}

// IsValidYear checks that the given year is plausible for a bill record.
// Anything before 1900 or more than one year in the future is rejected.
func IsValidYear(year int) error {
	if year < 1900 || year > time.Now().Year()+1 {
		return fmt.Errorf("implausible year: %d", year)
	}
	return nil
}
