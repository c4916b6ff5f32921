package extractor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/hsa-bills/internal/logging"
)

// ScanForPDFs scans a directory for PDF files and returns their paths in
// sorted order for consistent batch processing. With recursive set, all
// subdirectories are walked as well.
func ScanForPDFs(directory string, recursive bool) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory %s: %w", directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", directory)
	}

	var pdfFiles []string
	if recursive {
		err = filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.WithError(err).WithField(logging.FieldFile, path).Warn("Error walking path")
				return nil // Continue walking even if one path fails
			}
			if !d.IsDir() && isPDF(path) {
				pdfFiles = append(pdfFiles, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", directory, err)
		}
	} else {
		entries, err := os.ReadDir(directory)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", directory, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				pdfFiles = append(pdfFiles, filepath.Join(directory, entry.Name()))
			}
		}
	}

	sort.Strings(pdfFiles)

	log.WithFields(
		logging.Field{Key: logging.FieldInputDir, Value: directory},
		logging.Field{Key: logging.FieldCount, Value: len(pdfFiles)},
	).Debug("Scanned directory for PDF files")
	return pdfFiles, nil
}

func isPDF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}
