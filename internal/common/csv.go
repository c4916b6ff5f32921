// Package common provides shared CSV functionality used by the store and exporters.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/fileutils"
	"fjacquet/hsa-bills/internal/logging"
)

var log = logging.GetLogger()

// Global CSV delimiter - can be configured via centralized config or environment variable
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return // Don't change the logger if nil is passed
	}
	log = logging.NewLogrusAdapterFromLogger(logger)
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Debug("Successfully read CSV data")
	return rows, nil
}

// MarshalCSVBytes marshals a slice of structs to CSV bytes using the
// configured delimiter. Used by callers that stage output before an atomic
// file swap.
func MarshalCSVBytes[TCSVRow any](rows []TCSVRow) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return nil, fmt.Errorf("error marshaling CSV data: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSVFile writes a slice of structs to a CSV file atomically. The
// previous file content survives any mid-write failure.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, filePath string) error {
	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	).Info("Writing CSV file")

	data, err := MarshalCSVBytes(rows)
	if err != nil {
		return err
	}

	if err := fileutils.AtomicWriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	return nil
}
