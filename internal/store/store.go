// Package store provides the CSV-backed record store for healthcare bills.
//
// The store is the only mutable state in the system. It is an explicit handle
// bound to one backing file; every mutation goes through Append, which
// validates, derives the year/month fields, and persists write-through. The
// backing file is replaced atomically so a failed save never truncates or
// corrupts existing data.
package store

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/common"
	"fjacquet/hsa-bills/internal/dateutils"
	"fjacquet/hsa-bills/internal/fileutils"
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

// RecordStore holds all bill records backed by a persistent CSV file.
// Records are kept in insertion order. The zero value is not usable;
// construct with NewRecordStore and call Load before reading.
type RecordStore struct {
	filePath string
	records  []models.BillRecord
	now      func() time.Time
}

// NewRecordStore creates a store handle bound to the given backing file.
// The file is not touched until Load or Append is called.
func NewRecordStore(filePath string) *RecordStore {
	return &RecordStore{
		filePath: filePath,
		now:      time.Now,
	}
}

// FilePath returns the path of the backing CSV file.
func (s *RecordStore) FilePath() string {
	return s.filePath
}

// Load reads the persisted records from the backing file. A missing file is
// the first-run case and yields an empty store, not an error. An unreadable
// or malformed file yields a StorageError so existing data is never silently
// replaced by an empty store.
func (s *RecordStore) Load() error {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		log.WithField(logging.FieldStoreFile, s.filePath).Debug("Backing file does not exist, starting empty")
		s.records = nil
		return nil
	}

	records, err := common.ReadCSVFile[models.BillRecord](s.filePath)
	if err != nil {
		return &billerror.StorageError{Path: s.filePath, Op: "load", Err: err}
	}

	s.records = records
	log.WithFields(
		logging.Field{Key: logging.FieldStoreFile, Value: s.filePath},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Debug("Loaded records from backing file")
	return nil
}

// All returns a snapshot copy of the records in insertion order.
func (s *RecordStore) All() []models.BillRecord {
	snapshot := make([]models.BillRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Count returns the number of records currently in the store.
func (s *RecordStore) Count() int {
	return len(s.records)
}

// Append validates the record, derives its year and month from the service
// date, stamps added_on, and persists the full store back to the backing
// file before returning. On any error the in-memory state and the backing
// file are left unchanged.
func (s *RecordStore) Append(record models.BillRecord) (models.BillRecord, error) {
	date, _, err := dateutils.ParseDate(record.Date)
	if err != nil {
		return models.BillRecord{}, &billerror.ValidationError{
			Field:  "date",
			Value:  record.Date,
			Reason: "not a recognizable calendar date",
		}
	}

	if record.Amount.IsNegative() {
		return models.BillRecord{}, &billerror.ValidationError{
			Field:  "amount",
			Value:  record.Amount.String(),
			Reason: "must not be negative",
		}
	}

	// Normalize and derive
	record.Date = dateutils.ToISODate(date)
	record.Year = date.Year()
	record.Month = int(date.Month())
	record.Category = models.NormalizeCategory(record.Category)
	record.AddedOn = s.now().Format(time.RFC3339)

	updated := append(s.All(), record)
	if err := s.save(updated); err != nil {
		return models.BillRecord{}, err
	}

	s.records = updated
	log.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: record.Provider},
		logging.Field{Key: logging.FieldAmount, Value: record.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldCategory, Value: record.Category},
	).Info("Appended bill record")
	return record, nil
}

// save persists the given record set write-through. Volumes are small, so
// rewriting the whole file on every append is acceptable.
func (s *RecordStore) save(records []models.BillRecord) error {
	data, err := common.MarshalCSVBytes(records)
	if err != nil {
		return &billerror.StorageError{Path: s.filePath, Op: "save", Err: err}
	}

	if err := writeFile(s.filePath, data); err != nil {
		return &billerror.StorageError{Path: s.filePath, Op: "save", Err: err}
	}
	return nil
}

// writeFile is swapped out in tests to simulate storage failures.
var writeFile = func(path string, data []byte) error {
	return fileutils.AtomicWriteFile(path, data, 0o644)
}
