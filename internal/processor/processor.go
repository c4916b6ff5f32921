// Package processor drives the bill-processing pipeline: scan a directory
// for PDF bills, extract their text, infer structured fields, and append the
// resulting records to the store. Failures are local to one document; the
// batch always runs to completion and reports a per-file outcome.
package processor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/extractor"
	"fjacquet/hsa-bills/internal/inference"
	"fjacquet/hsa-bills/internal/logging"
	"fjacquet/hsa-bills/internal/models"
	"fjacquet/hsa-bills/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logging.NewLogrusAdapterFromLogger(logger)
	}
}

// Status describes the result of processing one document.
type Status string

const (
	StatusAdded  Status = "added"
	StatusFailed Status = "failed"
)

// Outcome is the per-document result of a batch run.
type Outcome struct {
	File   string
	Status Status
	Record *models.BillRecord
	Err    error
}

// Processor wires the extraction and inference collaborators to the record
// store.
type Processor struct {
	extractor   extractor.Extractor
	inferrer    inference.Inferrer
	categorizer *inference.KeywordCategorizer
	store       *store.RecordStore
}

// New creates a Processor. The inferrer may be nil when AI is disabled; the
// keyword categorizer then provides the category and the remaining fields
// must come from the document text itself, which in practice means records
// are rejected unless inference supplied a date and amount.
func New(ext extractor.Extractor, inf inference.Inferrer, categorizer *inference.KeywordCategorizer, recordStore *store.RecordStore) *Processor {
	if categorizer == nil {
		categorizer = inference.NewKeywordCategorizer(nil)
	}
	return &Processor{
		extractor:   ext,
		inferrer:    inf,
		categorizer: categorizer,
		store:       recordStore,
	}
}

// ProcessDirectory scans the directory for PDF bills and processes each one.
// The returned outcomes preserve scan order. Only the scan itself can fail
// the whole batch; per-document errors are captured in their outcome.
func (p *Processor) ProcessDirectory(ctx context.Context, directory string, recursive bool) ([]Outcome, error) {
	files, err := extractor.ScanForPDFs(directory, recursive)
	if err != nil {
		return nil, err
	}

	log.WithFields(
		logging.Field{Key: logging.FieldInputDir, Value: directory},
		logging.Field{Key: logging.FieldCount, Value: len(files)},
	).Info("Processing bill documents")

	outcomes := make([]Outcome, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, p.ProcessFile(ctx, file))
	}
	return outcomes, nil
}

// ProcessFile runs the extract-infer-append pipeline for a single document.
func (p *Processor) ProcessFile(ctx context.Context, file string) Outcome {
	text, err := p.extractor.ExtractText(file)
	if err != nil {
		log.WithError(err).WithField(logging.FieldFile, file).Warn("Could not process this document")
		return Outcome{File: file, Status: StatusFailed, Err: err}
	}

	fields, err := p.inferFields(ctx, file, text)
	if err != nil {
		log.WithError(err).WithField(logging.FieldFile, file).Warn("Could not process this document")
		return Outcome{File: file, Status: StatusFailed, Err: err}
	}

	record, err := p.buildRecord(file, text, fields)
	if err != nil {
		log.WithError(err).WithField(logging.FieldFile, file).Warn("Rejected bill record")
		return Outcome{File: file, Status: StatusFailed, Err: err}
	}

	added, err := p.store.Append(record)
	if err != nil {
		return Outcome{File: file, Status: StatusFailed, Err: err}
	}

	return Outcome{File: file, Status: StatusAdded, Record: &added}
}

func (p *Processor) inferFields(ctx context.Context, file, text string) (inference.Fields, error) {
	if p.inferrer == nil {
		return inference.Fields{}, &billerror.InferenceError{
			Source: file,
			Err:    fmt.Errorf("no field-inference collaborator configured"),
		}
	}
	return p.inferrer.Infer(ctx, text)
}

// buildRecord converts best-effort inferred fields into a record. A missing
// category gets the keyword fallback; a missing or unparseable amount
// rejects the record, since a bill without an amount cannot be tracked.
func (p *Processor) buildRecord(file, text string, fields inference.Fields) (models.BillRecord, error) {
	if fields.Amount == "" {
		return models.BillRecord{}, &billerror.ValidationError{
			Field:  "amount",
			Value:  "",
			Reason: "not found in document",
		}
	}
	amount, err := models.ParseAmount(fields.Amount)
	if err != nil {
		return models.BillRecord{}, &billerror.ValidationError{
			Field:  "amount",
			Value:  fields.Amount,
			Reason: "not a parseable number",
		}
	}
	if amount.IsNegative() {
		amount = amount.Abs()
	}

	category := fields.Category
	if category == "" {
		category = p.categorizer.Categorize(text)
	}

	return models.BillRecord{
		Date:            fields.Date,
		Provider:        fields.Provider,
		Amount:          amount,
		Category:        category,
		Description:     fields.Description,
		SourceReference: file,
	}, nil
}

// Summarize tallies a batch's outcomes for reporting.
func Summarize(outcomes []Outcome) (added, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusAdded:
			added++
		case StatusFailed:
			failed++
		}
	}
	return added, failed
}
