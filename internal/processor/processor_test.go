package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/extractor"
	"fjacquet/hsa-bills/internal/inference"
	"fjacquet/hsa-bills/internal/store"
)

func newTestStore(t *testing.T) *store.RecordStore {
	t.Helper()
	s := store.NewRecordStore(filepath.Join(t.TempDir(), "bills.csv"))
	require.NoError(t, s.Load())
	return s
}

func writeFakePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644))
	return path
}

func TestProcessFile_AddsRecord(t *testing.T) {
	s := newTestStore(t)
	ext := extractor.NewMockExtractor("Dr. Smith invoice text", nil)
	inf := &inference.MockInferrer{
		MockFields: inference.Fields{
			Provider:    "Dr. Smith",
			Date:        "2024-03-15",
			Amount:      "450.00",
			Category:    "medical",
			Description: "Annual checkup",
		},
	}
	p := New(ext, inf, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/smith.pdf")
	require.NoError(t, outcome.Err)
	assert.Equal(t, StatusAdded, outcome.Status)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, "Dr. Smith", outcome.Record.Provider)
	assert.Equal(t, 2024, outcome.Record.Year)
	assert.Equal(t, "bills/smith.pdf", outcome.Record.SourceReference)
	assert.Equal(t, 1, s.Count())
}

func TestProcessFile_ExtractionFailureDoesNotTouchStore(t *testing.T) {
	s := newTestStore(t)
	ext := extractor.NewMockExtractor("", &billerror.ExtractionError{
		Path: "bills/broken.pdf",
		Err:  errors.New("no text layer"),
	})
	inf := &inference.MockInferrer{}
	p := New(ext, inf, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/broken.pdf")
	assert.Equal(t, StatusFailed, outcome.Status)
	var extErr *billerror.ExtractionError
	assert.ErrorAs(t, outcome.Err, &extErr)
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, inf.Calls, "inference should not run when extraction fails")
}

func TestProcessFile_MissingAmountRejected(t *testing.T) {
	s := newTestStore(t)
	ext := extractor.NewMockExtractor("illegible scan", nil)
	inf := &inference.MockInferrer{
		MockFields: inference.Fields{Provider: "Dr. Smith", Date: "2024-03-15"},
	}
	p := New(ext, inf, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/noamount.pdf")
	assert.Equal(t, StatusFailed, outcome.Status)
	var valErr *billerror.ValidationError
	require.ErrorAs(t, outcome.Err, &valErr)
	assert.Equal(t, "amount", valErr.Field)
	assert.Equal(t, 0, s.Count())
}

func TestProcessFile_KeywordFallbackWhenCategoryMissing(t *testing.T) {
	s := newTestStore(t)
	ext := extractor.NewMockExtractor("Dental cleaning at Bright Smiles", nil)
	inf := &inference.MockInferrer{
		MockFields: inference.Fields{
			Provider: "Bright Smiles",
			Date:     "2024-05-02",
			Amount:   "120.00",
		},
	}
	p := New(ext, inf, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/dental.pdf")
	require.Equal(t, StatusAdded, outcome.Status)
	assert.Equal(t, "dental", outcome.Record.Category)
}

func TestProcessFile_NegativeAmountTakenAbsolute(t *testing.T) {
	s := newTestStore(t)
	ext := extractor.NewMockExtractor("credit adjustment", nil)
	inf := &inference.MockInferrer{
		MockFields: inference.Fields{
			Provider: "Clinic",
			Date:     "2024-01-10",
			Amount:   "-75.50",
		},
	}
	p := New(ext, inf, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/credit.pdf")
	require.Equal(t, StatusAdded, outcome.Status)
	assert.Equal(t, "75.50", outcome.Record.Amount.StringFixed(2))
}

func TestProcessDirectory_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFakePDF(t, dir, "alpha.pdf")
	bad := writeFakePDF(t, dir, "beta.pdf")
	good2 := writeFakePDF(t, dir, "gamma.pdf")

	s := newTestStore(t)
	ext := &extractor.MockExtractor{
		Texts: map[string]string{
			good:  "alpha bill",
			good2: "gamma bill",
		},
		Errs: map[string]error{
			bad: &billerror.ExtractionError{Path: bad, Err: errors.New("encrypted")},
		},
	}
	inf := &inference.MockInferrer{
		MockFields: inference.Fields{
			Provider: "Clinic",
			Date:     "2024-02-01",
			Amount:   "50.00",
			Category: "medical",
		},
	}
	p := New(ext, inf, nil, s)

	outcomes, err := p.ProcessDirectory(context.Background(), dir, false)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	added, failed := Summarize(outcomes)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, s.Count())

	// Scan order is sorted, so beta.pdf is the middle outcome.
	assert.Equal(t, StatusFailed, outcomes[1].Status)
	assert.Equal(t, bad, outcomes[1].File)
}

func TestProcessDirectory_ScanErrorFailsBatch(t *testing.T) {
	s := newTestStore(t)
	p := New(extractor.NewMockExtractor("", nil), &inference.MockInferrer{}, nil, s)

	_, err := p.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

func TestProcessDirectory_ContextCancellationStopsBatch(t *testing.T) {
	dir := t.TempDir()
	writeFakePDF(t, dir, "one.pdf")

	s := newTestStore(t)
	p := New(extractor.NewMockExtractor("text", nil), &inference.MockInferrer{}, nil, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := p.ProcessDirectory(ctx, dir, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestProcessFile_NilInferrerFails(t *testing.T) {
	s := newTestStore(t)
	p := New(extractor.NewMockExtractor("text", nil), nil, nil, s)

	outcome := p.ProcessFile(context.Background(), "bills/any.pdf")
	assert.Equal(t, StatusFailed, outcome.Status)
	var infErr *billerror.InferenceError
	assert.ErrorAs(t, outcome.Err, &infErr)
}
