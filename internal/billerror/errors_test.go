package billerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "amount", Value: "-0.01", Reason: "must not be negative"}
	assert.Equal(t, "invalid amount '-0.01': must not be negative", err.Error())
}

func TestNoDataError_Message(t *testing.T) {
	err := &NoDataError{Filter: "year 2019"}
	assert.Equal(t, "no records found for year 2019", err.Error())
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Path: "bills.csv", Op: "save", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bills.csv")
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	inner := &ExtractionError{Path: "bill.pdf", Err: errors.New("encrypted")}
	wrapped := fmt.Errorf("processing failed: %w", inner)

	var extractErr *ExtractionError
	assert.True(t, errors.As(wrapped, &extractErr))
	assert.Equal(t, "bill.pdf", extractErr.Path)
}

func TestInferenceError_Unwrap(t *testing.T) {
	cause := errors.New("model unavailable")
	err := &InferenceError{Source: "bill.pdf", Err: cause}
	assert.ErrorIs(t, err, cause)
}
