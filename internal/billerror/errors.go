// Package billerror defines the error taxonomy for the bill tracking core.
// Callers match these with errors.As to decide whether a failure is a bad
// input, an empty result, or a storage problem.
package billerror

import "fmt"

// ValidationError represents a record rejected before persistence.
// The store is left unchanged when a ValidationError is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// NoDataError signals that an export or view matched zero records.
// It is reportable but not fatal; no output file should be written.
type NoDataError struct {
	Filter string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no records found for %s", e.Filter)
}

// StorageError represents a failure reading or writing the backing store.
// On load corruption the existing file must be left untouched.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a failure to extract text from a source document.
// A batch continues with the next document after one of these.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InferenceError represents a failure of the field-inference collaborator.
// A batch continues with the next document after one of these.
type InferenceError struct {
	Source string
	Err    error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("field inference failed for %s: %v", e.Source, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
