// Package inference extracts structured bill fields from document text.
// The primary implementation calls the Gemini API; a keyword-based
// categorizer serves as the offline fallback for the category field.
package inference

import (
	"context"

	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/logging"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logging.NewLogrusAdapterFromLogger(logger)
	}
}

// Fields holds the structured fields inferred from bill text. All fields are
// best-effort: any of them may be empty when the document did not yield a
// confident value, and callers must tolerate that.
type Fields struct {
	Provider    string
	Date        string
	Amount      string
	Category    string
	Description string
}

// Inferrer defines the interface for field-inference collaborators.
// Implementations interact with an external AI service (e.g. Google Gemini).
type Inferrer interface {
	// Infer takes document text and returns the structured fields found in
	// it, or an error if inference fails entirely.
	Infer(ctx context.Context, text string) (Fields, error)
}

// MockInferrer implements Inferrer for testing purposes.
type MockInferrer struct {
	// ByText maps document text to the fields that should be returned for
	// it. When the text is missing from the map, MockFields is returned.
	ByText     map[string]Fields
	MockFields Fields
	MockErr    error
	Calls      int
}

// Infer returns the predefined mock fields or error.
func (m *MockInferrer) Infer(ctx context.Context, text string) (Fields, error) {
	m.Calls++
	if m.MockErr != nil {
		return Fields{}, m.MockErr
	}
	if fields, ok := m.ByText[text]; ok {
		return fields, nil
	}
	return m.MockFields, nil
}
