// Package extractor provides text extraction from PDF healthcare bills and
// directory scanning for bill documents. Extraction is behind an interface
// so the processing pipeline can be tested without real PDF files.
package extractor

// Extractor defines the interface for extracting text from bill documents.
type Extractor interface {
	// ExtractText extracts text content from a document at the given path.
	// Returns the extracted text as a string or an error if extraction fails.
	ExtractText(path string) (string, error)
}

// MockExtractor implements Extractor for testing purposes.
// It returns predefined mock data instead of reading real files.
type MockExtractor struct {
	// Texts maps file paths to the text that should be returned for them.
	// When a path is missing from the map, MockText is returned instead.
	Texts map[string]string
	// Errs maps file paths to errors, for simulating per-file failures.
	Errs     map[string]error
	MockText string
	MockErr  error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(path string) (string, error) {
	if err, ok := e.Errs[path]; ok {
		return "", err
	}
	if e.MockErr != nil {
		return "", e.MockErr
	}
	if text, ok := e.Texts[path]; ok {
		return text, nil
	}
	return e.MockText, nil
}
