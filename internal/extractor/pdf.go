package extractor

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"fjacquet/hsa-bills/internal/billerror"
	"fjacquet/hsa-bills/internal/fileutils"
	"fjacquet/hsa-bills/internal/logging"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logging.NewLogrusAdapterFromLogger(logger)
	}
}

// PDFExtractor is the production Extractor implementation. It reads the PDF
// in-process first and falls back to the external pdftotext command
// (poppler-utils) for files the library cannot decode.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText extracts text content from a PDF file at the given path.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	if !fileutils.FileExists(path) {
		return "", &billerror.ExtractionError{Path: path, Err: fmt.Errorf("file does not exist")}
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return "", &billerror.ExtractionError{Path: path, Err: fmt.Errorf("not a PDF file")}
	}

	text, libErr := extractWithLibrary(path)
	if libErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	log.WithField(logging.FieldFile, path).Debug("Library extraction failed, trying pdftotext")

	text, cmdErr := extractWithPdftotext(path)
	if cmdErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	if libErr == nil {
		libErr = fmt.Errorf("no text content")
	}
	return "", &billerror.ExtractionError{
		Path: path,
		Err:  fmt.Errorf("library: %v; pdftotext: %v", libErr, cmdErr),
	}
}

// extractWithLibrary reads the PDF in-process. The library panics on some
// malformed files, so the panic is converted to an error.
func extractWithLibrary(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			fmt.Fprintf(&sb, "--- Page %d ---\n%s\n", i, pageText)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// extractWithPdftotext shells out to pdftotext as a last resort.
func extractWithPdftotext(path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
