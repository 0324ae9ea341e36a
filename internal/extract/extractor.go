// Package extract provides plain-text extraction from PDF and DOCX documents.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/bogoseo/internal/models"
)

// ErrUnsupportedFormat is returned for any extension outside {.pdf, .docx}.
// It is terminal for the upload attempt: nothing is registered.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// CorruptDocumentError wraps a parser failure for a supported format.
type CorruptDocumentError struct {
	Type models.DocType
	Err  error
}

func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("corrupt %s document: %v", e.Type, e.Err)
}

func (e *CorruptDocumentError) Unwrap() error { return e.Err }

// TypeForExtension maps a file extension (with or without leading dot) to a
// document type. ok is false for unsupported extensions.
func TypeForExtension(ext string) (models.DocType, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return models.DocTypePDF, true
	case "docx":
		return models.DocTypeDOCX, true
	}
	return "", false
}

// Extractor extracts plain text from document bytes.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content and detected type.
func (e *Extractor) Extract(path string) (string, models.DocType, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, filepath.Ext(path))
}

// ExtractBytes extracts text from content based on the given extension.
// ext may include the leading dot (e.g. ".pdf"). Returns ErrUnsupportedFormat
// for unknown extensions and a *CorruptDocumentError when parsing fails.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, models.DocType, error) {
	docType, ok := TypeForExtension(ext)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	var (
		text string
		err  error
	)
	switch docType {
	case models.DocTypePDF:
		text, err = extractPDF(content)
	case models.DocTypeDOCX:
		text, err = extractDOCX(content)
	}
	if err != nil {
		return "", docType, &CorruptDocumentError{Type: docType, Err: err}
	}
	return text, docType, nil
}
