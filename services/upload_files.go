package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github/itish2003/growthvision/models"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrContentMismatch     = errors.New("file content does not match its declared type")
)

// acceptedMIME lists, per declared type, the detected MIME types (or their
// parents) that are accepted. A .docx is a zip container, and a minimal one
// may not be recognised as Word, so plain zip is accepted too.
var acceptedMIME = map[models.DeclaredType][]string{
	models.TypeTXT:  {"text/plain"},
	models.TypePDF:  {"application/pdf"},
	models.TypeDOCX: {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
}

// sanitizeFilename strips directories from an uploaded filename so a client
// cannot smuggle path segments (e.g. "../../etc/passwd") to the ingestion
// service.
func sanitizeFilename(filename string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return base, nil
}

// DeclaredTypeFor derives the declared document type from the extension.
func DeclaredTypeFor(filename string) (models.DeclaredType, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		return models.TypeTXT, nil
	case ".docx":
		return models.TypeDOCX, nil
	case ".pdf":
		return models.TypePDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

// checkContent sniffs the bytes and rejects content that cannot be the
// declared type.
func checkContent(declared models.DeclaredType, content []byte) error {
	accepted, ok := acceptedMIME[declared]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, declared)
	}
	detected := mimetype.Detect(content)
	for m := detected; m != nil; m = m.Parent() {
		for _, want := range accepted {
			if m.Is(want) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: declared %s, detected %s", ErrContentMismatch, declared, detected.String())
}

// NewFileUpload builds a validated-for-type FileUpload from a raw upload.
func NewFileUpload(filename string, content []byte) (models.FileUpload, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return models.FileUpload{}, fmt.Errorf("%w: %v", ErrInvalidIngestion, err)
	}
	declared, err := DeclaredTypeFor(name)
	if err != nil {
		return models.FileUpload{}, err
	}
	if len(content) > 0 {
		if err := checkContent(declared, content); err != nil {
			return models.FileUpload{}, err
		}
	}
	return models.FileUpload{Filename: name, Content: content, DeclaredType: declared}, nil
}
