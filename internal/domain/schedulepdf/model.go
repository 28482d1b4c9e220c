package schedulepdf

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// MIMEType is the only accepted upload type.
const MIMEType = "application/pdf"

// MaxBytes bounds an uploaded schedule (10 MiB).
const MaxBytes = 10 << 20

const dataURIPrefix = "data:" + MIMEType + ";base64,"

// Domain errors
var (
	ErrNotPDF         = errors.New("please select a valid PDF file")
	ErrEmptyFile      = errors.New("the selected file is empty")
	ErrTooLarge       = errors.New("the selected file is too large")
	ErrInvalidDataURI = errors.New("stored schedule is not a PDF data URI")
)

// Document is an uploaded class schedule held as a data URI.
type Document struct {
	DataURI string
}

// CheckType rejects anything that is not declared as a PDF.
// Called before the file body is read.
func CheckType(contentType string) error {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if !strings.EqualFold(strings.TrimSpace(mediaType), MIMEType) {
		return ErrNotPDF
	}
	return nil
}

// FromBytes encodes raw PDF bytes as a data URI document.
// PRE: CheckType has accepted the declared type
// POST: Returns a document whose Bytes() round-trips data
func FromBytes(data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, ErrEmptyFile
	}
	if len(data) > MaxBytes {
		return Document{}, ErrTooLarge
	}
	return Document{DataURI: dataURIPrefix + base64.StdEncoding.EncodeToString(data)}, nil
}

// Parse validates a stored data URI.
func Parse(dataURI string) (Document, error) {
	if !strings.HasPrefix(dataURI, dataURIPrefix) {
		return Document{}, ErrInvalidDataURI
	}
	return Document{DataURI: dataURI}, nil
}

// Bytes decodes the PDF payload.
// INVARIANT: Document is not mutated
func (d Document) Bytes() ([]byte, error) {
	payload, ok := strings.CutPrefix(d.DataURI, dataURIPrefix)
	if !ok {
		return nil, ErrInvalidDataURI
	}
	return base64.StdEncoding.DecodeString(payload)
}

// Upload status values reported back to the admin views.
const (
	StatusIdle    = "idle"
	StatusSuccess = "success"
	StatusError   = "error"
)

// UploadResult describes the outcome of a schedule upload.
type UploadResult struct {
	Status     string
	FileName   string
	UploadedAt time.Time
}
