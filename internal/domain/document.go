package domain

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

// Supported report media types.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWEBP = "image/webp"
	MIMEPDF  = "application/pdf"
)

var allowedMIMETypes = map[string]bool{
	MIMEJPEG: true,
	MIMEPNG:  true,
	MIMEWEBP: true,
	MIMEPDF:  true,
}

// Document is an uploaded report: raw bytes plus their media type.
type Document struct {
	Data     []byte
	MIMEType string
}

// NewDocument normalizes the declared media type and sniffs the content when
// the declaration is missing or generic.
func NewDocument(data []byte, declared string) Document {
	mimeType := normalizeMIME(declared)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalizeMIME(mimetype.Detect(data).String())
	}
	return Document{Data: data, MIMEType: mimeType}
}

// Validate checks the payload against the supported media types.
func (d Document) Validate() error {
	if len(d.Data) == 0 {
		return apperrors.ErrEmptyDocument
	}
	if !IsSupportedMIME(d.MIMEType) {
		return apperrors.NewUnsupportedMediaError(d.MIMEType)
	}
	return nil
}

// IsSupportedMIME reports whether reports of this media type can be analyzed.
func IsSupportedMIME(mimeType string) bool {
	return allowedMIMETypes[normalizeMIME(mimeType)]
}

func normalizeMIME(raw string) string {
	base, _, _ := strings.Cut(raw, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "image/jpg" {
		return MIMEJPEG
	}
	return base
}
