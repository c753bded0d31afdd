package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		want     string
	}{
		{name: "declared type wins", data: []byte("anything"), declared: "image/webp", want: MIMEWEBP},
		{name: "declared type normalized", data: []byte("x"), declared: " Image/JPG ; q=1", want: MIMEJPEG},
		{name: "sniffed when missing", data: pngHeader, declared: "", want: MIMEPNG},
		{name: "sniffed when generic", data: []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), declared: "application/octet-stream", want: MIMEPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDocument(tt.data, tt.declared).MIMEType)
		})
	}
}

func TestDocument_Validate(t *testing.T) {
	assert.NoError(t, Document{Data: pngHeader, MIMEType: MIMEPNG}.Validate())

	err := Document{MIMEType: MIMEPNG}.Validate()
	assert.True(t, errors.Is(err, apperrors.ErrEmptyDocument))

	err = Document{Data: []byte("hello"), MIMEType: "text/plain"}.Validate()
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedMedia))
	assert.True(t, apperrors.IsValidation(err))
}

func TestIsSupportedMIME(t *testing.T) {
	assert.True(t, IsSupportedMIME("application/pdf"))
	assert.True(t, IsSupportedMIME("IMAGE/PNG"))
	assert.False(t, IsSupportedMIME("image/gif"))
}
