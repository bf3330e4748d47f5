// Package document turns the bytes of an uploaded file into its plain text.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ExtTXT  = ".txt"
	ExtDOCX = ".docx"
)

var (
	// ErrUnsupported is returned for any extension other than .txt and .docx.
	ErrUnsupported = errors.New("unsupported file format")
	// ErrUndecodable is returned when a document cannot be read as text.
	ErrUndecodable = errors.New("cannot decode document")
)

// DefaultMaxXMLBytes bounds the decompressed size of a .docx body.
const DefaultMaxXMLBytes = 64 << 20

// Extension returns the lower-cased extension of name including the dot,
// or "" when name has none.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Supported reports whether ext (with or without a leading dot, any case)
// is an accepted document type.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext == ExtTXT || ext == ExtDOCX
}

// Decoder extracts text from document bytes.
type Decoder struct {
	MaxXMLBytes int64
}

// Decode returns the original text of a document with the given extension.
func (d Decoder) Decode(ext string, data []byte) (string, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	switch ext {
	case ExtTXT:
		return DecodeText(data)
	case ExtDOCX:
		limit := d.MaxXMLBytes
		if limit <= 0 {
			limit = DefaultMaxXMLBytes
		}
		return decodeDOCX(data, limit)
	case ".doc":
		return "", fmt.Errorf("%w: legacy .doc, save the file as .docx", ErrUnsupported)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}
