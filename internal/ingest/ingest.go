// Package ingest reads a local document, gates it by extension and hands it
// to the backend loader.
package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"proofdiff/internal/backend"
	"proofdiff/internal/document"
	"proofdiff/internal/failure"
)

// File is a document already in memory.
type File struct {
	Name string
	Data []byte
}

// Outcome is a successful load.
type Outcome struct {
	Slot           int
	SourceName     string
	OriginalText   string
	NormalizedText string
}

// Ingester loads files into slots through a Backend.
type Ingester struct {
	be       backend.Backend
	log      zerolog.Logger
	readFile func(string) ([]byte, error)
}

func New(be backend.Backend, log zerolog.Logger) *Ingester {
	return &Ingester{be: be, log: log.With().Str("component", "ingest").Logger(), readFile: os.ReadFile}
}

// CheckExtension returns an UnsupportedFormat failure unless name ends in
// .txt or .docx (any case).
func CheckExtension(name string) error {
	ext := document.Extension(name)
	if document.Supported(ext) {
		return nil
	}
	if ext == "" {
		return failure.New(failure.UnsupportedFormat, "unsupported file %q: expected .txt or .docx", filepath.Base(name))
	}
	return failure.New(failure.UnsupportedFormat, "unsupported format %s: please choose a .txt or .docx file", ext)
}

// Path loads the file at path into slot. The extension is checked before
// the file is read.
func (in *Ingester) Path(ctx context.Context, slot int, path string) (Outcome, error) {
	if err := CheckExtension(path); err != nil {
		return Outcome{}, err
	}
	data, err := in.readFile(path)
	if err != nil {
		in.log.Warn().Err(err).Str("path", path).Msg("read failed")
		return Outcome{}, failure.Wrap(failure.ReadFailure, err, fmt.Sprintf("cannot read %s", filepath.Base(path)))
	}
	return in.File(ctx, slot, File{Name: filepath.Base(path), Data: data})
}

// File loads an in-memory document into slot.
func (in *Ingester) File(ctx context.Context, slot int, f File) (Outcome, error) {
	if err := CheckExtension(f.Name); err != nil {
		return Outcome{}, err
	}
	ext := document.Extension(f.Name)
	req := backend.LoadRequest{
		FileName:      f.Name,
		FileContent:   Encode(ext, f.Data),
		FileExtension: ext,
		FileIndex:     slot,
	}
	resp, err := in.be.LoadFile(ctx, req)
	if err != nil {
		if failure.KindOf(err) == failure.Unknown {
			err = failure.Wrap(failure.TransportFailure, err, "load request failed")
		}
		in.log.Error().Err(err).Str("file", f.Name).Int("slot", slot).Msg("load call failed")
		return Outcome{}, err
	}
	if err := resp.Err(); err != nil {
		in.log.Warn().Err(err).Str("file", f.Name).Int("slot", slot).Msg("load rejected")
		return Outcome{}, err
	}
	name := resp.FileName
	if name == "" {
		name = f.Name
	}
	return Outcome{
		Slot:           slot,
		SourceName:     name,
		OriginalText:   resp.OriginalText,
		NormalizedText: resp.NormalizedText,
	}, nil
}

// Encode produces the transport form of a document. Text files that are
// valid UTF-8 are sent as text (BOM stripped); everything else, including
// .docx and text in a legacy encoding, is sent as raw bytes for the backend
// to decode.
func Encode(ext string, data []byte) string {
	if strings.EqualFold(ext, document.ExtTXT) {
		trimmed := strings.TrimPrefix(string(data), "\ufeff")
		if utf8.ValidString(trimmed) {
			return base64.StdEncoding.EncodeToString([]byte(trimmed))
		}
	}
	return base64.StdEncoding.EncodeToString(data)
}
