package backend

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"proofdiff/internal/document"
	"proofdiff/internal/normalize"
	"proofdiff/internal/textdiff"
)

// Local serves the contract in-process.
type Local struct {
	engine  textdiff.Engine
	decoder document.Decoder
	log     zerolog.Logger
}

// NewLocal builds the in-process backend. A nil engine means difflib.
func NewLocal(engine textdiff.Engine, decoder document.Decoder, log zerolog.Logger) *Local {
	if engine == nil {
		engine = textdiff.Difflib{}
	}
	return &Local{engine: engine, decoder: decoder, log: log.With().Str("component", "backend").Logger()}
}

// Engine returns the diff engine in use.
func (l *Local) Engine() textdiff.Engine { return l.engine }

func (l *Local) LoadFile(ctx context.Context, req LoadRequest) (*LoadResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := req.FileExtension
	if ext == "" {
		ext = document.Extension(req.FileName)
	}
	if !document.Supported(ext) {
		return reject(req, fmt.Sprintf("unsupported file format %q: only .txt and .docx are accepted", ext)), nil
	}
	raw, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		return reject(req, "file content is not valid base64"), nil
	}
	original, err := l.decoder.Decode(ext, raw)
	if err != nil {
		l.log.Warn().Err(err).Str("file", req.FileName).Int("slot", req.FileIndex).Msg("decode failed")
		msg := "cannot read document"
		if errors.Is(err, document.ErrUnsupported) {
			msg = err.Error()
		}
		return reject(req, msg), nil
	}
	normalized := normalize.Normalize(original)
	l.log.Debug().
		Str("file", req.FileName).
		Int("slot", req.FileIndex).
		Int("original_len", len([]rune(original))).
		Int("normalized_len", len([]rune(normalized))).
		Msg("document loaded")
	return &LoadResponse{
		Success:        true,
		FileName:       req.FileName,
		OriginalText:   original,
		NormalizedText: normalized,
		Message:        "file loaded",
	}, nil
}

func reject(req LoadRequest, msg string) *LoadResponse {
	return &LoadResponse{Success: false, FileName: req.FileName, Message: msg, Error: msg}
}

func (l *Local) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Text1 == "" || req.Text2 == "" {
		return &CompareResponse{Success: false, Message: "two texts are required for comparison"}, nil
	}
	start := time.Now()
	res := l.engine.Compare(req.Text1, req.Text2)
	l.log.Debug().
		Str("engine", l.engine.Name()).
		Int("segments1", len(res.Left)).
		Int("segments2", len(res.Right)).
		Dur("took", time.Since(start)).
		Msg("compared")
	return &CompareResponse{
		Success: true,
		Diffs1:  nonNil(res.Left),
		Diffs2:  nonNil(res.Right),
		Message: "comparison complete",
	}, nil
}

func nonNil(s []textdiff.Segment) []textdiff.Segment {
	if s == nil {
		return []textdiff.Segment{}
	}
	return s
}
