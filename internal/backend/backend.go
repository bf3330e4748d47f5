// Package backend defines the two-operation contract the proofreading
// frontend depends on (load a document, compare two texts) and its
// implementations: an in-process bridge, an HTTP client and a spawned
// local server.
package backend

import (
	"context"

	"proofdiff/internal/failure"
	"proofdiff/internal/textdiff"
)

// LoadRequest asks the backend to decode and normalize a document.
// FileContent is standard base64.
type LoadRequest struct {
	FileName      string `json:"file_name"`
	FileContent   string `json:"file_content"`
	FileExtension string `json:"file_extension"`
	FileIndex     int    `json:"file_index"`
}

type LoadResponse struct {
	Success        bool   `json:"success"`
	FileName       string `json:"file_name,omitempty"`
	OriginalText   string `json:"original_text,omitempty"`
	NormalizedText string `json:"normalized_text,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}

type CompareRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

type CompareResponse struct {
	Success bool               `json:"success"`
	Diffs1  []textdiff.Segment `json:"diffs1,omitempty"`
	Diffs2  []textdiff.Segment `json:"diffs2,omitempty"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Backend is the document loader and comparator. A returned error means the
// call did not complete (transport); a response with Success=false is a
// rejection carrying a user-facing message.
type Backend interface {
	LoadFile(ctx context.Context, req LoadRequest) (*LoadResponse, error)
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
}

// Err converts a rejected load into a BackendRejection failure.
func (r *LoadResponse) Err() error {
	if r == nil {
		return failure.New(failure.BackendRejection, "empty response from backend")
	}
	if r.Success {
		return nil
	}
	return failure.New(failure.BackendRejection, "%s", rejectionText(r.Message, r.Error, "failed to load file"))
}

// Err converts a rejected comparison into a BackendRejection failure.
func (r *CompareResponse) Err() error {
	if r == nil {
		return failure.New(failure.BackendRejection, "empty response from backend")
	}
	if r.Success {
		return nil
	}
	return failure.New(failure.BackendRejection, "%s", rejectionText(r.Message, r.Error, "comparison failed"))
}

// rejectionText prefers the user-facing message; the raw error detail is
// shown only when the backend sent nothing else.
func rejectionText(msg, errText, fallback string) string {
	switch {
	case msg != "":
		return msg
	case errText != "":
		return errText
	default:
		return fallback
	}
}
