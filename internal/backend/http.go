package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"proofdiff/internal/failure"
	"proofdiff/internal/httpx"
)

const (
	LoadPath    = "/api/load_file"
	ComparePath = "/api/compare"
	HealthPath  = "/healthz"
)

// HTTP talks to a proofdiff server (or any server speaking the same JSON).
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP returns a client for the server at baseURL.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = httpx.DefaultTimeout
	}
	return &HTTP{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server root.
func (h *HTTP) BaseURL() string { return h.base }

func (h *HTTP) LoadFile(ctx context.Context, req LoadRequest) (*LoadResponse, error) {
	var out LoadResponse
	if err := httpx.PostJSON(ctx, h.client, h.base+LoadPath, req, &out); err != nil {
		return nil, failure.Wrap(failure.TransportFailure, err, "backend unreachable")
	}
	return &out, nil
}

func (h *HTTP) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	var out CompareResponse
	if err := httpx.PostJSON(ctx, h.client, h.base+ComparePath, req, &out); err != nil {
		return nil, failure.Wrap(failure.TransportFailure, err, "backend unreachable")
	}
	return &out, nil
}
