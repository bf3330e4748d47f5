package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second
	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes int64 = 256 << 20
)

// StatusError is returned by PostJSON when the response is not 2xx and the
// body could not be decoded into the caller's value.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("POST %s: %s (%d)", e.URL, e.Body, e.Status)
}

// PostJSON sends in as JSON and decodes the response body into out. A non-2xx
// response whose body decodes cleanly is not an error: the caller inspects
// out. Anything else is.
func PostJSON(ctx context.Context, client *http.Client, url string, in, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if derr := json.Unmarshal(body, out); derr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{URL: url, Status: resp.StatusCode, Body: snippet(body)}
		}
		return fmt.Errorf("decode response: %w", derr)
	}
	return nil
}

func snippet(b []byte) string {
	if len(b) > 4096 {
		b = b[:4096]
	}
	return string(bytes.TrimSpace(b))
}

// WaitHTTPUp polls url until it answers with a status below 500, ctx is
// done, or timeout elapses.
func WaitHTTPUp(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req) // #nosec G107
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 500 {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %s", url)
		case <-tick.C:
		}
	}
}
