package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofdiff/internal/failure"
)

func TestHTTPRejectionShowsBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"error":"raw detail","message":"need two texts to compare"}`))
	}))
	defer srv.Close()

	resp, err := NewHTTP(srv.URL, time.Second).Compare(context.Background(), CompareRequest{Text1: "a"})
	require.NoError(t, err)
	rej := resp.Err()
	require.Error(t, rej)
	assert.True(t, failure.Is(rej, failure.BackendRejection))
	assert.Equal(t, "need two texts to compare", failure.Message(rej))
}

func TestHTTPRejectionFallsBackToErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"unsupported file type"}`))
	}))
	defer srv.Close()

	resp, err := NewHTTP(srv.URL, time.Second).LoadFile(context.Background(), LoadRequest{FileName: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "unsupported file type", failure.Message(resp.Err()))
}
