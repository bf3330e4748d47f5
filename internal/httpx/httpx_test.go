package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

func TestPostJSONDecodesErrorBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in echo
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(echo{OK: false, Text: "rejected " + in.Text})
	}))
	defer srv.Close()

	var out echo
	err := PostJSON(context.Background(), srv.Client(), srv.URL, echo{Text: "a"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "rejected a", out.Text)
}

func TestPostJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	var out echo
	err := PostJSON(context.Background(), nil, srv.URL, echo{}, &out)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Contains(t, se.Body, "gateway exploded")
}

func TestWaitHTTPUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	assert.NoError(t, WaitHTTPUp(context.Background(), srv.URL, time.Second))

	srv.Close()
	assert.Error(t, WaitHTTPUp(context.Background(), srv.URL, 300*time.Millisecond))
}
