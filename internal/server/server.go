// Package server exposes a Backend over HTTP with the JSON wire format of
// the load_file and compare operations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"proofdiff/internal/backend"
)

// Server is the HTTP front of a Backend.
type Server struct {
	be      backend.Backend
	log     zerolog.Logger
	maxBody int64
}

// New returns a server for be. maxBody caps request bodies in bytes.
func New(be backend.Backend, maxBody int64, log zerolog.Logger) *Server {
	if maxBody <= 0 {
		maxBody = 32 << 20
	}
	return &Server{be: be, log: log.With().Str("component", "server").Logger(), maxBody: maxBody}
}

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(backend.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc(backend.LoadPath, s.handleLoad)
	mux.HandleFunc(backend.ComparePath, s.handleCompare)
	return s.logRequests(cors(mux))
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down")
	return srv.Shutdown(shutCtx)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	var req backend.LoadRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.be.LoadFile(r.Context(), req)
	if err != nil {
		s.log.Error().Err(err).Str("file", req.FileName).Msg("load failed")
		writeJSON(w, http.StatusInternalServerError, backend.LoadResponse{Success: false, Error: err.Error(), Message: "failed to load file"})
		return
	}
	writeJSON(w, statusOf(resp.Success), resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	var req backend.CompareRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.be.Compare(r.Context(), req)
	if err != nil {
		s.log.Error().Err(err).Msg("compare failed")
		writeJSON(w, http.StatusInternalServerError, backend.CompareResponse{Success: false, Error: err.Error(), Message: "comparison failed"})
		return
	}
	writeJSON(w, statusOf(resp.Success), resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		status := http.StatusBadRequest
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		msg := "invalid JSON request: " + err.Error()
		writeJSON(w, status, map[string]any{"success": false, "error": msg, "message": msg})
		return false
	}
	return true
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", "POST, OPTIONS")
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "method not allowed"})
	return false
}

func statusOf(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Max-Age", "3600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
