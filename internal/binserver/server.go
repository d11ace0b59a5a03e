// Package binserver is a small JSONBin-compatible document server. It holds bins in
// memory and serves the two endpoints the catalog client uses, which makes it the
// remote store for local development (`mitra serve-bin`) and for integration tests.
package binserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const maxBodyBytes = 10 << 20

// Options configure a Server.
type Options struct {
	// MasterKey, when set, is required in the X-Master-Key header of every bin request.
	MasterKey      string
	Logger         *zap.Logger
	AllowedOrigins []string
}

type bin struct {
	record    json.RawMessage
	createdAt time.Time
	versions  int
}

// Server stores bins and serves the JSONBin v3 read/replace endpoints.
type Server struct {
	mu     sync.RWMutex
	bins   map[string]*bin
	writes int

	logger *zap.Logger
	router chi.Router
}

// New builds a Server with its router.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		bins:   make(map[string]*bin),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", MasterKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)
	r.Route("/v3/b", func(r chi.Router) {
		r.Use(RequireMasterKey(opts.MasterKey))
		r.Get("/{binID}/latest", s.getLatest)
		r.Put("/{binID}", s.putBin)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Seed creates or replaces a bin. The record must be a JSON object.
func (s *Server) Seed(binID string, record []byte) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(binID, record)
	return nil
}

// Record returns a copy of the stored record for binID.
func (s *Server) Record(binID string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bins[binID]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), b.record...), true
}

// Writes returns how many PUT requests replaced a bin.
func (s *Server) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("bin server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down bin server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) store(binID string, record []byte) *bin {
	b, ok := s.bins[binID]
	if !ok {
		b = &bin{createdAt: time.Now().UTC()}
		s.bins[binID] = b
	}
	b.record = append(json.RawMessage(nil), record...)
	b.versions++
	return b
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getLatest(w http.ResponseWriter, r *http.Request) {
	binID := chi.URLParam(r, "binID")

	s.mu.RLock()
	b, ok := s.bins[binID]
	var resp latestResponse
	if ok {
		resp = latestResponse{
			Record: append(json.RawMessage(nil), b.record...),
			Metadata: metadata{
				ID:        binID,
				Private:   true,
				CreatedAt: b.createdAt.Format(time.RFC3339),
			},
		}
	}
	s.mu.RUnlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, "Bin not found or it doesn't belong to your account")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) putBin(w http.ResponseWriter, r *http.Request) {
	binID := chi.URLParam(r, "binID")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	if len(body) > maxBodyBytes {
		writeMessage(w, http.StatusRequestEntityTooLarge, "Bin size exceeds the limit")
		return
	}
	if err := validateRecord(body); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if _, ok := s.bins[binID]; !ok {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Bin not found or it doesn't belong to your account")
		return
	}
	s.store(binID, body)
	s.writes++
	s.mu.Unlock()

	s.logger.Debug("bin replaced", zap.String("bin", binID), zap.Int("bytes", len(body)))
	writeJSON(w, http.StatusOK, latestResponse{
		Record:   body,
		Metadata: metadata{ParentID: binID, Private: true},
	})
}

type metadata struct {
	ID        string `json:"id,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	Private   bool   `json:"private"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type latestResponse struct {
	Record   json.RawMessage `json:"record"`
	Metadata metadata        `json:"metadata"`
}

func validateRecord(record []byte) error {
	trimmed := bytes.TrimSpace(record)
	if len(trimmed) == 0 {
		return errors.New("Bin cannot be blank")
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return errors.New("Invalid JSON. Please try again")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
