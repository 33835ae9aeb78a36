// Package server exposes the client over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/francois95140/unisql"
	"github.com/francois95140/unisql/engine/translator"
)

// CommandParam is the query parameter carrying the command
const CommandParam = "sql_command"

// Server serves GET /sql/{backend} and GET /translate/{backend}
type Server struct {
	client *unisql.Client
	logger *slog.Logger
	router chi.Router
}

// New creates a server around client.
// If logger is nil, a discard logger is used.
func New(client *unisql.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{client: client, logger: logger}

	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.health)
	r.Get("/sql/{backend}", s.execute)
	r.Get("/translate/{backend}", s.translate)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve listens on addr and blocks until the context is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.logger.Info("starting server", slog.String("addr", addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// ============================================================================
// HANDLERS
// ============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type resultResponse struct {
	Result any `json:"result"`
}

type translateResponse struct {
	Backend   string `json:"backend"`
	Operation string `json:"operation"`
	Query     string `json:"query"`
	Params    []any  `json:"params,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request) {
	command, ok := s.command(w, r)
	if !ok {
		return
	}

	result, err := s.client.Execute(r.Context(), chi.URLParam(r, "backend"), command)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: result})
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	command, ok := s.command(w, r)
	if !ok {
		return
	}

	q, err := s.client.Translate(chi.URLParam(r, "backend"), command)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := translateResponse{
		Backend:   q.Backend().String(),
		Operation: q.Operation(),
		Query:     q.String(),
	}
	if rq, ok := q.(*translator.RelationalQuery); ok {
		resp.Query = rq.SQL
		resp.Params = rq.Params
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: resp})
}

func (s *Server) command(w http.ResponseWriter, r *http.Request) (string, bool) {
	command := r.URL.Query().Get(CommandParam)
	if command == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("missing %s parameter", CommandParam)})
		return "", false
	}
	return command, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var uerr *unisql.Error
	if errors.As(err, &uerr) {
		resp.Kind = string(uerr.Kind)
		status = statusFor(uerr.Kind)
	}
	s.logger.Debug("request failed", slog.Int("status", status), slog.String("error", resp.Error))
	writeJSON(w, status, resp)
}

func statusFor(kind unisql.ErrorKind) int {
	switch kind {
	case unisql.KindBackend:
		return http.StatusNotFound
	case unisql.KindParse, unisql.KindPayload, unisql.KindValidation, unisql.KindInput:
		return http.StatusBadRequest
	case unisql.KindUnsupported:
		return http.StatusUnprocessableEntity
	case unisql.KindConnection:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
