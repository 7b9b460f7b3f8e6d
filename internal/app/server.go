package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Answerer is what the HTTP layer needs from the application: one
// query in, one summary out.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Server is the HTTP front door: GET /search?q=... returning the final
// summary as JSON. It is the only boundary where failures surface as
// hard errors; everything beneath it degrades in place.
type Server struct {
	answerer Answerer
	srv      *http.Server
}

// NewServer builds a Server listening on addr once Start is called.
func NewServer(addr string, answerer Answerer) *Server {
	s := &Server{answerer: answerer}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routing for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type searchResponse struct {
	Query   string `json:"query"`
	Results string `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	q := r.URL.Query().Get("q")
	if len(strings.TrimSpace(q)) < 2 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter q must be at least 2 characters"})
		return
	}

	results, err := s.answerer.Answer(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("search request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
