// Package api exposes the solver over HTTP: POST /solve takes a JSON
// puzzle description and returns the matching words, GET /health is a
// liveness probe. The lexicon is shared, read-only, and swapped atomically
// when the dictionary file changes, so in-flight queries always traverse
// the immutable tree they started on.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/spelledout/sbs/lexicon"
	"github.com/spelledout/sbs/solver"
	"github.com/spelledout/sbs/validator"
)

const solveTimeout = 60 * time.Second

// SolveRequest is the wire form of a solve call. Field names match the
// config file format.
type SolveRequest struct {
	Letters       string `json:"letters"`
	Present       string `json:"present"`
	MinWordLength int    `json:"minimal-word-length"`
	MaxWordLength int    `json:"maximal-word-length"`
	Repeats       int    `json:"repeats"`
	CaseSensitive bool   `json:"case-sensitive"`

	Validator    string `json:"validator,omitempty"`
	APIKey       string `json:"api-key,omitempty"`
	ValidatorURL string `json:"validator-url,omitempty"`
}

// Server serves solve requests against a single dictionary.
type Server struct {
	lex      atomic.Pointer[lexicon.Lexicon]
	dictPath string
	router   *mux.Router
	http     *http.Server
	watcher  *fsnotify.Watcher
}

// NewServer loads the dictionary at dictPath and returns a server bound to
// addr. A missing dictionary fails construction; the caller must not serve.
func NewServer(addr, dictPath string) (*Server, error) {
	lex, err := lexicon.Load(dictPath)
	if err != nil {
		return nil, err
	}

	s := &Server{dictPath: dictPath}
	s.lex.Store(lex)

	r := mux.NewRouter()
	r.Use(requestLogger)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/solve", s.solve).Methods(http.MethodPost)
	s.router = r
	s.http = &http.Server{Addr: addr, Handler: r}
	return s, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Router exposes the handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Lexicon returns the current read-only lexicon.
func (s *Server) Lexicon() *lexicon.Lexicon {
	return s.lex.Load()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	query := solver.Query{
		Letters:       req.Letters,
		Present:       req.Present,
		MinLength:     req.MinWordLength,
		MaxLength:     req.MaxWordLength,
		Repeats:       req.Repeats,
		CaseSensitive: req.CaseSensitive,
	}
	results, err := solver.Solve(s.lex.Load(), query)
	if err != nil {
		switch {
		case errors.Is(err, solver.ErrNoLetters),
			errors.Is(err, solver.ErrNoPresent),
			errors.Is(err, solver.ErrMultipleStartLetters):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	sorted := results.Sorted()

	if req.Validator == "" {
		writeJSON(w, sorted)
		return
	}

	kind, err := validator.ParseKind(req.Validator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := validator.New(kind, req.APIKey, req.ValidatorURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), solveTimeout)
	defer cancel()
	summary, err := validator.ValidateWords(ctx, v, sorted)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// Watch rebuilds the lexicon when the dictionary file changes and swaps it
// in only after a successful build. Readers keep whatever tree they loaded.
func (s *Server) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dictPath); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				lex, err := lexicon.Load(s.dictPath)
				if err != nil {
					log.Error().Err(err).Msg("dictionary reload failed; keeping previous index")
					continue
				}
				s.lex.Store(lex)
				log.Info().Int("words", lex.WordCount()).Msg("dictionary reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("dictionary watcher")
			}
		}
	}()
	return nil
}

// ListenAndServe blocks serving HTTP until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Int("words", s.lex.Load().WordCount()).
		Msg("serving")
	return s.http.ListenAndServe()
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	return s.http.Shutdown(ctx)
}
