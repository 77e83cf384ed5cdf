// Package server exposes the engine as an HTTP and websocket analysis service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterDraughts/pkg/common"
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Server struct {
	logger zerolog.Logger
	mu     sync.Mutex
	engine Engine
	router chi.Router
}

func New(engine Engine, logger zerolog.Logger) *Server {
	var s = &Server{
		logger: logger,
		engine: engine,
	}
	var r = chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/search", s.handleSearch)
	r.Post("/moves", s.handleMoves)
	r.Post("/newgame", s.handleNewGame)
	r.Get("/ws/search", s.handleWSSearch)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	var httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		var shutdownCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn().Err(err).Msg("graceful shutdown failed")
			return httpServer.Close()
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var start = time.Now()
		defer func() {
			s.logger.Debug().
				Str("requestID", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
		return
	}
	var searchParams, err = req.searchParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var si = s.search(r.Context(), searchParams)
	writeJSON(w, http.StatusOK, toSearchResponse(si))
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req movesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
		return
	}
	var p, _, err = resolvePosition(req.Position, req.MoveHistory)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var ml = p.GenerateMoves(nil)
	writeJSON(w, http.StatusOK, movesResponse{
		Position: p.String(),
		Moves:    lo.Map(ml, toMoveDTO),
	})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.engine.Clear()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var si = s.engine.Search(ctx, searchParams)
	s.logger.Info().
		Str("move", si.Move.String()).
		Int("score", si.Score).
		Int("depth", si.Depth).
		Int64("nodes", si.Nodes).
		Str("source", si.Source).
		Msg("search")
	return si
}

func (req *searchRequest) searchParams() (common.SearchParams, error) {
	var p, moves, err = resolvePosition(req.Position, req.MoveHistory)
	if err != nil {
		return common.SearchParams{}, err
	}
	return common.SearchParams{
		Position: p,
		Moves:    moves,
		Limits:   req.limits(),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
