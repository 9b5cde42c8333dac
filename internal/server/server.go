// Package server exposes the trainer over HTTP: a JSON API for
// questions, answers and conflict reports, plus a WebSocket endpoint
// for live quiz sessions.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/store"
)

// Server hosts the trainer API. Live session state is held in memory;
// answers and scores are persisted through the store.
type Server struct {
	addr     string
	store    *store.Store
	builder  *quiz.Builder
	clock    quartz.Clock
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*quiz.Session
}

// New creates a Server. The builder carries the random source and
// selection tuning; the clock is injectable for tests.
func New(addr string, st *store.Store, builder *quiz.Builder, clock quartz.Clock, logger *log.Logger) *Server {
	return &Server{
		addr:    addr,
		store:   st,
		builder: builder,
		clock:   clock,
		logger:  logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*quiz.Session),
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/situations", s.handleListSituations)
	r.Get("/api/conflicts", s.handleConflicts)

	r.Post("/api/sessions", s.handleCreateSession)
	r.Get("/api/sessions", s.handleRecentSessions)
	r.Post("/api/sessions/{id}/finish", s.handleFinishSession)

	r.Post("/api/quiz/question", s.handleQuestion)
	r.Post("/api/quiz/answer", s.handleAnswer)

	r.Get("/ws/quiz", s.handleQuizSocket)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) session(id string) (*quiz.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) addSession(sess *quiz.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID.String()] = sess
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
