// Package server exposes the catalog, the quiz and guess games, and battles
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultIdleTTL is how long a battle survives without a request.
const DefaultIdleTTL = 10 * time.Minute

type Server struct {
	cfg      Config
	deps     Deps
	log      *zap.Logger
	engine   *gin.Engine
	sessions *sessions

	rngMu sync.Mutex
}

func New(cfg Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.RNG == nil {
		deps.RNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		log:      deps.Logger,
		sessions: newSessions(),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(traceID(), requestLogger(s.log), recovery(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/pokemon", s.handleList)
	r.GET("/pokemon/:id", s.handleDetail)
	r.GET("/search", s.handleSearch)
	r.GET("/types", s.handleTypes)
	r.GET("/types/:name", s.handleByType)

	r.GET("/quiz/question", s.handleQuestion)
	r.POST("/quiz/answer", s.handleAnswer)
	r.GET("/guess", s.handleGuessRound)
	r.POST("/guess", s.handleGuess)
	r.POST("/guess/skip", s.handleGuessSkip)
	r.GET("/progress", s.handleProgress)
	r.DELETE("/cache", s.handleClearCache)

	r.POST("/battles", s.handleCreateBattle)
	r.GET("/battles/:id", s.handleGetBattle)
	r.POST("/battles/:id/moves", s.handleMove)
	r.DELETE("/battles/:id", s.handleDeleteBattle)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.log.Info("server stopped")
	return err
}

// Close ends every live battle.
func (s *Server) Close() {
	for _, id := range s.sessions.closeAll() {
		s.deps.Scheduler.Remove(reapTask(id))
	}
}

// sessionRNG derives an independent source for one battle.
func (s *Server) sessionRNG() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewPCG(s.deps.RNG.Uint64(), s.deps.RNG.Uint64()))
}
