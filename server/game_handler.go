package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/battle"
)

// POST /battles
func (s *Server) handleCreateBattle(c *gin.Context) {
	var req createBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rng := s.sessionRNG()
	b, err := battle.Setup(c.Request.Context(), s.deps.Roster, req.Team, rng, s.cfg.MaxParallel)
	switch {
	case errors.Is(err, battle.ErrInvalidTeam):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.log.Warn("battle setup failed", zap.Ints("team", req.Team), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load the battle roster"})
		return
	}

	id := uuid.NewString()
	sess := battle.NewSession(battle.SessionConfig{
		ID:           id,
		Battle:       b,
		RNG:          rng,
		Scheduler:    s.deps.Scheduler,
		DisplayDelay: s.cfg.DisplayDelay,
		AIDelay:      s.cfg.AIDelay,
		Logger:       s.log,
	})
	s.track(sess)
	s.log.Info("battle started", zap.String("session", id), zap.Ints("team", req.Team))

	c.JSON(http.StatusCreated, battleResponse{ID: id, Snapshot: sess.Snapshot()})
}

func (s *Server) session(c *gin.Context) (*battle.Session, bool) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
	}
	return sess, ok
}

// GET /battles/:id
func (s *Server) handleGetBattle(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	s.touch(sess.ID())
	c.JSON(http.StatusOK, battleResponse{ID: sess.ID(), Snapshot: sess.Snapshot()})
}

// POST /battles/:id/moves
func (s *Server) handleMove(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	s.touch(sess.ID())

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !sess.SubmitMove(*req.Move) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "move not accepted",
			"snapshot": sess.Snapshot(),
		})
		return
	}
	c.JSON(http.StatusAccepted, battleResponse{ID: sess.ID(), Snapshot: sess.Snapshot()})
}

// DELETE /battles/:id
func (s *Server) handleDeleteBattle(c *gin.Context) {
	if !s.forget(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
