package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/catalog"
	"github.com/ross1116/pokeref/internal/guess"
	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/quiz"
)

// upstreamError maps PokeAPI failures onto a response.
func (s *Server) upstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pokemon.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, catalog.ErrUnknownType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Warn("upstream request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("trace_id", c.GetString(traceIDKey)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	}
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// GET /pokemon?limit=&offset=
func (s *Server) handleList(c *gin.Context) {
	limit, ok := queryInt(c, "limit", catalog.DefaultPageSize)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	entries, err := s.deps.Catalog.Page(c.Request.Context(), limit, offset)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": entries})
}

// GET /pokemon/:id
func (s *Server) handleDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	d, err := s.deps.Catalog.Detail(c.Request.Context(), id)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /search?q=&type=
func (s *Server) handleSearch(c *gin.Context) {
	entries, err := s.deps.Catalog.Search(c.Request.Context(), c.Query("q"), c.Query("type"))
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": entries})
}

func (s *Server) handleTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": s.deps.Catalog.Types()})
}

// GET /types/:name
func (s *Server) handleByType(c *gin.Context) {
	entries, err := s.deps.Catalog.ByType(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": c.Param("name"), "pokemon": entries})
}

func (s *Server) handleQuestion(c *gin.Context) {
	q, err := s.deps.Quiz.Current(c.Request.Context())
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /quiz/answer
func (s *Server) handleAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := s.deps.Quiz.Answer(c.Request.Context(), req.QuestionID, req.Option)
	switch {
	case errors.Is(err, quiz.ErrNoQuestion), errors.Is(err, quiz.ErrStaleQuestion), errors.Is(err, quiz.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleGuessRound(c *gin.Context) {
	r, err := s.deps.Guess.Open(c.Request.Context())
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /guess/skip
func (s *Server) handleGuessSkip(c *gin.Context) {
	r, err := s.deps.Guess.Skip(c.Request.Context())
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /guess
func (s *Server) handleGuess(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, ok, err := s.deps.Guess.Check(c.Request.Context(), req.RoundID, req.Guess)
	switch {
	case errors.Is(err, guess.ErrNoRound), errors.Is(err, guess.ErrRoundOver), errors.Is(err, guess.ErrStaleRound):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	case !ok:
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleProgress(c *gin.Context) {
	c.JSON(http.StatusOK, progressResponse{
		Quiz:   s.deps.Progress.Scores(),
		Streak: s.deps.Progress.Streak(),
	})
}

func (s *Server) handleClearCache(c *gin.Context) {
	if err := s.deps.Cache.ClearCache(c.Request.Context()); err != nil {
		s.log.Warn("clear cache failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cache failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
