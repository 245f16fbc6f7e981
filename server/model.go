package server

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/battle"
	"github.com/ross1116/pokeref/internal/catalog"
	"github.com/ross1116/pokeref/internal/guess"
	"github.com/ross1116/pokeref/internal/progress"
	"github.com/ross1116/pokeref/internal/quiz"
)

type Config struct {
	Addr         string
	Debug        bool
	DisplayDelay time.Duration
	AIDelay      time.Duration
	MaxParallel  int
	IdleTTL      time.Duration
}

// ProgressReader is the read side of *progress.Tracker.
type ProgressReader interface {
	Scores() progress.QuizScores
	Streak() int
}

type CacheClearer interface {
	ClearCache(ctx context.Context) error
}

// Deps are the collaborators the composition root hands to the server.
type Deps struct {
	Catalog   *catalog.Catalog
	Roster    battle.Source
	Quiz      *quiz.Game
	Guess     *guess.Game
	Progress  ProgressReader
	Cache     CacheClearer
	Scheduler battle.Scheduler
	RNG       *rand.Rand
	Logger    *zap.Logger
}

type answerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Option     string `json:"option" binding:"required"`
}

type guessRequest struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

type createBattleRequest struct {
	Team []int `json:"team" binding:"required"`
}

type moveRequest struct {
	Move *int `json:"move" binding:"required"`
}

type battleResponse struct {
	ID       string          `json:"id"`
	Snapshot battle.Snapshot `json:"snapshot"`
}

type progressResponse struct {
	Quiz   progress.QuizScores `json:"quiz"`
	Streak int                 `json:"streak"`
}
