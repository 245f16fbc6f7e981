// Package progress holds the two durable counters of the app: the quiz score
// and the guess-game win streak. A Tracker is created by the composition root,
// loaded once, and writes through to its Store on every change.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/store"
)

const (
	QuizScoresKey = "pokemon_quiz_scores"
	WinStreakKey  = "pokemon_guess_win_streak"
)

// Store is the load/save boundary. *store.Store satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type QuizScores struct {
	Current int `json:"current"`
	Highest int `json:"highest"`
}

type Tracker struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger

	scores QuizScores
	streak int
}

func NewTracker(s Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: s, logger: logger}
}

// Load reads both records. Missing records leave zero values; unreadable ones
// are logged and reset to zero rather than failing startup.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, err := t.store.Get(ctx, QuizScoresKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return err
	default:
		var s QuizScores
		if err := json.Unmarshal(raw, &s); err != nil {
			t.logger.Warn("resetting unreadable quiz scores", zap.Error(err))
		} else {
			t.scores = sanitize(s)
		}
	}

	raw, err = t.store.Get(ctx, WinStreakKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return err
	default:
		n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(string(raw)), `"`))
		if err != nil || n < 0 {
			t.logger.Warn("resetting unreadable win streak", zap.String("raw", string(raw)))
		} else {
			t.streak = n
		}
	}
	return nil
}

func sanitize(s QuizScores) QuizScores {
	if s.Current < 0 {
		s.Current = 0
	}
	if s.Highest < s.Current {
		s.Highest = s.Current
	}
	return s
}

func (t *Tracker) Scores() QuizScores {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scores
}

func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// IncrementScore adds one to the current score and raises the high score
// when it is passed.
func (t *Tracker) IncrementScore(ctx context.Context) QuizScores {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scores.Current++
	if t.scores.Current > t.scores.Highest {
		t.scores.Highest = t.scores.Current
	}
	t.saveScores(ctx)
	return t.scores
}

func (t *Tracker) ResetCurrentScore(ctx context.Context) QuizScores {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scores.Current = 0
	t.saveScores(ctx)
	return t.scores
}

func (t *Tracker) IncrementStreak(ctx context.Context) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.streak++
	t.saveStreak(ctx)
	return t.streak
}

func (t *Tracker) ResetStreak(ctx context.Context) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.streak = 0
	t.saveStreak(ctx)
	return t.streak
}

// Save failures are logged: the in-memory value stays authoritative for the
// rest of the session.
func (t *Tracker) saveScores(ctx context.Context) {
	raw, err := json.Marshal(t.scores)
	if err == nil {
		err = t.store.Put(ctx, QuizScoresKey, raw)
	}
	if err != nil {
		t.logger.Warn("failed to save quiz scores", zap.Error(err))
	}
}

func (t *Tracker) saveStreak(ctx context.Context) {
	if err := t.store.Put(ctx, WinStreakKey, []byte(strconv.Itoa(t.streak))); err != nil {
		t.logger.Warn("failed to save win streak", zap.Error(err))
	}
}
