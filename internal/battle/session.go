package battle

import (
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/scheduler"
)

const (
	DefaultDisplayDelay = 600 * time.Millisecond
	DefaultAIDelay      = 800 * time.Millisecond
)

// Scheduler runs named delayed continuations. *scheduler.Scheduler satisfies it.
type Scheduler interface {
	AddDelay(name string, delay time.Duration, fn scheduler.TaskFn)
	Remove(name string)
}

type SessionConfig struct {
	// ID namespaces the session's scheduled tasks on a shared Scheduler.
	ID           string
	Battle       *Battle
	RNG          *rand.Rand
	Scheduler    Scheduler
	DisplayDelay time.Duration
	AIDelay      time.Duration
	Logger       *zap.Logger
	// OnChange, if set, is called with a fresh snapshot after every state
	// change, outside the session lock.
	OnChange func(Snapshot)
}

// Session drives one battle: it accepts the player's moves, settles each hit
// after the display delay and plays the opponent's replies after the AI delay.
// The Battle itself is only touched under the session lock.
type Session struct {
	mu     sync.Mutex
	cfg    SessionConfig
	battle *Battle
	closed bool
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.DisplayDelay <= 0 {
		cfg.DisplayDelay = DefaultDisplayDelay
	}
	if cfg.AIDelay <= 0 {
		cfg.AIDelay = DefaultAIDelay
	}
	return &Session{cfg: cfg, battle: cfg.Battle}
}

func (s *Session) ID() string {
	return s.cfg.ID
}

func (s *Session) settleTask() string { return s.cfg.ID + ":settle" }
func (s *Session) aiTask() string     { return s.cfg.ID + ":ai" }

// SubmitMove plays the player's move. It reports false when the move was
// ignored.
func (s *Session) SubmitMove(moveIndex int) bool {
	s.mu.Lock()
	if s.closed || !s.battle.Submit(Player, moveIndex) {
		s.mu.Unlock()
		return false
	}
	s.cfg.Scheduler.AddDelay(s.settleTask(), s.cfg.DisplayDelay, s.settle)
	snap := s.battle.Snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

func (s *Session) settle() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.battle.Settle()
	switch {
	case s.battle.Over():
		s.cfg.Logger.Info("battle finished",
			zap.String("session", s.cfg.ID),
			zap.Stringer("outcome", s.battle.Outcome))
	case s.battle.TurnOwner == Opponent:
		s.cfg.Scheduler.AddDelay(s.aiTask(), s.cfg.AIDelay, s.opponentMove)
	}
	snap := s.battle.Snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) opponentMove() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	idx := ChooseMove(s.cfg.RNG, s.battle.Active(Opponent))
	if !s.battle.Submit(Opponent, idx) {
		s.mu.Unlock()
		return
	}
	s.cfg.Scheduler.AddDelay(s.settleTask(), s.cfg.DisplayDelay, s.settle)
	snap := s.battle.Snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) notify(snap Snapshot) {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(snap)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Snapshot()
}

// Close cancels any pending continuation. The battle state is discarded with
// the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cfg.Scheduler.Remove(s.settleTask())
	s.cfg.Scheduler.Remove(s.aiTask())
}
