package battle_test

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ross1116/pokeref/internal/battle"
	"github.com/ross1116/pokeref/internal/scheduler"
)

type pendingTask struct {
	delay time.Duration
	fn    scheduler.TaskFn
}

// manualScheduler holds tasks until the test runs them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks map[string]pendingTask
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{tasks: make(map[string]pendingTask)}
}

func (m *manualScheduler) AddDelay(name string, delay time.Duration, fn scheduler.TaskFn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[name] = pendingTask{delay: delay, fn: fn}
}

func (m *manualScheduler) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, name)
}

func (m *manualScheduler) has(name string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[name]
	return task.delay, ok
}

func (m *manualScheduler) run(t *testing.T, name string) {
	t.Helper()
	m.mu.Lock()
	task, ok := m.tasks[name]
	delete(m.tasks, name)
	m.mu.Unlock()
	require.True(t, ok, "no pending task %q", name)
	task.fn()
}

func newSession(t *testing.T, b *battle.Battle) (*battle.Session, *manualScheduler, *[]battle.Snapshot) {
	t.Helper()
	sched := newManualScheduler()
	var seen []battle.Snapshot
	s := battle.NewSession(battle.SessionConfig{
		ID:        "s1",
		Battle:    b,
		RNG:       rand.New(rand.NewPCG(1, 2)),
		Scheduler: sched,
		OnChange:  func(snap battle.Snapshot) { seen = append(seen, snap) },
	})
	return s, sched, &seen
}

func TestSessionPlaysFullRound(t *testing.T) {
	s, sched, seen := newSession(t, newBattle(t, team("p", 100, 100, 50), team("o", 100, 100, 50)))

	require.True(t, s.SubmitMove(0))
	assert.True(t, s.Snapshot().InputDisabled)
	assert.False(t, s.SubmitMove(0))

	delay, ok := sched.has("s1:settle")
	require.True(t, ok)
	assert.Equal(t, battle.DefaultDisplayDelay, delay)

	sched.run(t, "s1:settle")
	assert.Equal(t, battle.Opponent, s.Snapshot().TurnOwner)
	delay, ok = sched.has("s1:ai")
	require.True(t, ok)
	assert.Equal(t, battle.DefaultAIDelay, delay)

	sched.run(t, "s1:ai")
	snap := s.Snapshot()
	assert.Equal(t, "Wild o-a used tackle!", snap.Log[len(snap.Log)-1])
	assert.Equal(t, 63, snap.Player.HP)
	assert.True(t, snap.InputDisabled)

	sched.run(t, "s1:settle")
	snap = s.Snapshot()
	assert.Equal(t, battle.Player, snap.TurnOwner)
	assert.False(t, snap.InputDisabled)
	_, ok = sched.has("s1:ai")
	assert.False(t, ok)

	assert.Len(t, *seen, 4)
}

func TestSessionAIRepliesAfterForcedSwitch(t *testing.T) {
	s, sched, _ := newSession(t, newBattle(t, team("p", 100, 200, 50), team("o", 10, 10, 10)))

	require.True(t, s.SubmitMove(0))
	sched.run(t, "s1:settle")

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.OpponentActive)
	assert.Equal(t, battle.Opponent, snap.TurnOwner)
	_, ok := sched.has("s1:ai")
	assert.True(t, ok)
}

func TestSessionStopsAtVictory(t *testing.T) {
	s, sched, _ := newSession(t, newBattle(t, team("p", 100, 200, 50), team("o", 10, 10, 10)))

	for i := range battle.TeamSize {
		require.True(t, s.SubmitMove(0))
		sched.run(t, "s1:settle")
		if i < battle.TeamSize-1 {
			sched.run(t, "s1:ai")
			sched.run(t, "s1:settle")
		}
	}

	snap := s.Snapshot()
	assert.Equal(t, battle.PlayerVictory, snap.Outcome)
	assert.True(t, snap.InputDisabled)
	_, ok := sched.has("s1:ai")
	assert.False(t, ok)
	assert.False(t, s.SubmitMove(0))
}

func TestSessionCloseCancelsContinuations(t *testing.T) {
	s, sched, _ := newSession(t, newBattle(t, team("p", 100, 100, 50), team("o", 100, 100, 50)))

	require.True(t, s.SubmitMove(0))
	s.Close()
	_, ok := sched.has("s1:settle")
	assert.False(t, ok)
	assert.False(t, s.SubmitMove(0))
	s.Close()
}

func TestSessionWithRealScheduler(t *testing.T) {
	sched := scheduler.New(nil)
	defer sched.Stop()

	updates := make(chan battle.Snapshot, 16)
	s := battle.NewSession(battle.SessionConfig{
		ID:           "real",
		Battle:       newBattle(t, team("p", 100, 100, 50), team("o", 100, 100, 50)),
		RNG:          rand.New(rand.NewPCG(1, 2)),
		Scheduler:    sched,
		DisplayDelay: time.Millisecond,
		AIDelay:      time.Millisecond,
		OnChange:     func(snap battle.Snapshot) { updates <- snap },
	})
	defer s.Close()

	require.True(t, s.SubmitMove(0))
	assert.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.TurnOwner == battle.Player && !snap.InputDisabled
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 63, s.Snapshot().Player.HP)
}
