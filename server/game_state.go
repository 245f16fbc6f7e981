package server

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/battle"
)

// sessions tracks live battles by id.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*battle.Session
}

func newSessions() *sessions {
	return &sessions{byID: make(map[string]*battle.Session)}
}

func (s *sessions) add(sess *battle.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sess.ID()] = sess
}

func (s *sessions) get(id string) (*battle.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	return sess, ok
}

// remove closes and forgets a session.
func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	sess, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
	return ok
}

// closeAll closes every session and returns the ids it dropped.
func (s *sessions) closeAll() []string {
	s.mu.Lock()
	all := s.byID
	s.byID = make(map[string]*battle.Session)
	s.mu.Unlock()
	ids := make([]string, 0, len(all))
	for id, sess := range all {
		sess.Close()
		ids = append(ids, id)
	}
	return ids
}

func reapTask(id string) string { return id + ":reap" }

// track registers a new battle and arms its idle timer.
func (s *Server) track(sess *battle.Session) {
	s.sessions.add(sess)
	s.touch(sess.ID())
}

// touch pushes back the eviction of battle id. Finished battles get no more
// moves, so they fall out once the idle timer runs down.
func (s *Server) touch(id string) {
	s.deps.Scheduler.AddDelay(reapTask(id), s.cfg.IdleTTL, func() {
		if s.sessions.remove(id) {
			s.log.Info("battle evicted", zap.String("session", id))
		}
	})
}

// forget drops battle id and its idle timer.
func (s *Server) forget(id string) bool {
	s.deps.Scheduler.Remove(reapTask(id))
	return s.sessions.remove(id)
}
