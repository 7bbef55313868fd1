package memory

import (
	"context"
	"sync"

	"quizzer/internal/domain"
)

// SessionStore is an in-memory implementation of attempt.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.AttemptSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.AttemptSession),
	}
}

func (s *SessionStore) Get(_ context.Context, token string) (domain.AttemptSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	return cloneSession(session), ok, nil
}

func (s *SessionStore) Put(_ context.Context, session domain.AttemptSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = cloneSession(session)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// cloneSession copies the mutable maps so callers never share map state
// with the store. The file and redis stores get this for free from their
// JSON round trip.
func cloneSession(s domain.AttemptSession) domain.AttemptSession {
	out := s
	if s.Answers != nil {
		out.Answers = make(map[int64][]int64, len(s.Answers))
		for id, ids := range s.Answers {
			out.Answers[id] = append([]int64(nil), ids...)
		}
	}
	if s.Results != nil {
		out.Results = make(map[int64]domain.QuestionResult, len(s.Results))
		for id, r := range s.Results {
			out.Results[id] = domain.QuestionResult{
				Selected: append([]int64(nil), r.Selected...),
				Correct:  append([]int64(nil), r.Correct...),
			}
		}
	}
	return out
}
