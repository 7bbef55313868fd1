package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"quizzer/internal/domain"
)

// SessionStore persists attempt sessions as one token-keyed JSON document on
// disk, so an interrupted attempt survives between CLI invocations.
type SessionStore struct {
	filename string
	mu       sync.Mutex
}

// NewSessionStore creates the store file under dir if it does not exist yet.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	filename := filepath.Join(dir, "sessions.json")
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		initial, _ := json.Marshal(map[string]domain.AttemptSession{})
		if err := os.WriteFile(filename, initial, 0o600); err != nil {
			return nil, fmt.Errorf("init session file: %w", err)
		}
	}
	return &SessionStore{filename: filename}, nil
}

func (s *SessionStore) Get(_ context.Context, token string) (domain.AttemptSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return domain.AttemptSession{}, false, err
	}
	session, ok := m[token]
	return session, ok, nil
}

func (s *SessionStore) Put(_ context.Context, session domain.AttemptSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	m[session.Token] = session
	return s.save(m)
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	delete(m, token)
	return s.save(m)
}

func (s *SessionStore) load() (map[string]domain.AttemptSession, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]domain.AttemptSession), nil
	}
	var m map[string]domain.AttemptSession
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal session file: %w", err)
	}
	return m, nil
}

func (s *SessionStore) save(m map[string]domain.AttemptSession) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := os.WriteFile(s.filename, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
