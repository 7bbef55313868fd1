package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State is the lifecycle position of an auth session.
type State string

const (
	StateInit            State = "init"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// credentials is the persisted shape of a session.
type credentials struct {
	Token        string `json:"token"`
	Username     string `json:"username"`
	CSRFToken    string `json:"csrfToken,omitempty"`
	CSRFHeader   string `json:"csrfHeader,omitempty"`
	RedirectPath string `json:"redirectPath,omitempty"`
}

// Session holds the current user's credentials, persisted to a JSON file so
// they survive between invocations. It is passed explicitly to the API
// client; there is no package-level state.
type Session struct {
	path  string
	mu    sync.RWMutex
	state State
	creds credentials
}

// Load opens the session stored at path. A missing or unreadable file
// yields an unauthenticated session rather than an error.
func Load(path string) *Session {
	s := &Session{path: path, state: StateInit}

	data, err := os.ReadFile(path)
	if err != nil {
		s.state = StateUnauthenticated
		return s
	}
	if err := json.Unmarshal(data, &s.creds); err != nil || s.creds.Token == "" {
		s.state = StateUnauthenticated
		return s
	}
	s.state = StateAuthenticated
	return s
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Username returns the logged-in username, empty when unauthenticated.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Token implements api.Credentials.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// CSRF implements api.Credentials.
func (s *Session) CSRF() (header, value string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.CSRFHeader, s.creds.CSRFToken
}

// Login records a successful authentication and persists it.
func (s *Session) Login(username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.Username = username
	s.creds.Token = token
	s.state = StateAuthenticated
	return s.saveLocked()
}

// SetCSRF stores the CSRF pair fetched from the backend.
func (s *Session) SetCSRF(header, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.CSRFHeader = header
	s.creds.CSRFToken = token
	return s.saveLocked()
}

// SetRedirectPath remembers where to land after a pending OAuth login.
func (s *Session) SetRedirectPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.RedirectPath = path
	return s.saveLocked()
}

// RedirectPath returns and clears the pending post-login redirect path.
func (s *Session) RedirectPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.creds.RedirectPath
	if path != "" {
		s.creds.RedirectPath = ""
		_ = s.saveLocked()
	}
	return path
}

// Logout clears the credentials and removes the stored file.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	s.state = StateUnauthenticated
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

func (s *Session) saveLocked() error {
	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}
