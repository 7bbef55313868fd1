package attempt

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quizzer/internal/api"
	"quizzer/internal/domain"
)

// SessionStore abstracts how attempt sessions are persisted (file, memory,
// Redis). One session per token; Put replaces wholesale.
type SessionStore interface {
	Get(ctx context.Context, token string) (domain.AttemptSession, bool, error)
	Put(ctx context.Context, session domain.AttemptSession) error
	Delete(ctx context.Context, token string) error
}

// Server is the slice of the API client the attempt flow depends on.
type Server interface {
	DrawQuestions(ctx context.Context, token string) (api.Draw, error)
	SubmitAnswers(ctx context.Context, token string, answers map[int64][]int64) (map[int64]domain.QuestionResult, error)
}

// State describes where an attempt stands for a given token.
type State string

const (
	StateEmpty      State = "empty"
	StateFetching   State = "fetching"
	StateActive     State = "active"
	StateSubmitting State = "submitting"
	StateFinalized  State = "finalized"
)

// Manager gives callers a reload-safe view of "my current attempt for token
// T" while staying eventually consistent with the server's authoritative
// state. Draw requests are deduplicated per token, so two concurrent
// LoadOrFetch calls for an uncached token issue a single network request.
type Manager struct {
	store        SessionStore
	server       Server
	log          *slog.Logger
	fetchTimeout time.Duration
	sf           singleflight.Group

	mu        sync.Mutex
	transient map[string]State // fetching / submitting, while in flight
}

// NewManager wires a Manager. fetchTimeout bounds how long a caller waits on
// an in-flight draw started by someone else before giving up.
func NewManager(store SessionStore, server Server, log *slog.Logger, fetchTimeout time.Duration) *Manager {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Manager{
		store:        store,
		server:       server,
		log:          log,
		fetchTimeout: fetchTimeout,
		transient:    make(map[string]State),
	}
}

// State reports the attempt state for a token.
func (m *Manager) State(ctx context.Context, token string) State {
	m.mu.Lock()
	if st, ok := m.transient[token]; ok {
		m.mu.Unlock()
		return st
	}
	m.mu.Unlock()

	session, ok, err := m.store.Get(ctx, token)
	if err != nil || !ok {
		return StateEmpty
	}
	if session.Finalized() {
		return StateFinalized
	}
	return StateActive
}

// LoadOrFetch returns the cached session for token, revalidating it against
// the server in the background, or draws a fresh question set on a cache
// miss. Concurrent callers for the same uncached token share one draw
// request; a caller that waits longer than the fetch timeout fails with
// domain.ErrFetchTimeout while the draw itself runs to completion.
func (m *Manager) LoadOrFetch(ctx context.Context, token string) (domain.AttemptSession, error) {
	session, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return domain.AttemptSession{}, err
	}
	if ok {
		go func() {
			if err := m.Revalidate(context.Background(), token); err != nil {
				m.log.Warn("background revalidation failed", "token", token, "err", err)
			}
		}()
		return session, nil
	}

	ch := m.sf.DoChan(token, func() (interface{}, error) {
		// Re-check the store in case a concurrent caller already filled it.
		if session, ok, err := m.store.Get(ctx, token); err == nil && ok {
			return session, nil
		}
		m.setTransient(token, StateFetching)
		defer m.clearTransient(token)
		return m.fetch(ctx, token)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.AttemptSession{}, res.Err
		}
		return res.Val.(domain.AttemptSession), nil
	case <-time.After(m.fetchTimeout):
		return domain.AttemptSession{}, domain.ErrFetchTimeout
	case <-ctx.Done():
		return domain.AttemptSession{}, ctx.Err()
	}
}

func (m *Manager) fetch(ctx context.Context, token string) (domain.AttemptSession, error) {
	draw, err := m.server.DrawQuestions(ctx, token)
	if err != nil {
		return domain.AttemptSession{}, err
	}
	session := newSession(token, draw)
	if err := m.store.Put(ctx, session); err != nil {
		return domain.AttemptSession{}, err
	}
	return session, nil
}

// Revalidate re-requests the draw for a cached token. A draw with the same
// ordered question ids is a no-op. A different draw means the attempt was
// reset server-side: the whole local session, answers and results included,
// is discarded and replaced. A server rejection leaves the cache untouched
// so the user keeps working from it.
func (m *Manager) Revalidate(ctx context.Context, token string) error {
	cached, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	draw, err := m.server.DrawQuestions(ctx, token)
	if err != nil {
		return err
	}
	if sameDraw(cached.Questions, draw.Questions) {
		return nil
	}

	m.log.Info("server reset detected, replacing local attempt", "token", token)
	return m.store.Put(ctx, newSession(token, draw))
}

// RecordAnswer toggles (multiple) or replaces (single) the selection for a
// question and persists the updated mapping synchronously. Finalized
// sessions reject edits.
func (m *Manager) RecordAnswer(ctx context.Context, token string, questionID, answerID int64, multiple bool) (domain.AttemptSession, error) {
	session, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return domain.AttemptSession{}, err
	}
	if !ok {
		return domain.AttemptSession{}, domain.ErrSessionNotFound
	}
	if session.Finalized() {
		return session, domain.ErrAttemptFinalized
	}
	if !hasQuestion(session.Questions, questionID) {
		return session, domain.ErrQuestionNotFound
	}

	if multiple {
		session.Answers[questionID] = toggle(session.Answers[questionID], answerID)
	} else {
		session.Answers[questionID] = []int64{answerID}
	}
	if len(session.Answers[questionID]) == 0 {
		delete(session.Answers, questionID)
	}

	if err := m.store.Put(ctx, session); err != nil {
		return domain.AttemptSession{}, err
	}
	return session, nil
}

// Submit posts the full answer mapping. On success the per-question
// breakdown is stored as results, finalizing the session, and the aggregate
// score is returned. On failure the answers are left intact so the user can
// retry.
func (m *Manager) Submit(ctx context.Context, token string) (domain.AttemptSession, int, error) {
	session, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return domain.AttemptSession{}, 0, err
	}
	if !ok {
		return domain.AttemptSession{}, 0, domain.ErrSessionNotFound
	}
	if session.Finalized() {
		return session, session.Score(), domain.ErrAttemptFinalized
	}

	m.setTransient(token, StateSubmitting)
	defer m.clearTransient(token)

	results, err := m.server.SubmitAnswers(ctx, token, session.Answers)
	if err != nil {
		return session, 0, err
	}

	session.Results = results
	if err := m.store.Put(ctx, session); err != nil {
		return session, 0, err
	}
	return session, session.Score(), nil
}

// SetViewMode persists the per-token display preference.
func (m *Manager) SetViewMode(ctx context.Context, token, mode string) error {
	session, ok, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ViewMode = mode
	return m.store.Put(ctx, session)
}

// Reset drops the local session for a token.
func (m *Manager) Reset(ctx context.Context, token string) error {
	err := m.store.Delete(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (m *Manager) setTransient(token string, st State) {
	m.mu.Lock()
	m.transient[token] = st
	m.mu.Unlock()
}

func (m *Manager) clearTransient(token string) {
	m.mu.Lock()
	delete(m.transient, token)
	m.mu.Unlock()
}

func newSession(token string, draw api.Draw) domain.AttemptSession {
	return domain.AttemptSession{
		Token:     token,
		Questions: draw.Questions,
		Meta:      draw.Meta,
		Answers:   make(map[int64][]int64),
	}
}

// sameDraw reports whether two draws carry the same questions in the same
// order. Question ids are the draw's identity; texts are not diffed.
func sameDraw(a, b []domain.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func hasQuestion(questions []domain.Question, id int64) bool {
	for i := range questions {
		if questions[i].ID == id {
			return true
		}
	}
	return false
}

func toggle(ids []int64, id int64) []int64 {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
