package file

import (
	"context"
	"testing"

	"quizzer/internal/domain"
)

func TestSessionStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewSessionStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	session := domain.AttemptSession{
		Token: "T",
		Questions: []domain.Question{
			{ID: 1, Text: "Q1", Answers: []domain.Answer{{ID: 11, Text: "A1"}}},
		},
		Meta:    domain.SessionMeta{NumberOfQuestions: 1, Duration: "00:30"},
		Answers: map[int64][]int64{1: {11}},
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	// A new store over the same dir must see the session, like a page
	// reload over localStorage.
	reopened, err := NewSessionStore(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	got, ok, err := reopened.Get(ctx, "T")
	if err != nil || !ok {
		t.Fatalf("expected session after reopen, err=%v", err)
	}
	if got.Meta.Duration != "00:30" || len(got.Questions) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Answers[1][0] != 11 {
		t.Fatalf("answers not persisted: %+v", got.Answers)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Put(ctx, domain.AttemptSession{Token: "T"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "T"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "T"); ok {
		t.Fatalf("expected session removed")
	}
	// Deleting a missing token is a no-op.
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}
