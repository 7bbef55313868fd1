package memory

import (
	"context"
	"testing"

	"quizzer/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	if _, ok, _ := store.Get(ctx, "T"); ok {
		t.Fatalf("expected empty store")
	}

	session := domain.AttemptSession{
		Token:   "T",
		Answers: map[int64][]int64{1: {11}},
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "T")
	if err != nil || !ok {
		t.Fatalf("expected session present, err=%v", err)
	}
	if len(got.Answers[1]) != 1 || got.Answers[1][0] != 11 {
		t.Fatalf("unexpected answers: %+v", got.Answers)
	}

	if err := store.Delete(ctx, "T"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "T"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreIsolatesCallerMutations(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	put := domain.AttemptSession{
		Token:   "T",
		Answers: map[int64][]int64{1: {11}},
		Results: map[int64]domain.QuestionResult{1: {Selected: []int64{11}, Correct: []int64{11}}},
	}
	if err := store.Put(ctx, put); err != nil {
		t.Fatalf("put: %v", err)
	}
	put.Answers[1] = []int64{99}

	got, _, err := store.Get(ctx, "T")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answers[1][0] != 11 {
		t.Fatalf("mutating the put session leaked into the store: %+v", got.Answers)
	}

	got.Answers[2] = []int64{21}
	got.Results[1] = domain.QuestionResult{}

	again, _, err := store.Get(ctx, "T")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := again.Answers[2]; ok {
		t.Fatalf("mutating a returned session leaked into the store: %+v", again.Answers)
	}
	if len(again.Results[1].Correct) != 1 {
		t.Fatalf("mutating returned results leaked into the store: %+v", again.Results)
	}
}
