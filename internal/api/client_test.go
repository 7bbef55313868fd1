package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizzer/internal/api"
	"quizzer/internal/domain"
)

type staticCreds struct {
	token      string
	csrfHeader string
	csrfValue  string
}

func (c staticCreds) Token() string                { return c.token }
func (c staticCreds) CSRF() (header, value string) { return c.csrfHeader, c.csrfValue }

func TestClientAttachesAuthHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]domain.Quiz{})
	}))
	defer server.Close()

	creds := staticCreds{token: "jwt-123", csrfHeader: "X-CSRF-Token", csrfValue: "csrf-456"}
	client := api.NewClient(server.URL, creds, time.Second)

	_, err := client.ListQuizzes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt-123", got.Get("Authorization"))
	assert.Equal(t, "csrf-456", got.Get("X-CSRF-Token"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestClientStatusMessages(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		message string
		expired bool
	}{
		{status: http.StatusBadRequest, message: "I dati inseriti non sono validi"},
		{status: http.StatusUnauthorized, message: "Non sei autenticato, effettua il login"},
		{status: http.StatusForbidden, message: "Non sei autorizzato ad accedere a questa risorsa"},
		{status: http.StatusForbidden, body: `{"error":"token expired"}`, message: "Il tempo a disposizione è scaduto", expired: true},
		{status: http.StatusNotFound, message: "La risorsa richiesta non esiste"},
		{status: http.StatusInternalServerError, message: "Si è verificato un errore, riprova più tardi"},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(tt.body))
		}))
		client := api.NewClient(server.URL, nil, time.Second)

		_, err := client.DrawQuestions(context.Background(), "T")
		require.Error(t, err, "status=%d", tt.status)

		var statusErr *api.StatusError
		require.ErrorAs(t, err, &statusErr, "status=%d", tt.status)
		assert.Equal(t, tt.status, statusErr.StatusCode)
		assert.Equal(t, tt.message, statusErr.Message)
		assert.Equal(t, tt.expired, statusErr.Expired)

		server.Close()
	}
}

func TestClientEchoesPayloadOnEmptySuccessBody(t *testing.T) {
	// The backend sometimes returns 200 with no body; the client then
	// treats the request payload as the result.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil, time.Second)

	created, err := client.CreateQuiz(context.Background(), domain.Quiz{Title: "Storia", Public: true})
	require.NoError(t, err)
	assert.Equal(t, "Storia", created.Title)
	assert.True(t, created.Public)
}

func TestDrawAndSubmitRoundTrip(t *testing.T) {
	draw := api.Draw{
		Questions: []domain.Question{
			{ID: 1, Text: "Q1", Answers: []domain.Answer{{ID: 11}, {ID: 12}}},
		},
		Meta: domain.SessionMeta{NumberOfQuestions: 1, Duration: "00:30"},
	}

	var submitted map[int64][]int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/take/T", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(draw)
	})
	mux.HandleFunc("POST /api/take/T/submit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		_ = json.NewEncoder(w).Encode(map[int64]domain.QuestionResult{
			1: {Selected: []int64{12}, Correct: []int64{12}},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewClient(server.URL, nil, time.Second)
	ctx := context.Background()

	got, err := client.DrawQuestions(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, draw.Questions, got.Questions)
	assert.Equal(t, "00:30", got.Meta.Duration)

	results, err := client.SubmitAnswers(ctx, "T", map[int64][]int64{1: {12}})
	require.NoError(t, err)
	assert.Equal(t, map[int64][]int64{1: {12}}, submitted)
	assert.Equal(t, []int64{12}, results[1].Correct)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.LoginResponse{Token: "jwt-1", User: "alice"})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil, time.Second)
	resp, err := client.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", resp.Token)
	assert.Equal(t, "alice", resp.User)
}

func TestPublicQuizzesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		_ = json.NewEncoder(w).Encode(domain.QuizPage{
			Quizzes:    []domain.Quiz{{ID: 1, Title: "Geografia"}},
			Page:       2,
			TotalPages: 4,
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil, time.Second)
	page, err := client.PublicQuizzes(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 4, page.TotalPages)
	assert.Len(t, page.Quizzes, 1)
}
