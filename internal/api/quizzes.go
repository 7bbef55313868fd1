package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"quizzer/internal/domain"
)

// ListQuizzes returns the current user's quizzes with question counts.
func (c *Client) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := c.get(ctx, "/api/quizzes", nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// PublicQuizzes returns one page of the public quiz listing.
func (c *Client) PublicQuizzes(ctx context.Context, page, size int) (domain.QuizPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result domain.QuizPage
	err := c.get(ctx, "/api/quizzes/public", query, &result)
	return result, err
}

// CreateQuiz creates a quiz and returns it with its server-assigned id.
func (c *Client) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	var created domain.Quiz
	err := c.post(ctx, "/api/quizzes", quiz, &created)
	return created, err
}

// UpdateQuiz updates a quiz's title, description or visibility.
func (c *Client) UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	var updated domain.Quiz
	err := c.put(ctx, fmt.Sprintf("/api/quizzes/%d", quiz.ID), quiz, &updated)
	return updated, err
}

// DeleteQuiz deletes a quiz and all its questions.
func (c *Client) DeleteQuiz(ctx context.Context, quizID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/quizzes/%d", quizID))
}

// ListQuestions fetches all questions of a quiz, with correct flags.
func (c *Client) ListQuestions(ctx context.Context, quizID int64) ([]domain.Question, error) {
	var questions []domain.Question
	err := c.get(ctx, fmt.Sprintf("/api/quizzes/%d/questions", quizID), nil, &questions)
	return questions, err
}

// RandomQuestions fetches a random subset of a quiz's questions.
func (c *Client) RandomQuestions(ctx context.Context, quizID int64, count int) ([]domain.Question, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(count))

	var questions []domain.Question
	err := c.get(ctx, fmt.Sprintf("/api/quizzes/%d/questions/random", quizID), query, &questions)
	return questions, err
}

// CreateQuestion adds a question with its answer set to a quiz.
func (c *Client) CreateQuestion(ctx context.Context, quizID int64, q domain.Question) (domain.Question, error) {
	var created domain.Question
	err := c.post(ctx, fmt.Sprintf("/api/quizzes/%d/questions", quizID), q, &created)
	return created, err
}

// UpdateQuestion replaces a question's text and answer set.
func (c *Client) UpdateQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	var updated domain.Question
	err := c.put(ctx, fmt.Sprintf("/api/questions/%d", q.ID), q, &updated)
	return updated, err
}

// DeleteQuestion removes a question and its answers.
func (c *Client) DeleteQuestion(ctx context.Context, questionID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/questions/%d", questionID))
}
