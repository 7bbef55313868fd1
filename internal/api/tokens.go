package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"quizzer/internal/domain"
)

// IssueTokenRequest describes the constraints of a new issued token.
type IssueTokenRequest struct {
	NumberOfQuestions int        `json:"numberOfQuestions"`
	Duration          string     `json:"duration"` // "HH:MM"
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	RequiredDetails   bool       `json:"requiredDetails"`
	RequiredQuestions []int64    `json:"requiredQuestions,omitempty"`
}

// IssueToken generates a shareable token for a quiz.
func (c *Client) IssueToken(ctx context.Context, quizID int64, req IssueTokenRequest) (domain.IssuedToken, error) {
	var token domain.IssuedToken
	err := c.post(ctx, fmt.Sprintf("/api/quizzes/%d/tokens", quizID), req, &token)
	return token, err
}

// ListTokens returns the tokens issued for a quiz.
func (c *Client) ListTokens(ctx context.Context, quizID int64) ([]domain.IssuedToken, error) {
	var tokens []domain.IssuedToken
	err := c.get(ctx, fmt.Sprintf("/api/quizzes/%d/tokens", quizID), nil, &tokens)
	return tokens, err
}

// UpdateToken changes a token's expiration or question count.
func (c *Client) UpdateToken(ctx context.Context, tokenID string, expiration *time.Time, numberOfQuestions int) (domain.IssuedToken, error) {
	var updated domain.IssuedToken
	err := c.put(ctx, "/api/tokens/"+url.PathEscape(tokenID), map[string]interface{}{
		"expirationDate":    expiration,
		"numberOfQuestions": numberOfQuestions,
	}, &updated)
	return updated, err
}

// DeleteToken revokes an issued token.
func (c *Client) DeleteToken(ctx context.Context, tokenID string) error {
	return c.delete(ctx, "/api/tokens/"+url.PathEscape(tokenID))
}

// ListAttempts returns the per-user attempts recorded against a token.
func (c *Client) ListAttempts(ctx context.Context, tokenID string) ([]domain.UserAttempt, error) {
	var attempts []domain.UserAttempt
	err := c.get(ctx, "/api/tokens/"+url.PathEscape(tokenID)+"/attempts", nil, &attempts)
	return attempts, err
}

// DeleteAttempt removes one user's attempt, letting them retake the quiz.
func (c *Client) DeleteAttempt(ctx context.Context, tokenID, user string) error {
	return c.delete(ctx, "/api/tokens/"+url.PathEscape(tokenID)+"/attempts/"+url.PathEscape(user))
}
