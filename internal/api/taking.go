package api

import (
	"context"
	"net/url"

	"quizzer/internal/domain"
)

// Draw is the fixed question set the server associates with a token,
// together with the session constraints.
type Draw struct {
	Questions []domain.Question  `json:"questions"`
	Meta      domain.SessionMeta `json:"meta"`
}

// DrawQuestions requests the question draw for a token. The draw is
// idempotent per token unless the attempt was reset server-side.
func (c *Client) DrawQuestions(ctx context.Context, token string) (Draw, error) {
	var draw Draw
	err := c.get(ctx, "/api/take/"+url.PathEscape(token), nil, &draw)
	return draw, err
}

// SubmitAnswers posts the full answer mapping for a token and returns the
// per-question correctness breakdown.
func (c *Client) SubmitAnswers(ctx context.Context, token string, answers map[int64][]int64) (map[int64]domain.QuestionResult, error) {
	var results map[int64]domain.QuestionResult
	err := c.post(ctx, "/api/take/"+url.PathEscape(token)+"/submit", answers, &results)
	return results, err
}

// RequiredDetails reports whether the token demands taker details before the
// draw is released.
func (c *Client) RequiredDetails(ctx context.Context, token string) (bool, error) {
	var resp struct {
		RequiredDetails bool `json:"requiredDetails"`
	}
	err := c.get(ctx, "/api/take/"+url.PathEscape(token)+"/details", nil, &resp)
	return resp.RequiredDetails, err
}

// SaveResult stores a private, self-visible result record.
func (c *Client) SaveResult(ctx context.Context, record domain.ResultRecord) (domain.ResultRecord, error) {
	var saved domain.ResultRecord
	err := c.post(ctx, "/api/results", record, &saved)
	return saved, err
}

// ListResults fetches the caller's private result records.
func (c *Client) ListResults(ctx context.Context) ([]domain.ResultRecord, error) {
	var records []domain.ResultRecord
	err := c.get(ctx, "/api/results", nil, &records)
	return records, err
}
