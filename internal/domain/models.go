package domain

import "time"

// Quiz is a question bank owned by a user.
type Quiz struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
	Public        bool   `json:"isPublic"`
}

// Answer is one selectable option of a question. The Correct flag is only
// populated on owner-facing endpoints, never on a token draw.
type Answer struct {
	ID      int64  `json:"id"`
	Text    string `json:"answer"`
	Correct bool   `json:"correct,omitempty"`
}

// Question models an MCQ question. Multiple reports whether more than one
// option may be selected.
type Question struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Text     string   `json:"question"`
	Answers  []Answer `json:"answers"`
	Multiple bool     `json:"multipleCorrect"`
}

// IssuedToken is one shareable, time-boxed instance of a quiz draw.
type IssuedToken struct {
	TokenID           string     `json:"tokenId"`
	QuizID            int64      `json:"quizId"`
	NumberOfQuestions int        `json:"numberOfQuestions"`
	IssuedAt          time.Time  `json:"issuedAt"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	Duration          string     `json:"duration"` // "HH:MM"
	RequiredDetails   bool       `json:"requiredDetails"`
}

// SessionMeta describes the constraints of one attempt session.
type SessionMeta struct {
	NumberOfQuestions int        `json:"numberOfQuestions"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	Duration          string     `json:"duration"` // "HH:MM"
}

// QuestionResult is the per-question correctness breakdown returned by the
// server after submission.
type QuestionResult struct {
	Selected []int64 `json:"selectedOptions"`
	Correct  []int64 `json:"correctOptions"`
}

// AttemptSession is the client-local state of one attempt, keyed by token.
// Results present means the attempt is finalized and read-only.
type AttemptSession struct {
	Token     string                   `json:"token"`
	Questions []Question               `json:"questions"`
	Meta      SessionMeta              `json:"meta"`
	Answers   map[int64][]int64        `json:"answers"`
	Results   map[int64]QuestionResult `json:"results,omitempty"`
	ViewMode  string                   `json:"viewMode,omitempty"`
}

// Finalized reports whether results have been recorded for the session.
func (s *AttemptSession) Finalized() bool {
	return len(s.Results) > 0
}

// Score counts the questions whose selected-id set exactly equals the
// correct-id set.
func (s *AttemptSession) Score() int {
	score := 0
	for _, r := range s.Results {
		if SameIDSet(r.Selected, r.Correct) {
			score++
		}
	}
	return score
}

// SameIDSet compares two id slices as sets. Duplicate ids count once, so
// [1, 1] and [1, 2] are not equal even though the lengths match.
func SameIDSet(a, b []int64) bool {
	as := make(map[int64]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[int64]struct{}, len(b))
	for _, id := range b {
		bs[id] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if _, ok := bs[id]; !ok {
			return false
		}
	}
	return true
}

// ResultRecord is a private, self-visible record of a completed attempt.
type ResultRecord struct {
	ID        string    `json:"id"`
	QuizTitle string    `json:"quizTitle"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	TakenAt   time.Time `json:"takenAt"`
}

// QuizPage is one page of the public quiz listing.
type QuizPage struct {
	Quizzes    []Quiz `json:"quizzes"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

// UserAttempt is an owner-facing view of one user's attempt against a token.
type UserAttempt struct {
	User        string    `json:"user"`
	SubmittedAt time.Time `json:"submittedAt"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
}
