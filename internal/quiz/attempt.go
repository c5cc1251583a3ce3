package quiz

import "context"

// Attempt is one graded submission. Only the most recent attempt per
// (user, quiz) is retained; SaveAttempt overwrites, it never appends.
type Attempt struct {
	QuizID      string            `json:"quiz_id"`
	UserID      string            `json:"user_id"`
	Answers     map[string]string `json:"answers"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Percentage  int               `json:"percentage"`
	SubmittedAt int64             `json:"submitted_at"`
}

// AttemptStore is the attempt persistence collaborator. LastAttempt
// returns fault.ErrNotFound when the user has never taken the quiz.
type AttemptStore interface {
	SaveAttempt(ctx context.Context, a Attempt) error
	LastAttempt(ctx context.Context, userID, quizID string) (Attempt, error)
}
