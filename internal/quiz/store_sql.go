package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lumenlms/lumen/internal/fault"
)

// SQLStore keeps one row per (quiz, user); saving a new attempt replaces
// the previous one (last-write-wins, no history).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) SaveAttempt(ctx context.Context, a Attempt) error {
	aj, err := json.Marshal(a.Answers)
	if err != nil {
		return fault.Validation(err.Error())
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_attempts (quiz_id,user_id,answers_json,score,total,percentage,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (quiz_id,user_id) DO UPDATE SET
			answers_json=excluded.answers_json,
			score=excluded.score,
			total=excluded.total,
			percentage=excluded.percentage,
			submitted_at=excluded.submitted_at`,
		a.QuizID, a.UserID, string(aj), a.Score, a.Total, a.Percentage, a.SubmittedAt)
	if err != nil {
		return fault.Persistence("save attempt", err)
	}
	return nil
}

func (s *SQLStore) LastAttempt(ctx context.Context, userID, quizID string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT quiz_id,user_id,answers_json,score,total,percentage,submitted_at
		FROM quiz_attempts WHERE quiz_id=$1 AND user_id=$2`, quizID, userID)
	var a Attempt
	var ajson string
	if err := row.Scan(&a.QuizID, &a.UserID, &ajson, &a.Score, &a.Total, &a.Percentage, &a.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, fault.NotFound("attempt", quizID)
		}
		return Attempt{}, fault.Persistence("get attempt", err)
	}
	if err := json.Unmarshal([]byte(ajson), &a.Answers); err != nil {
		a.Answers = map[string]string{}
	}
	return a, nil
}
