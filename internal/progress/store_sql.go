package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lumenlms/lumen/internal/fault"
)

// SQLStore keeps one row per (course, user). The completed-lesson set and
// quiz score map ride in JSON TEXT columns; there is no row versioning —
// concurrent writers are last-write-wins.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	row := s.db.QueryRowContext(ctx, `SELECT course_id,user_id,current_module,current_lesson,completed_json,quiz_scores_json,status,last_accessed_at
		FROM course_progress WHERE course_id=$1 AND user_id=$2`, courseID, userID)
	var p CourseProgress
	var cjson, qjson string
	if err := row.Scan(&p.CourseID, &p.UserID, &p.CurrentModule, &p.CurrentLesson, &cjson, &qjson, &p.Status, &p.LastAccessedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CourseProgress{}, fault.NotFound("progress", courseID+"/"+userID)
		}
		return CourseProgress{}, fault.Persistence("get progress", err)
	}
	if err := json.Unmarshal([]byte(cjson), &p.CompletedLessons); err != nil {
		p.CompletedLessons = map[string]bool{}
	}
	if err := json.Unmarshal([]byte(qjson), &p.QuizScores); err != nil {
		p.QuizScores = map[string]int{}
	}
	return p, nil
}

func (s *SQLStore) Put(ctx context.Context, p CourseProgress) error {
	cj, err := json.Marshal(p.CompletedLessons)
	if err != nil {
		return fault.Validation(err.Error())
	}
	qj, err := json.Marshal(p.QuizScores)
	if err != nil {
		return fault.Validation(err.Error())
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO course_progress
		(course_id,user_id,current_module,current_lesson,completed_json,quiz_scores_json,status,last_accessed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (course_id,user_id) DO UPDATE SET
			current_module=excluded.current_module,
			current_lesson=excluded.current_lesson,
			completed_json=excluded.completed_json,
			quiz_scores_json=excluded.quiz_scores_json,
			status=excluded.status,
			last_accessed_at=excluded.last_accessed_at`,
		p.CourseID, p.UserID, p.CurrentModule, p.CurrentLesson, string(cj), string(qj), string(p.Status), p.LastAccessedAt)
	if err != nil {
		return fault.Persistence("put progress", err)
	}
	return nil
}
