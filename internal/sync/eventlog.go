// Package syncx appends progress and attempt mutations to an append-only
// event log, so an external sync or analytics process can replay them.
// Appends are best-effort from the callers' point of view: a failed
// append is logged, never surfaced to the learner.
package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	EventCourseImported  = "CourseImported"
	EventLessonCompleted = "LessonCompleted"
	EventQuizSubmitted   = "QuizSubmitted"
	EventProgressStarted = "ProgressStarted"
)

type Event struct {
	Seq       int64  `json:"seq"`
	Type      string `json:"type"`
	Key       string `json:"key"` // natural key, e.g. courseID/userID
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, typ, key string, data any) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, string(buf), time.Now().Unix())
	return err
}

// Since returns events after the given sequence number, oldest first.
func (r *EventRepo) Since(ctx context.Context, seq int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log WHERE seq > $1 ORDER BY seq ASC LIMIT $2`,
		seq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
