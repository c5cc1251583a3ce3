// Package progress is the source of truth for a learner's position and
// completion state within a course, persisted per (userID, courseID).
package progress

import "context"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// CourseProgress is the persisted navigation/completion record. The
// completed-lesson set references lesson ids, never positions, so it
// survives course reorganization. QuizScores holds the most recent
// percentage per quiz id.
type CourseProgress struct {
	CourseID         string          `json:"course_id"`
	UserID           string          `json:"user_id"`
	CurrentModule    int             `json:"current_module"`
	CurrentLesson    int             `json:"current_lesson"`
	CompletedLessons map[string]bool `json:"completed_lessons"`
	QuizScores       map[string]int  `json:"quiz_scores"`
	Status           Status          `json:"status"`
	LastAccessedAt   int64           `json:"last_accessed_at"`
}

// Store is the progress persistence collaborator. Get returns
// fault.ErrNotFound for a (user, course) pair with no record yet; writes
// are last-write-wins across sessions.
type Store interface {
	Get(ctx context.Context, userID, courseID string) (CourseProgress, error)
	Put(ctx context.Context, p CourseProgress) error
}

// clone deep-copies the record so a failed save never leaves a caller
// holding half-mutated state.
func clone(p CourseProgress) CourseProgress {
	out := p
	out.CompletedLessons = make(map[string]bool, len(p.CompletedLessons))
	for k, v := range p.CompletedLessons {
		out.CompletedLessons[k] = v
	}
	out.QuizScores = make(map[string]int, len(p.QuizScores))
	for k, v := range p.QuizScores {
		out.QuizScores[k] = v
	}
	return out
}
