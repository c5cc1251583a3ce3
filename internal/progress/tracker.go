package progress

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/fault"
	"github.com/lumenlms/lumen/internal/nav"
	"github.com/lumenlms/lumen/internal/quiz"
)

// Tracker mutates progress records in response to learner actions and
// keeps the attempt store in step with the per-course quiz score map.
type Tracker struct {
	store    Store
	attempts quiz.AttemptStore
}

func NewTracker(store Store, attempts quiz.AttemptStore) *Tracker {
	return &Tracker{store: store, attempts: attempts}
}

// Initialize returns the existing record for (userID, courseID), or lazily
// creates a fresh one at (0,0). Idempotent: an existing record is never
// overwritten.
func (t *Tracker) Initialize(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	p, err := t.store.Get(ctx, userID, courseID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, fault.ErrNotFound) {
		return CourseProgress{}, err
	}
	p = CourseProgress{
		CourseID:         courseID,
		UserID:           userID,
		CompletedLessons: map[string]bool{},
		QuizScores:       map[string]int{},
		Status:           StatusInProgress,
		LastAccessedAt:   time.Now().Unix(),
	}
	if err := t.store.Put(ctx, p); err != nil {
		return CourseProgress{}, err
	}
	return p, nil
}

// MarkLessonComplete adds lessonID to the completed set (set semantics —
// a second call is a no-op that still returns the valid record) and
// flips status to completed once every lesson in the course is covered.
func (t *Tracker) MarkLessonComplete(ctx context.Context, userID string, c content.Course, lessonID string) (CourseProgress, error) {
	if !content.HasLesson(c, lessonID) {
		return CourseProgress{}, fault.NotFound("lesson", lessonID)
	}
	p, err := t.Initialize(ctx, userID, c.ID)
	if err != nil {
		return CourseProgress{}, err
	}
	next := clone(p)
	next.CompletedLessons[lessonID] = true
	next.LastAccessedAt = time.Now().Unix()
	if completedCount(next, c) >= content.TotalLessonCount(c) && content.TotalLessonCount(c) > 0 {
		next.Status = StatusCompleted
	}
	if err := t.store.Put(ctx, next); err != nil {
		return CourseProgress{}, err
	}
	return next, nil
}

// Navigate applies a sequencing op ("next", "previous", "jump") and
// persists the resulting position. The stored position is clamped against
// the course first, in case the tree shrank since it was written.
func (t *Tracker) Navigate(ctx context.Context, userID string, c content.Course, op string, target nav.Position) (CourseProgress, error) {
	p, err := t.Initialize(ctx, userID, c.ID)
	if err != nil {
		return CourseProgress{}, err
	}
	pos := nav.Clamp(c, nav.Position{Module: p.CurrentModule, Lesson: p.CurrentLesson})
	switch op {
	case "next":
		pos = nav.Next(c, pos)
	case "previous":
		pos = nav.Previous(c, pos)
	case "jump":
		pos = nav.JumpTo(c, target.Module, target.Lesson)
	default:
		return CourseProgress{}, fault.Validation("unknown navigation op " + op)
	}
	next := clone(p)
	next.CurrentModule = pos.Module
	next.CurrentLesson = pos.Lesson
	next.LastAccessedAt = time.Now().Unix()
	if err := t.store.Put(ctx, next); err != nil {
		return CourseProgress{}, err
	}
	return next, nil
}

// RecordQuizAttempt grades the answer set, overwrites the user's previous
// attempt for the quiz, and mirrors the percentage into the progress
// record's score map.
func (t *Tracker) RecordQuizAttempt(ctx context.Context, userID, courseID string, qz content.Quiz, answers map[string]string) (quiz.Attempt, error) {
	res := quiz.Grade(qz, answers)
	a := quiz.Attempt{
		QuizID:      qz.ID,
		UserID:      userID,
		Answers:     answers,
		Score:       res.Score,
		Total:       res.Total,
		Percentage:  res.Percentage,
		SubmittedAt: time.Now().Unix(),
	}
	if err := t.attempts.SaveAttempt(ctx, a); err != nil {
		return quiz.Attempt{}, err
	}
	p, err := t.Initialize(ctx, userID, courseID)
	if err != nil {
		return quiz.Attempt{}, err
	}
	next := clone(p)
	next.QuizScores[qz.ID] = res.Percentage
	next.LastAccessedAt = a.SubmittedAt
	if err := t.store.Put(ctx, next); err != nil {
		return quiz.Attempt{}, err
	}
	return a, nil
}

// CompletionPercentage is completed/total*100, rounded, 0 for a course
// with no lessons, and never above 100. Only lessons that still exist in
// the course count — stale ids left over from a reorganized course don't
// inflate the number.
func CompletionPercentage(p CourseProgress, c content.Course) int {
	total := content.TotalLessonCount(c)
	if total == 0 {
		return 0
	}
	pct := int(math.Round(float64(completedCount(p, c)) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

func completedCount(p CourseProgress, c content.Course) int {
	n := 0
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if p.CompletedLessons[l.ID] {
				n++
			}
		}
	}
	return n
}
