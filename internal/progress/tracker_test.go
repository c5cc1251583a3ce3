package progress

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/fault"
	"github.com/lumenlms/lumen/internal/nav"
	"github.com/lumenlms/lumen/internal/quiz"
)

func testCourse() content.Course {
	c := content.Course{ID: "c1", Title: "Test course"}
	for m := 0; m < 2; m++ {
		mod := content.Module{ID: "m" + strconv.Itoa(m)}
		for l := 0; l < 3; l++ {
			mod.Lessons = append(mod.Lessons, content.Lesson{ID: "m" + strconv.Itoa(m) + "l" + strconv.Itoa(l)})
		}
		c.Modules = append(c.Modules, mod)
	}
	return c
}

func newTestTracker() *Tracker {
	return NewTracker(NewInMemoryStore(), quiz.NewInMemoryStore())
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()
	c := testCourse()

	p1, err := tr.Initialize(ctx, "u1", c.ID)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if p1.CurrentModule != 0 || p1.CurrentLesson != 0 || p1.Status != StatusInProgress {
		t.Fatalf("fresh record wrong: %+v", p1)
	}

	if _, err := tr.MarkLessonComplete(ctx, "u1", c, "m0l0"); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	p2, err := tr.Initialize(ctx, "u1", c.ID)
	if err != nil {
		t.Fatalf("re-initialize: %v", err)
	}
	if !p2.CompletedLessons["m0l0"] {
		t.Fatal("re-initialize wiped existing progress")
	}
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()
	c := testCourse()

	p1, err := tr.MarkLessonComplete(ctx, "u1", c, "m0l0")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	p2, err := tr.MarkLessonComplete(ctx, "u1", c, "m0l0")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(p1.CompletedLessons) != 1 || len(p2.CompletedLessons) != 1 {
		t.Fatalf("set sizes %d, %d; want 1, 1", len(p1.CompletedLessons), len(p2.CompletedLessons))
	}
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	tr := newTestTracker()
	_, err := tr.MarkLessonComplete(context.Background(), "u1", testCourse(), "ghost")
	if !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCompletionPercentageMonotone(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()
	c := testCourse()

	prev := 0
	lessons := []string{"m0l0", "m0l1", "m0l2", "m1l0", "m1l1", "m1l2"}
	for i, id := range lessons {
		p, err := tr.MarkLessonComplete(ctx, "u1", c, id)
		if err != nil {
			t.Fatalf("mark %s: %v", id, err)
		}
		pct := CompletionPercentage(p, c)
		if pct < prev {
			t.Fatalf("percentage decreased: %d -> %d", prev, pct)
		}
		if pct > 100 {
			t.Fatalf("percentage over 100: %d", pct)
		}
		if i == 1 && pct != 33 {
			t.Fatalf("2/6 lessons = %d%%, want 33", pct)
		}
		prev = pct
	}
	if prev != 100 {
		t.Fatalf("all lessons done but percentage = %d", prev)
	}

	p, _ := tr.Initialize(ctx, "u1", c.ID)
	if p.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", p.Status)
	}
}

func TestCompletionPercentageEmptyCourse(t *testing.T) {
	p := CourseProgress{CompletedLessons: map[string]bool{"stale": true}}
	if got := CompletionPercentage(p, content.Course{}); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestNavigatePersistsPosition(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker()
	c := testCourse()

	p, err := tr.Navigate(ctx, "u1", c, "next", nav.Position{})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if p.CurrentModule != 0 || p.CurrentLesson != 1 {
		t.Fatalf("position %d/%d, want 0/1", p.CurrentModule, p.CurrentLesson)
	}
	p, err = tr.Navigate(ctx, "u1", c, "jump", nav.Position{Module: 5, Lesson: 0})
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if p.CurrentModule != 1 || p.CurrentLesson != 0 {
		t.Fatalf("jump clamped to %d/%d, want 1/0", p.CurrentModule, p.CurrentLesson)
	}
	if _, err := tr.Navigate(ctx, "u1", c, "sideways", nav.Position{}); !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("unknown op err = %v, want ErrValidation", err)
	}
}

func TestRecordQuizAttemptOverwrites(t *testing.T) {
	ctx := context.Background()
	attempts := quiz.NewInMemoryStore()
	tr := NewTracker(NewInMemoryStore(), attempts)
	c := testCourse()
	qz := content.Quiz{ID: "qz1", Questions: []content.Question{
		{ID: "q1", AnswerKey: content.AnswerKey{"yes"}},
		{ID: "q2", AnswerKey: content.AnswerKey{"no"}},
	}}

	a1, err := tr.RecordQuizAttempt(ctx, "u1", c.ID, qz, map[string]string{"q1": "yes", "q2": "yes"})
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if a1.Score != 1 || a1.Percentage != 50 {
		t.Fatalf("first attempt graded %+v", a1)
	}

	a2, err := tr.RecordQuizAttempt(ctx, "u1", c.ID, qz, map[string]string{"q1": "yes", "q2": "no"})
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if a2.Percentage != 100 {
		t.Fatalf("second attempt graded %+v", a2)
	}

	last, err := attempts.LastAttempt(ctx, "u1", "qz1")
	if err != nil {
		t.Fatalf("last attempt: %v", err)
	}
	if last.Percentage != 100 {
		t.Fatalf("prior attempt not overwritten: %+v", last)
	}

	p, _ := tr.Initialize(ctx, "u1", c.ID)
	if p.QuizScores["qz1"] != 100 {
		t.Fatalf("score map not mirrored: %+v", p.QuizScores)
	}
}

// brokenStore fails every write, to pin down the failure semantics.
type brokenStore struct{ inner Store }

func (b brokenStore) Get(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	return b.inner.Get(ctx, userID, courseID)
}

func (b brokenStore) Put(context.Context, CourseProgress) error {
	return fault.Persistence("put progress", errors.New("disk on fire"))
}

func TestPersistenceFailureSurfacesAndPreservesState(t *testing.T) {
	ctx := context.Background()
	inner := NewInMemoryStore()
	healthy := NewTracker(inner, quiz.NewInMemoryStore())
	c := testCourse()

	before, err := healthy.MarkLessonComplete(ctx, "u1", c, "m0l0")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tr := NewTracker(brokenStore{inner: inner}, quiz.NewInMemoryStore())
	if _, err := tr.MarkLessonComplete(ctx, "u1", c, "m0l1"); !errors.Is(err, fault.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}

	after, err := inner.Get(ctx, "u1", c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(after.CompletedLessons) != len(before.CompletedLessons) {
		t.Fatalf("failed save mutated stored state: %+v", after.CompletedLessons)
	}
}
