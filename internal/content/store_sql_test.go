package content_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/db"
	"github.com/lumenlms/lumen/internal/fault"
)

func TestSQLStoreCourseLifecycle(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbh.Close()
	store := content.NewSQLStore(dbh)

	c := content.Course{
		ID:    "c1",
		Title: "Intro to Go",
		Modules: []content.Module{{
			ID:    "m1",
			Title: "Basics",
			Lessons: []content.Lesson{{
				ID: "l1", Title: "Hello", Type: content.LessonReading, DurationMin: 10,
			}},
		}},
		CreatedBy: "t1",
	}
	if err := store.PutCourse(ctx, c); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetCourse(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Intro to Go" || len(got.Modules) != 1 || got.Modules[0].Lessons[0].ID != "l1" {
		t.Fatalf("tree mangled: %+v", got)
	}

	// upsert replaces the tree
	c.Title = "Intro to Go, 2nd ed."
	if err := store.PutCourse(ctx, c); err != nil {
		t.Fatalf("re-put: %v", err)
	}
	if got, _ = store.GetCourse(ctx, "c1"); got.Title != "Intro to Go, 2nd ed." {
		t.Fatalf("upsert ignored: %q", got.Title)
	}

	list, err := store.ListCourses(ctx, content.ListOpts{Q: "intro"})
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}

	enrolled, err := store.IsEnrolled(ctx, "c1", "u1")
	if err != nil || enrolled {
		t.Fatalf("unexpected enrollment: %v, %v", enrolled, err)
	}
	if err := store.Enroll(ctx, "c1", "u1"); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := store.Enroll(ctx, "c1", "u1"); err != nil {
		t.Fatalf("re-enroll must be a no-op: %v", err)
	}
	if enrolled, _ = store.IsEnrolled(ctx, "c1", "u1"); !enrolled {
		t.Fatal("enrollment lost")
	}
	if err := store.Enroll(ctx, "ghost", "u1"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("enroll in missing course: %v", err)
	}

	if err := store.DeleteCourse(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetCourse(ctx, "c1"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
