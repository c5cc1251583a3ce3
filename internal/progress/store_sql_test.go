package progress_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumenlms/lumen/internal/db"
	"github.com/lumenlms/lumen/internal/fault"
	"github.com/lumenlms/lumen/internal/progress"
)

func openTestStore(t *testing.T) *progress.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return progress.NewSQLStore(dbh)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.Get(ctx, "u1", "c1"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	p := progress.CourseProgress{
		CourseID:         "c1",
		UserID:           "u1",
		CurrentModule:    1,
		CurrentLesson:    2,
		CompletedLessons: map[string]bool{"l1": true, "l2": true},
		QuizScores:       map[string]int{"qz1": 67},
		Status:           progress.StatusInProgress,
		LastAccessedAt:   1700000000,
	}
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentModule != 1 || got.CurrentLesson != 2 {
		t.Fatalf("position %d/%d", got.CurrentModule, got.CurrentLesson)
	}
	if !got.CompletedLessons["l2"] || got.QuizScores["qz1"] != 67 {
		t.Fatalf("json columns lost data: %+v", got)
	}

	// upsert: the second write wins
	p.CurrentLesson = 0
	p.CompletedLessons["l3"] = true
	if err := store.Put(ctx, p); err != nil {
		t.Fatalf("re-put: %v", err)
	}
	got, err = store.Get(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("re-get: %v", err)
	}
	if got.CurrentLesson != 0 || len(got.CompletedLessons) != 3 {
		t.Fatalf("upsert did not overwrite: %+v", got)
	}
}
