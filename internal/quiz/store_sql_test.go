package quiz_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumenlms/lumen/internal/db"
	"github.com/lumenlms/lumen/internal/fault"
	"github.com/lumenlms/lumen/internal/quiz"
)

func TestSQLAttemptStoreOverwrites(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbh.Close()
	store := quiz.NewSQLStore(dbh)

	if _, err := store.LastAttempt(ctx, "u1", "qz1"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	first := quiz.Attempt{
		QuizID: "qz1", UserID: "u1",
		Answers:     map[string]string{"q0": "paris"},
		Score:       1, Total: 3, Percentage: 33,
		SubmittedAt: 1700000000,
	}
	if err := store.SaveAttempt(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := first
	second.Answers = map[string]string{"q0": "paris", "q1": "4", "q2": "blue"}
	second.Score, second.Percentage, second.SubmittedAt = 3, 100, 1700000100
	if err := store.SaveAttempt(ctx, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := store.LastAttempt(ctx, "u1", "qz1")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if got.Percentage != 100 || got.SubmittedAt != 1700000100 {
		t.Fatalf("prior attempt retained: %+v", got)
	}
	if got.Answers["q2"] != "blue" {
		t.Fatalf("answers lost: %+v", got.Answers)
	}

	// attempts are scoped per user
	if _, err := store.LastAttempt(ctx, "u2", "qz1"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("cross-user err = %v, want ErrNotFound", err)
	}
}
