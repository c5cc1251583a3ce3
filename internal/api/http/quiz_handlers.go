package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/fault"
	"github.com/lumenlms/lumen/internal/progress"
	"github.com/lumenlms/lumen/internal/quiz"
	"github.com/lumenlms/lumen/internal/rbac"
	syncx "github.com/lumenlms/lumen/internal/sync"
)

type attemptResponse struct {
	quiz.Attempt
	Passed bool `json:"passed"`
}

// SubmitQuizHandler grades an answer set against the quiz definition and
// persists the attempt, replacing any earlier one for the same user.
// Body: {"answers":{"q0":"Paris", ...}}.
func SubmitQuizHandler(tracker *progress.Tracker, store content.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sub, ok := loadCourseForLearner(w, r, store)
		if !ok {
			return
		}
		quizID := chi.URLParam(r, "quizID")
		qz, found := content.FindQuiz(c, quizID)
		if !found {
			writeErr(w, fault.NotFound("quiz", quizID))
			return
		}
		var req struct {
			Answers map[string]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		a, err := tracker.RecordQuizAttempt(r.Context(), sub, c.ID, qz, req.Answers)
		if err != nil {
			writeErr(w, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), syncx.EventQuizSubmitted, quizID+"/"+sub, a); err != nil {
				log.Printf("event append: %v", err)
			}
		}
		writeJSON(w, http.StatusOK, attemptResponse{Attempt: a, Passed: a.Percentage >= quiz.PassThreshold})
	}
}

// LastQuizAttemptHandler returns the caller's most recent attempt for
// resume/review display; 404 when the quiz was never taken.
func LastQuizAttemptHandler(attempts quiz.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "quizID")
		sub := rbac.SubjectFromContext(r.Context())
		a, err := attempts.LastAttempt(r.Context(), sub, quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, attemptResponse{Attempt: a, Passed: a.Percentage >= quiz.PassThreshold})
	}
}
