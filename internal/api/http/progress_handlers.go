package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/nav"
	"github.com/lumenlms/lumen/internal/progress"
	"github.com/lumenlms/lumen/internal/rbac"
	syncx "github.com/lumenlms/lumen/internal/sync"
)

// loadCourseForLearner resolves the course and enforces that the caller
// may touch progress in it: enrolled learners, the owning teacher, or an
// admin. Writes the error response itself and reports ok=false otherwise.
func loadCourseForLearner(w http.ResponseWriter, r *http.Request, store content.Store) (content.Course, string, bool) {
	courseID := chi.URLParam(r, "courseID")
	sub := rbac.SubjectFromContext(r.Context())
	role := rbac.RoleFromContext(r.Context())

	c, err := store.GetCourse(r.Context(), courseID)
	if err != nil {
		writeErr(w, err)
		return content.Course{}, "", false
	}
	if role == "admin" || c.CreatedBy == sub {
		return c, sub, true
	}
	enrolled, err := store.IsEnrolled(r.Context(), courseID, sub)
	if err != nil {
		writeErr(w, err)
		return content.Course{}, "", false
	}
	if !enrolled {
		http.Error(w, "not enrolled", http.StatusForbidden)
		return content.Course{}, "", false
	}
	return c, sub, true
}

type progressResponse struct {
	progress.CourseProgress
	CompletionPercentage int `json:"completion_percentage"`
}

func respondProgress(w http.ResponseWriter, status int, p progress.CourseProgress, c content.Course) {
	writeJSON(w, status, progressResponse{
		CourseProgress:       p,
		CompletionPercentage: progress.CompletionPercentage(p, c),
	})
}

// GetProgressHandler lazily creates the record on first access.
func GetProgressHandler(tracker *progress.Tracker, store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sub, ok := loadCourseForLearner(w, r, store)
		if !ok {
			return
		}
		p, err := tracker.Initialize(r.Context(), sub, c.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		respondProgress(w, http.StatusOK, p, c)
	}
}

func CompleteLessonHandler(tracker *progress.Tracker, store content.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sub, ok := loadCourseForLearner(w, r, store)
		if !ok {
			return
		}
		lessonID := chi.URLParam(r, "lessonID")
		p, err := tracker.MarkLessonComplete(r.Context(), sub, c, lessonID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), syncx.EventLessonCompleted, c.ID+"/"+sub, map[string]string{"lesson_id": lessonID}); err != nil {
				log.Printf("event append: %v", err)
			}
		}
		respondProgress(w, http.StatusOK, p, c)
	}
}

// NavigateHandler applies a sequencing op to the stored position.
// Body: {"op":"next"|"previous"|"jump","module":m,"lesson":l}.
func NavigateHandler(tracker *progress.Tracker, store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sub, ok := loadCourseForLearner(w, r, store)
		if !ok {
			return
		}
		var req struct {
			Op     string `json:"op"`
			Module int    `json:"module"`
			Lesson int    `json:"lesson"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		p, err := tracker.Navigate(r.Context(), sub, c, req.Op, nav.Position{Module: req.Module, Lesson: req.Lesson})
		if err != nil {
			writeErr(w, err)
			return
		}
		respondProgress(w, http.StatusOK, p, c)
	}
}
