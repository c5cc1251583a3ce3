package http

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/rbac"
	syncx "github.com/lumenlms/lumen/internal/sync"
)

const maxCourseDocBytes = 4 << 20

// ImportCourseHandler accepts a raw course JSON document, validates it
// against the course schema, normalizes it and stores it. The events repo
// may be nil (tests, offline tools).
func ImportCourseHandler(store content.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxCourseDocBytes))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		c, err := content.ParseCourse(raw)
		if err != nil {
			writeErr(w, err)
			return
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.CreatedBy = rbac.SubjectFromContext(r.Context())
		if err := store.PutCourse(r.Context(), c); err != nil {
			writeErr(w, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), syncx.EventCourseImported, c.ID, map[string]string{"title": c.Title}); err != nil {
				log.Printf("event append: %v", err)
			}
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

// GetCourseHandler serves the full tree. Answer keys are stripped unless
// the caller can create courses (teachers grading their own material).
func GetCourseHandler(store content.Store) http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !checker.Has(rbac.RoleFromContext(r.Context()), "course:create") {
			content.StripAnswerKeys(&c)
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func ListCoursesHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := content.ListOpts{
			Q:      strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		list, err := store.ListCourses(r.Context(), opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CourseSummaryHandler exposes the derived aggregates used on catalog and
// dashboard cards.
func CourseSummaryHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                 c.ID,
			"title":              c.Title,
			"total_lessons":      content.TotalLessonCount(c),
			"total_duration_min": content.TotalDurationMinutes(c),
			"document_resources": content.DocumentResourceCount(c),
		})
	}
}

func DeleteCourseHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		role := rbac.RoleFromContext(r.Context())
		if role != "admin" {
			c, err := store.GetCourse(r.Context(), id)
			if err != nil {
				writeErr(w, err)
				return
			}
			if c.CreatedBy != rbac.SubjectFromContext(r.Context()) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}
		if err := store.DeleteCourse(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func EnrollHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		sub := rbac.SubjectFromContext(r.Context())
		if err := store.Enroll(r.Context(), courseID, sub); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"course_id": courseID, "user_id": sub})
	}
}
