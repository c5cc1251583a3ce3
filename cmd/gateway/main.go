package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/lumenlms/lumen/internal/api/http"
	auth "github.com/lumenlms/lumen/internal/auth/middleware"
	"github.com/lumenlms/lumen/internal/config"
	"github.com/lumenlms/lumen/internal/content"
	"github.com/lumenlms/lumen/internal/db"
	"github.com/lumenlms/lumen/internal/progress"
	"github.com/lumenlms/lumen/internal/quiz"
	"github.com/lumenlms/lumen/internal/rbac"
	syncx "github.com/lumenlms/lumen/internal/sync"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	courses := content.NewSQLStore(dbh)
	attempts := quiz.NewSQLStore(dbh)
	tracker := progress.NewTracker(progress.NewSQLStore(dbh), attempts)
	events := syncx.NewEventRepo(dbh)
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("course:create")).
			Post("/courses", api.ImportCourseHandler(courses, events))
		pr.With(rbac.Require("course:view")).
			Get("/courses", api.ListCoursesHandler(courses))
		pr.With(rbac.Require("course:view")).
			Get("/courses/{courseID}", api.GetCourseHandler(courses))
		pr.With(rbac.Require("course:view")).
			Get("/courses/{courseID}/summary", api.CourseSummaryHandler(courses))
		pr.With(rbac.RequireAny("course:delete-own", "course:delete")).
			Delete("/courses/{courseID}", api.DeleteCourseHandler(courses))
		pr.With(rbac.Require("course:enroll")).
			Post("/courses/{courseID}/enroll", api.EnrollHandler(courses))

		// Learner flow
		pr.With(rbac.Require("progress:view-own")).
			Get("/courses/{courseID}/progress", api.GetProgressHandler(tracker, courses))
		pr.With(rbac.Require("progress:update-own")).
			Post("/courses/{courseID}/progress/lessons/{lessonID}/complete", api.CompleteLessonHandler(tracker, courses, events))
		pr.With(rbac.Require("progress:update-own")).
			Post("/courses/{courseID}/progress/navigate", api.NavigateHandler(tracker, courses))

		pr.With(rbac.Require("quiz:submit")).
			Post("/courses/{courseID}/quizzes/{quizID}/attempts", api.SubmitQuizHandler(tracker, courses, events))
		pr.With(rbac.Require("quiz:view-own")).
			Get("/quizzes/{quizID}/attempts/last", api.LastQuizAttemptHandler(attempts))

		// Sync/analytics feed (admin)
		pr.With(rbac.Require("events:read")).
			Get("/events", api.ListEventsHandler(events))

		// Users (admin)
		pr.With(rbac.Require("users:create")).
			Post("/users", api.CreateUserHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(503)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
