package content

import "context"

type ListOpts struct {
	Q      string // substring match on title
	Limit  int
	Offset int
}

// CourseSummary is the list-view projection; the full module tree is only
// loaded for single-course reads.
type CourseSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Store is the content persistence collaborator. GetCourse returns
// fault.ErrNotFound for absent ids; driver failures come back wrapped in
// fault.ErrPersistence.
type Store interface {
	PutCourse(ctx context.Context, c Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context, opts ListOpts) ([]CourseSummary, error)
	DeleteCourse(ctx context.Context, id string) error

	Enroll(ctx context.Context, courseID, userID string) error
	IsEnrolled(ctx context.Context, courseID, userID string) (bool, error)
}
