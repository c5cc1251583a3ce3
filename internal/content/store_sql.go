package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/lumenlms/lumen/internal/fault"
)

// SQLStore persists courses as a JSON-encoded module tree in a TEXT
// column, one row per course. Works against sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutCourse(ctx context.Context, c Course) error {
	mj, err := json.Marshal(c.Modules)
	if err != nil {
		return fault.Validation(err.Error())
	}
	createdAt := c.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO courses (id,title,modules_json,created_by,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=excluded.title, modules_json=excluded.modules_json`,
		c.ID, c.Title, string(mj), c.CreatedBy, createdAt)
	if err != nil {
		return fault.Persistence("put course", err)
	}
	return nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,modules_json,created_by,created_at FROM courses WHERE id=$1`, id)
	var c Course
	var mjson string
	if err := row.Scan(&c.ID, &c.Title, &mjson, &c.CreatedBy, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, fault.NotFound("course", id)
		}
		return Course{}, fault.Persistence("get course", err)
	}
	if err := json.Unmarshal([]byte(mjson), &c.Modules); err != nil {
		return Course{}, fault.Validation(err.Error())
	}
	Normalize(&c)
	return c, nil
}

func (s *SQLStore) ListCourses(ctx context.Context, opts ListOpts) ([]CourseSummary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	q := `SELECT id,title,created_by,created_at FROM courses WHERE 1=1`
	args := []any{}
	if opts.Q != "" {
		q += ` AND lower(title) LIKE '%' || lower($1) || '%'`
		args = append(args, opts.Q)
	}
	q += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fault.Persistence("list courses", err)
	}
	defer rows.Close()
	out := []CourseSummary{}
	for rows.Next() {
		var cs CourseSummary
		if err := rows.Scan(&cs.ID, &cs.Title, &cs.CreatedBy, &cs.CreatedAt); err != nil {
			return nil, fault.Persistence("scan course", err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("list courses", err)
	}
	return out, nil
}

func (s *SQLStore) DeleteCourse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return fault.Persistence("delete course", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("course", id)
	}
	return nil
}

func (s *SQLStore) Enroll(ctx context.Context, courseID, userID string) error {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO enrollments (course_id,user_id,enrolled_at)
		VALUES ($1,$2,$3) ON CONFLICT (course_id,user_id) DO NOTHING`,
		courseID, userID, time.Now().Unix())
	if err != nil {
		return fault.Persistence("enroll", err)
	}
	return nil
}

func (s *SQLStore) IsEnrolled(ctx context.Context, courseID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM enrollments WHERE course_id=$1 AND user_id=$2`, courseID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fault.Persistence("enrollment lookup", err)
	}
	return true, nil
}
