package content

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/lumenlms/lumen/internal/fault"
)

type memoryStore struct {
	mu          sync.RWMutex
	courses     map[string]Course
	enrollments map[string]map[string]bool // courseID -> userID set
}

// NewInMemoryStore backs the content Store with maps, for tests and the
// offline demo path.
func NewInMemoryStore() Store {
	return &memoryStore{
		courses:     map[string]Course{},
		enrollments: map[string]map[string]bool{},
	}
}

func (m *memoryStore) PutCourse(_ context.Context, c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c = cloneCourse(c)
	Normalize(&c)
	m.courses[c.ID] = c
	return nil
}

func (m *memoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, fault.NotFound("course", id)
	}
	// deep copy: callers strip answer keys in place
	return cloneCourse(c), nil
}

func cloneCourse(c Course) Course {
	buf, err := json.Marshal(c)
	if err != nil {
		return c
	}
	var out Course
	if err := json.Unmarshal(buf, &out); err != nil {
		return c
	}
	return out
}

func (m *memoryStore) ListCourses(_ context.Context, opts ListOpts) ([]CourseSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []CourseSummary{}
	for _, c := range m.courses {
		if opts.Q != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, CourseSummary{ID: c.ID, Title: c.Title, CreatedBy: c.CreatedBy, CreatedAt: c.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) DeleteCourse(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return fault.NotFound("course", id)
	}
	delete(m.courses, id)
	return nil
}

func (m *memoryStore) Enroll(_ context.Context, courseID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[courseID]; !ok {
		return fault.NotFound("course", courseID)
	}
	set, ok := m.enrollments[courseID]
	if !ok {
		set = map[string]bool{}
		m.enrollments[courseID] = set
	}
	set[userID] = true
	return nil
}

func (m *memoryStore) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enrollments[courseID][userID], nil
}
