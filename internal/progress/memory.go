package progress

import (
	"context"
	"sync"

	"github.com/lumenlms/lumen/internal/fault"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]CourseProgress // courseID|userID
}

func NewInMemoryStore() Store {
	return &memoryStore{records: map[string]CourseProgress{}}
}

func recordKey(courseID, userID string) string { return courseID + "|" + userID }

func (m *memoryStore) Get(_ context.Context, userID, courseID string) (CourseProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.records[recordKey(courseID, userID)]
	if !ok {
		return CourseProgress{}, fault.NotFound("progress", courseID+"/"+userID)
	}
	return clone(p), nil
}

func (m *memoryStore) Put(_ context.Context, p CourseProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey(p.CourseID, p.UserID)] = clone(p)
	return nil
}
