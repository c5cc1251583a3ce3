package quiz

import (
	"context"
	"sync"

	"github.com/lumenlms/lumen/internal/fault"
)

type memoryStore struct {
	mu       sync.RWMutex
	attempts map[string]Attempt // quizID|userID
}

func NewInMemoryStore() AttemptStore {
	return &memoryStore{attempts: map[string]Attempt{}}
}

func attemptKey(quizID, userID string) string { return quizID + "|" + userID }

func (m *memoryStore) SaveAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[attemptKey(a.QuizID, a.UserID)] = a
	return nil
}

func (m *memoryStore) LastAttempt(_ context.Context, userID, quizID string) (Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[attemptKey(quizID, userID)]
	if !ok {
		return Attempt{}, fault.NotFound("attempt", quizID)
	}
	return a, nil
}
