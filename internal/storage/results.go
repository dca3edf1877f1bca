package storage

import (
	"sync"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

// ResultStorage provides in-memory storage for the most recent finished quiz
// results by chat ID, so the results screen can offer save-to-review actions
// after the session itself is gone.
type ResultStorage struct {
	mu      sync.RWMutex
	results map[int64][]entities.QuestionResult
}

// NewResultStorage creates a new ResultStorage.
func NewResultStorage() *ResultStorage {
	return &ResultStorage{
		results: make(map[int64][]entities.QuestionResult),
	}
}

// Store saves the result list for a given chat ID, replacing any previous one.
func (s *ResultStorage) Store(chatID int64, results []entities.QuestionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[chatID] = results
}

// Get retrieves the result list for a given chat ID.
func (s *ResultStorage) Get(chatID int64) []entities.QuestionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[chatID]
}

// Delete removes the result list for a given chat ID.
func (s *ResultStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, chatID)
}
