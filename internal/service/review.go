package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

// ErrDuplicateEntry is returned when a question is already in the review
// list. It is a user-visible notice, not a failure: the store is unchanged.
var ErrDuplicateEntry = errors.New("question is already in the review list")

// ReviewService maintains each user's persisted review list: an insertion-
// ordered collection of question results, deduplicated by question text.
//
// Every mutation reads the whole blob, changes it in memory and writes the
// whole blob back. The mutex makes those read-modify-write sequences mutually
// exclusive, so two concurrent adds cannot silently drop each other's entry.
type ReviewService struct {
	storage BlobStorage
	logger  *zap.Logger

	mu sync.Mutex
}

// NewReviewService creates a new ReviewService over the given blob storage.
func NewReviewService(storage BlobStorage, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		storage: storage,
		logger:  logger,
	}
}

// Add appends a result to the user's review list unless an entry with the
// same question text already exists, in which case it returns
// ErrDuplicateEntry and writes nothing.
func (s *ReviewService) Add(ctx context.Context, userID int64, result entities.QuestionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	for _, entry := range list {
		if entry.QuestionText == result.QuestionText {
			return ErrDuplicateEntry
		}
	}

	list = append(list, result)
	if err := s.save(ctx, userID, list); err != nil {
		return err
	}

	s.logger.Info("saved to review list",
		zap.Int64("user_id", userID),
		zap.Int("entries", len(list)),
	)

	return nil
}

// List returns the user's full review list, oldest first.
func (s *ReviewService) List(ctx context.Context, userID int64) ([]entities.QuestionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, userID)
}

// RemoveByQuestionText persists the list with every entry matching text
// excluded. A text that matches nothing leaves the store unchanged and is
// not an error.
func (s *ReviewService) RemoveByQuestionText(ctx context.Context, userID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]entities.QuestionResult, 0, len(list))
	for _, entry := range list {
		if entry.QuestionText != text {
			kept = append(kept, entry)
		}
	}

	if len(kept) == len(list) {
		return nil
	}

	return s.save(ctx, userID, kept)
}

// load decodes the user's blob. A missing blob is an empty list; so is a
// corrupt one, which is logged and overwritten on the next save rather than
// propagated as an error.
func (s *ReviewService) load(ctx context.Context, userID int64) ([]entities.QuestionResult, error) {
	data, err := s.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load review list: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var list []entities.QuestionResult
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("corrupt review list blob, treating as empty",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, nil
	}

	return list, nil
}

func (s *ReviewService) save(ctx context.Context, userID int64, list []entities.QuestionResult) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode review list: %w", err)
	}

	if err := s.storage.Set(ctx, userID, data); err != nil {
		return fmt.Errorf("save review list: %w", err)
	}

	return nil
}
