package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

// UserService keeps the users table in sync with whoever talks to the bot.
type UserService struct {
	repo   UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// EnsureUser registers the user on first contact and refreshes the chat
// binding on every later one.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	user := entities.NewUser(userID, chatID)
	user.CreatedAt = time.Now().UTC()

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}

	return nil
}
