package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
	"github.com/Takoyaki92/goukaku/internal/infra/postgres/repository"
)

// ReminderService sends an opt-in daily "time to practice" nudge.
type ReminderService struct {
	repo     ReminderRepository
	notifier ReminderNotifier
	logger   *zap.Logger
	cronSpec string
}

// NewReminderService creates a new ReminderService.
func NewReminderService(repo ReminderRepository, cronSpec string, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		repo:     repo,
		cronSpec: cronSpec,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Toggle flips the reminder opt-in for a user and returns the new state.
func (s *ReminderService) Toggle(ctx context.Context, userID, chatID int64) (bool, error) {
	reminder, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrReminderNotFound) {
			return false, fmt.Errorf("get reminder: %w", err)
		}
		reminder = entities.NewPracticeReminder(userID, chatID)
		if err := s.repo.Upsert(ctx, reminder); err != nil {
			return false, fmt.Errorf("create reminder: %w", err)
		}
		return true, nil
	}

	reminder.IsEnabled = !reminder.IsEnabled
	reminder.ChatID = chatID
	reminder.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, reminder); err != nil {
		return false, fmt.Errorf("upsert reminder: %w", err)
	}

	s.logger.Info("practice reminder toggled",
		zap.Int64("user_id", userID),
		zap.Bool("enabled", reminder.IsEnabled),
	)

	return reminder.IsEnabled, nil
}

// Start runs the reminder scheduler until the context is canceled.
func (s *ReminderService) Start(ctx context.Context) {
	s.logger.Info("reminder service started", zap.String("cron_spec", s.cronSpec))

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.cronSpec, func() {
		if err := s.sendDueReminders(ctx); err != nil {
			s.logger.Error("failed to send practice reminders", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("reminder service stopped")
}

func (s *ReminderService) sendDueReminders(ctx context.Context) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	reminders, err := s.repo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("get enabled reminders: %w", err)
	}

	now := time.Now().UTC()
	sent := 0

	for _, reminder := range reminders {
		if err := s.notifier.SendPracticeReminder(reminder.ChatID); err != nil {
			s.logger.Error("failed to send practice reminder",
				zap.Int64("user_id", reminder.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.MarkSent(ctx, reminder.UserID, now); err != nil {
			s.logger.Error("failed to mark reminder sent",
				zap.Int64("user_id", reminder.UserID),
				zap.Error(err),
			)
		}
		sent++
	}

	s.logger.Info("practice reminders processed", zap.Int("sent", sent))
	return nil
}
