package service

import (
	"context"
	"time"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

// QuestionSource supplies the static question bank for a level parameter.
type QuestionSource interface {
	GetByLevel(raw string) []entities.Question
}

// BlobStorage persists one serialized review list per user. Get returns nil
// for an absent blob; Set replaces the whole blob.
type BlobStorage interface {
	Get(ctx context.Context, userID int64) ([]byte, error)
	Set(ctx context.Context, userID int64, data []byte) error
}

// UserRepository persists bot users.
type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

// ReminderRepository persists practice reminder opt-ins.
type ReminderRepository interface {
	Upsert(ctx context.Context, reminder *entities.PracticeReminder) error
	GetByUserID(ctx context.Context, userID int64) (*entities.PracticeReminder, error)
	GetEnabled(ctx context.Context) ([]*entities.PracticeReminder, error)
	MarkSent(ctx context.Context, userID int64, sentAt time.Time) error
}

// QuizNotifier is implemented by the delivery layer to render quiz views.
// The service calls it outside of its internal locks.
type QuizNotifier interface {
	ShowQuestion(chatID int64, view QuestionView)
	UpdateCountdown(chatID int64, view QuestionView)
	ShowFeedback(chatID int64, view FeedbackView)
	ShowResults(chatID int64, summary Summary)
}

// ReminderNotifier delivers practice reminders (implemented by the delivery layer).
type ReminderNotifier interface {
	SendPracticeReminder(chatID int64) error
}
