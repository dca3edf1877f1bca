package entities

import "time"

// PracticeReminder is a per-user opt-in for the daily practice nudge.
type PracticeReminder struct {
	UserID     int64
	ChatID     int64
	IsEnabled  bool
	LastSentAt *time.Time // nullable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPracticeReminder creates an enabled reminder for a user.
func NewPracticeReminder(userID, chatID int64) *PracticeReminder {
	now := time.Now().UTC()
	return &PracticeReminder{
		UserID:    userID,
		ChatID:    chatID,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
