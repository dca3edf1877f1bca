package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
	"github.com/Takoyaki92/goukaku/internal/infra/postgres"
)

var ErrReminderNotFound = errors.New("practice reminder not found")

// ReminderRepository provides access to practice reminder settings in the database.
type ReminderRepository struct {
	db postgres.DBTX
}

// NewReminderRepository creates a new ReminderRepository with the provided database pool.
func NewReminderRepository(db postgres.DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Upsert creates or updates a practice reminder record.
func (r *ReminderRepository) Upsert(ctx context.Context, reminder *entities.PracticeReminder) error {
	query := `
		INSERT INTO practice_reminders (user_id, chat_id, is_enabled, last_sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			is_enabled = EXCLUDED.is_enabled,
			last_sent_at = EXCLUDED.last_sent_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(
		ctx, query,
		reminder.UserID,
		reminder.ChatID,
		reminder.IsEnabled,
		reminder.LastSentAt,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reminder: %w", err)
	}

	return nil
}

// GetByUserID retrieves reminder settings for a user.
// Returns ErrReminderNotFound if the record doesn't exist.
func (r *ReminderRepository) GetByUserID(ctx context.Context, userID int64) (*entities.PracticeReminder, error) {
	query := `
		SELECT user_id, chat_id, is_enabled, last_sent_at, created_at, updated_at
		FROM practice_reminders
		WHERE user_id = $1
	`

	var reminder entities.PracticeReminder
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&reminder.UserID,
		&reminder.ChatID,
		&reminder.IsEnabled,
		&reminder.LastSentAt,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("get reminder: %w", err)
	}

	return &reminder, nil
}

// GetEnabled lists every enabled practice reminder.
func (r *ReminderRepository) GetEnabled(ctx context.Context) ([]*entities.PracticeReminder, error) {
	query := `
		SELECT user_id, chat_id, is_enabled, last_sent_at, created_at, updated_at
		FROM practice_reminders
		WHERE is_enabled
		ORDER BY user_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get enabled reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*entities.PracticeReminder
	for rows.Next() {
		var reminder entities.PracticeReminder
		if err := rows.Scan(
			&reminder.UserID,
			&reminder.ChatID,
			&reminder.IsEnabled,
			&reminder.LastSentAt,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, &reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}

	return reminders, nil
}

// MarkSent records the time a reminder was last delivered.
func (r *ReminderRepository) MarkSent(ctx context.Context, userID int64, sentAt time.Time) error {
	query := `
		UPDATE practice_reminders
		SET last_sent_at = $2, updated_at = $2
		WHERE user_id = $1
	`

	if _, err := r.db.Exec(ctx, query, userID, sentAt); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	return nil
}
