package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the tables the bot needs if they do not exist yet.
// Statements are idempotent so startup is safe against an already
// provisioned database.
func EnsureSchema(ctx context.Context, db DBTX) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			chat_id BIGINT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS review_lists (
			user_id BIGINT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS practice_reminders (
			user_id BIGINT PRIMARY KEY,
			chat_id BIGINT NOT NULL,
			is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			last_sent_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_reminders_enabled
			ON practice_reminders (user_id) WHERE is_enabled;`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
