package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Takoyaki92/goukaku/internal/infra/postgres"
)

// ReviewBlobRepository stores each user's review list as a single JSONB blob,
// one row per user. The whole blob is read and written back on every
// mutation; the review service serializes those read-modify-write sequences.
type ReviewBlobRepository struct {
	db postgres.DBTX
}

// NewReviewBlobRepository creates a new ReviewBlobRepository with the provided database pool.
func NewReviewBlobRepository(db postgres.DBTX) *ReviewBlobRepository {
	return &ReviewBlobRepository{db: db}
}

// Get returns the raw review list blob for a user, or nil if none is stored yet.
func (r *ReviewBlobRepository) Get(ctx context.Context, userID int64) ([]byte, error) {
	query := "SELECT data FROM review_lists WHERE user_id = $1"

	var data []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review list: %w", err)
	}

	return data, nil
}

// Set replaces the user's review list blob.
func (r *ReviewBlobRepository) Set(ctx context.Context, userID int64, data []byte) error {
	query := `
		INSERT INTO review_lists (user_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, userID, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("set review list: %w", err)
	}

	return nil
}
