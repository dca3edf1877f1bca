package redisblob

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const reviewKeyPrefix = "review_list:"

// ReviewBlobStorage keeps each user's review list under a single redis key,
// mirroring the one-blob-per-user contract of the postgres backend.
type ReviewBlobStorage struct {
	client *redis.Client
}

// NewReviewBlobStorage creates a new ReviewBlobStorage over the given client.
func NewReviewBlobStorage(client *redis.Client) *ReviewBlobStorage {
	return &ReviewBlobStorage{client: client}
}

// NewClient builds a redis client from connection parameters.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func reviewKey(userID int64) string {
	return reviewKeyPrefix + strconv.FormatInt(userID, 10)
}

// Get returns the raw review list blob for a user, or nil if the key is absent.
func (s *ReviewBlobStorage) Get(ctx context.Context, userID int64) ([]byte, error) {
	data, err := s.client.Get(ctx, reviewKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review list: %w", err)
	}

	return data, nil
}

// Set replaces the user's review list blob. The list never expires on its own.
func (s *ReviewBlobStorage) Set(ctx context.Context, userID int64, data []byte) error {
	if err := s.client.Set(ctx, reviewKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("set review list: %w", err)
	}

	return nil
}
