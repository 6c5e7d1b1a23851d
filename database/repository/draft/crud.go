package draftRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

func key(sessionID string) string {
	return KeyPrefix + sessionID
}

// Save overwrites the draft and refreshes its TTL.
func (r *redisDraftRepo) Save(ctx context.Context, sessionID string, data []byte) error {
	if err := r.client.Set(ctx, key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the stored draft or ErrDraftNotFound.
func (r *redisDraftRepo) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return data, nil
}

// Delete removes the draft. Missing drafts are not an error.
func (r *redisDraftRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
