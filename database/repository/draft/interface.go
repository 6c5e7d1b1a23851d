package draftRepo

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix namespaces wizard drafts in the cache.
const KeyPrefix = "wizard:draft:"

var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository persists the encoded wizard state per session.
type DraftRepository interface {
	Save(ctx context.Context, sessionID string, data []byte) error
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisDraftRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftRepo returns a DraftRepository backed by client. Drafts expire after ttl of inactivity.
func NewRedisDraftRepo(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepo{client: client, ttl: ttl}
}
