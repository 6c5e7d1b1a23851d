package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestCheckHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	up := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer up.Close()

	status := CheckHealth(context.Background(), map[string]*redis.Client{"drafts": up}, nil)
	assert.True(t, status.Redis["drafts"])
	assert.False(t, status.Mongo)
	assert.False(t, status.Healthy())
	assert.Equal(t, status.CheckedAt, GetHealthStatus().CheckedAt)

	mr.Close()
	status = CheckHealth(context.Background(), map[string]*redis.Client{"drafts": up}, nil)
	assert.False(t, status.Redis["drafts"])
}
