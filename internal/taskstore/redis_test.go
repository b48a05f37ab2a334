package taskstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient returns a client pointed at a port nothing listens
// on, so store operations fail at dial time.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestRedisStoreUnavailableIsNotNotFound(t *testing.T) {
	ctx := context.Background()
	store := &RedisStore{client: unreachableClient()}
	defer store.Close()

	_, err := store.Get(ctx, "T-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))

	err = store.Put(ctx, "T-1", newTask("T-1"), time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = store.Ping(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestTaskKey(t *testing.T) {
	assert.Equal(t, "task:01ARZ3NDEKTSV4RRFFQ69G5FAV", taskKey("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
}

func TestParseInfo(t *testing.T) {
	info := "# Server\r\nredis_version:7.2.1\r\nuptime_in_seconds:12345\r\n\r\n# Clients\r\nconnected_clients:2\r\n# Memory\r\nused_memory_human:1.05M\r\n"
	fields := parseInfo(info)

	assert.Equal(t, "7.2.1", fields["redis_version"])
	assert.Equal(t, "12345", fields["uptime_in_seconds"])
	assert.Equal(t, "2", fields["connected_clients"])
	assert.Equal(t, "1.05M", fields["used_memory_human"])
	_, ok := fields["# Server"]
	assert.False(t, ok)
}
