package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
)

const taskKeyPrefix = "task:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore implements Store on a Redis backend so records survive the
// process and can be shared across instances. Expiry is delegated to
// Redis via per-key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and verifies the connection before returning;
// an unreachable backend fails construction rather than surfacing later
// as spurious not-found answers.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %s", ErrUnavailable, cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

func taskKey(id string) string {
	return taskKeyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, id string, t *task.Task, ttl time.Duration) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal task %s: %w", id, err)
	}
	if err := s.client.Set(ctx, taskKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %s", ErrUnavailable, id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*task.Task, error) {
	data, err := s.client.Get(ctx, taskKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get %s: %s", ErrUnavailable, id, err)
	}
	var t task.Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task %s: %w", id, err)
	}
	return &t, nil
}

func (s *RedisStore) Info(ctx context.Context) (*Stats, error) {
	info, err := s.client.Info(ctx, "server", "clients", "memory").Result()
	if err != nil {
		return nil, fmt.Errorf("%w: info: %s", ErrUnavailable, err)
	}
	entries, err := s.client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: dbsize: %s", ErrUnavailable, err)
	}

	fields := parseInfo(info)
	stats := &Stats{
		Backend:    "redis",
		Entries:    entries,
		Version:    fields["redis_version"],
		UsedMemory: fields["used_memory_human"],
	}
	if v, err := strconv.ParseInt(fields["uptime_in_seconds"], 10, 64); err == nil {
		stats.UptimeSeconds = v
	}
	if v, err := strconv.ParseInt(fields["connected_clients"], 10, 64); err == nil {
		stats.ConnectedClients = v
	}
	return stats, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %s", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// parseInfo extracts the key:value lines of a redis INFO reply,
// skipping section headers.
func parseInfo(info string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[key] = value
	}
	return fields
}
