package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// Sessions idle out a day after their last command.
const sessionTTL = 24 * time.Hour

// RedisStorage implements the Storage interface using Redis for session
// state and the filesystem for world documents.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func sessionKey(id uuid.UUID) string {
	return "game:" + id.String()
}

// SaveGameState saves a session snapshot with the given UUID.
func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, st *game.State) error {
	st.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(st)
	if err != nil {
		r.logger.Error("Failed to marshal session", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(id), string(data), sessionTTL).Err(); err != nil {
		r.logger.Error("Failed to save session", "uuid", id, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// LoadGameState retrieves a session by UUID. Returns nil, nil when the
// session does not exist or has expired.
func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*game.State, error) {
	cmd := r.client.Get(ctx, sessionKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Session not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var st game.State
	if err := json.Unmarshal([]byte(cmd.Val()), &st); err != nil {
		r.logger.Error("Failed to unmarshal session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &st, nil
}

// DeleteGameState removes a session by UUID.
func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
