// internal/agent/memory/redis.go
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vendor-analytics-agent/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Store persists session snapshots in Redis so a CLI session can be resumed
// across invocations. The pipeline itself never reads it mid-query; it is
// loaded once at session start and saved after each memory update.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: log}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Load restores a session snapshot. A missing key yields an empty snapshot,
// not an error: a fresh session simply has no context yet.
func (s *Store) Load(ctx context.Context, sessionID string) (Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		s.logger.Warn("discarding corrupt session snapshot", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		return Snapshot{}, nil
	}
	return snap, nil
}

// Save writes the snapshot with the configured TTL, refreshing it on every
// successful query.
func (s *Store) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes a persisted session, mirroring an in-process Reset.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
