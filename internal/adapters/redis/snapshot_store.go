package redis

// Package redis provides Redis-based adapters for the console.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goiam/console/internal/domain/session"
)

// SnapshotStore is a Redis-based session snapshot store for production use.
// It handles TTL semantics automatically based on snapshot ExpiresAt.
type SnapshotStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSnapshotStore creates a new Redis-based snapshot store.
func NewSnapshotStore(client redis.UniversalClient) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: "console:session:",
	}
}

// NewSnapshotStoreWithPrefix creates a Redis snapshot store with a custom key prefix.
func NewSnapshotStoreWithPrefix(client redis.UniversalClient, prefix string) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: prefix,
	}
}

func (s *SnapshotStore) Save(ctx context.Context, snap session.Snapshot) error {
	if snap.ID == "" {
		return errors.New("snapshot ID cannot be empty")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := s.prefix + snap.ID
	ttl := time.Until(snap.ExpiresAt)
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SnapshotStore) Get(ctx context.Context, id string) (session.Snapshot, error) {
	if id == "" {
		return session.Snapshot{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Snapshot{}, ErrNotFound
		}
		return session.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}

	var snap session.Snapshot
	if unmarshalErr := json.Unmarshal([]byte(data), &snap); unmarshalErr != nil {
		return session.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", unmarshalErr)
	}

	// Redis TTL normally evicts first; a lagging clock can leave stale entries.
	if time.Now().After(snap.ExpiresAt) {
		// Clean up expired session; if cleanup fails bubble the error up.
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return session.Snapshot{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return session.Snapshot{}, ErrNotFound
	}

	return snap, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + id
	return s.client.Del(ctx, key).Err()
}

// ErrNotFound is returned when a session snapshot is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}
