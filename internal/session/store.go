// Package session implements the server-side session store.
//
// A session is an opaque token mapped to the authenticated user's identity.
// Sessions are created at login and removed at logout; there is no
// server-side expiry. The one-shot status reset at process start compensates
// for state left behind by sessions that were never logged out.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Session identifies the authenticated user behind a token.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Store persists session tokens.
type Store interface {
	// Create issues a new opaque token for the given identity.
	Create(ctx context.Context, userID uint, username string) (string, error)
	// Get resolves a token. Returns (nil, nil) when the token is unknown.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

// NewStore returns a Redis-backed store when a client is available, otherwise
// an in-process store. The in-process fallback keeps a single instance
// functional without Redis; sessions then do not survive a restart, which the
// startup status reset already accounts for.
func NewStore(client *redis.Client) Store {
	if client != nil {
		return &redisStore{client: client}
	}
	return newMemoryStore()
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Create(ctx context.Context, userID uint, username string) (string, error) {
	token := uuid.NewString()
	b, err := json.Marshal(Session{UserID: userID, Username: username})
	if err != nil {
		return "", err
	}
	// No TTL: sessions are only removed by logout.
	if err := s.client.Set(ctx, keyPrefix+token, b, 0).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (s *memoryStore) Create(_ context.Context, userID uint, username string) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = Session{UserID: userID, Username: username}
	s.mu.Unlock()
	return token, nil
}

func (s *memoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
