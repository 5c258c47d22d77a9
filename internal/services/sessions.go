package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL is how long an admin session stays valid. Sessions
// are not renewed on use.
const DefaultSessionTTL = 24 * time.Hour

// SessionData is the record held against a bearer token.
type SessionData struct {
	Username  string    `json:"username"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore issues and verifies opaque bearer tokens backed by redis.
// Multiple concurrent sessions per username are allowed.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create mints a fresh token and stores the session with the given TTL.
func (s *SessionStore) Create(ctx context.Context, username string, ttl time.Duration) (string, error) {
	token := utils.GenerateSessionToken()

	data, err := json.Marshal(SessionData{
		Username:  username,
		Admin:     true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Verify returns the session for a token, or nil when the token is
// unknown or expired. Expired keys are simply absent from the store.
func (s *SessionStore) Verify(ctx context.Context, token string) (*SessionData, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}

// Destroy deletes the session. Destroying an already-gone token is not
// an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
