package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thefortaiagency/bendavis/internal/model"
)

// SessionStorage keeps sessions as JSON blobs that redis expires together
// with the session itself.
type SessionStorage struct {
	rdb redis.UniversalClient
	now func() time.Time
}

func NewSessionStorage(rdb redis.UniversalClient) *SessionStorage {
	return &SessionStorage{
		rdb: rdb,
		now: time.Now,
	}
}

func (s *SessionStorage) CreateSession(ctx context.Context, session model.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.Token)
	}
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	sessionKey := getSessionKey(session.Token)
	if err = s.rdb.Set(ctx, sessionKey, sessionJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionKey, err)
	}
	return nil
}

func (s *SessionStorage) GetSession(ctx context.Context, token uuid.UUID) (model.Session, error) {
	sessionKey := getSessionKey(token)
	sessionRaw, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Session{}, model.ErrSessionDoesNotExist
		}
		return model.Session{}, fmt.Errorf("failed to get session %s: %w", sessionKey, err)
	}
	var session model.Session
	if err = json.Unmarshal([]byte(sessionRaw), &session); err != nil {
		return model.Session{}, fmt.Errorf("failed to unmarshal session %s: %w", sessionKey, err)
	}
	return session, nil
}

func (s *SessionStorage) DeleteSession(ctx context.Context, token uuid.UUID) error {
	sessionKey := getSessionKey(token)
	deleted, err := s.rdb.Del(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionKey, err)
	}
	if deleted == 0 {
		return model.ErrSessionDoesNotExist
	}
	return nil
}

func getSessionKey(token uuid.UUID) string {
	return fmt.Sprintf("session_%v", token.String())
}
