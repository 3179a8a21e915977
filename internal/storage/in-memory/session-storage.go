package in_memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/thefortaiagency/bendavis/internal/model"
)

type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[uuid.UUID]model.Session),
	}
}

func (s *SessionStorage) CreateSession(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *SessionStorage) GetSession(_ context.Context, token uuid.UUID) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return model.Session{}, model.ErrSessionDoesNotExist
	}
	return session, nil
}

func (s *SessionStorage) DeleteSession(_ context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return model.ErrSessionDoesNotExist
	}
	delete(s.sessions, token)
	return nil
}
