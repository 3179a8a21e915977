package in_memory

import (
	"context"
	"sync"

	"github.com/thefortaiagency/bendavis/internal/model"
)

type PersonaStateStorage struct {
	mu     sync.RWMutex
	active map[int64]model.PersonaID
}

func NewPersonaStateStorage() *PersonaStateStorage {
	return &PersonaStateStorage{
		active: make(map[int64]model.PersonaID),
	}
}

func (p *PersonaStateStorage) GetActivePersona(_ context.Context, chatID int64) (model.PersonaID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	persona, ok := p.active[chatID]
	if !ok {
		return "", model.ErrPersonaStateDoesNotExist
	}
	return persona, nil
}

func (p *PersonaStateStorage) SetActivePersona(_ context.Context, chatID int64, persona model.PersonaID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active[chatID] = persona
	return nil
}
