package key_value

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thefortaiagency/bendavis/internal/model"
)

type PersonaStateStorage struct {
	rdb redis.UniversalClient
}

func NewPersonaStateStorage(rdb redis.UniversalClient) *PersonaStateStorage {
	return &PersonaStateStorage{
		rdb: rdb,
	}
}

func (p *PersonaStateStorage) GetActivePersona(ctx context.Context, chatID int64) (model.PersonaID, error) {
	key := getTelegramPersonaKey(chatID)
	raw, err := p.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrPersonaStateDoesNotExist
		}
		return "", fmt.Errorf("failed to get persona state %s: %w", key, err)
	}
	persona, ok := model.ParsePersonaID(raw)
	if !ok {
		return "", fmt.Errorf("unknown persona %q stored at %s", raw, key)
	}
	return persona, nil
}

func (p *PersonaStateStorage) SetActivePersona(ctx context.Context, chatID int64, persona model.PersonaID) error {
	key := getTelegramPersonaKey(chatID)
	if err := p.rdb.Set(ctx, key, persona.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to save persona state %s: %w", key, err)
	}
	return nil
}

func getTelegramPersonaKey(chatID int64) string {
	return fmt.Sprintf("telegram_persona_%d", chatID)
}
