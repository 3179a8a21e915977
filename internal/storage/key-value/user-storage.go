package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thefortaiagency/bendavis/internal/model"
)

type userInternal struct {
	Username     string           `json:"username"`
	Name         string           `json:"name"`
	PasswordHash string           `json:"password_hash"`
	Roles        []model.UserRole `json:"roles"`
}

type UserStorage struct {
	rdb redis.UniversalClient
}

func NewUserStorage(rdb redis.UniversalClient) *UserStorage {
	return &UserStorage{
		rdb: rdb,
	}
}

func (u *UserStorage) SaveUser(ctx context.Context, user model.User) error {
	userInt := userInternal{
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
	}
	userJSON, err := json.Marshal(userInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal user: %w", err)
	}
	userKey := getUserKey(user.Username)
	if err = u.rdb.Set(ctx, userKey, userJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save userInternal %s: %w", userKey, err)
	}
	return nil
}

func (u *UserStorage) GetUser(ctx context.Context, username string) (model.User, error) {
	userKey := getUserKey(username)
	userRaw, err := u.rdb.Get(ctx, userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, model.ErrUserDoesNotExist
		}
		return model.User{}, fmt.Errorf("failed to get userInternal %s: %w", userKey, err)
	}
	var userInt userInternal
	if err = json.Unmarshal([]byte(userRaw), &userInt); err != nil {
		return model.User{}, fmt.Errorf("failed to unmarshal userInternal %s: %w", userKey, err)
	}
	return model.User{
		Username:     userInt.Username,
		Name:         userInt.Name,
		PasswordHash: userInt.PasswordHash,
		Roles:        userInt.Roles,
	}, nil
}

func getUserKey(username string) string {
	return fmt.Sprintf("user_%s", username)
}
