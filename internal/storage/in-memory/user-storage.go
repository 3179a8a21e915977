package in_memory

import (
	"context"
	"sync"

	"github.com/thefortaiagency/bendavis/internal/model"
)

type UserStorage struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[string]model.User),
	}
}

func (u *UserStorage) SaveUser(_ context.Context, user model.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.Roles = append([]model.UserRole(nil), user.Roles...)
	u.users[user.Username] = user
	return nil
}

func (u *UserStorage) GetUser(_ context.Context, username string) (model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.users[username]
	if !ok {
		return model.User{}, model.ErrUserDoesNotExist
	}
	return user, nil
}
