package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")
)

// dummyHash is compared against when the username is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z5OvS7e6nN7sJmZ7r7JkCq1e")

type UserStorage interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	SaveUser(ctx context.Context, user model.User) error
}

type SessionStorage interface {
	CreateSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context, token uuid.UUID) (model.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
}

type UserUsecaseDeps struct {
	UserStorage    UserStorage
	SessionStorage SessionStorage
	Logger         *zap.Logger
}

type UserUsecase struct {
	UserUsecaseDeps
	authCfg config.Auth
	now     func() time.Time
}

func NewUserUsecase(deps UserUsecaseDeps, authCfg config.Auth) *UserUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &UserUsecase{
		UserUsecaseDeps: deps,
		authCfg:         authCfg,
		now:             time.Now,
	}
}

// SeedUsers stores the configured users, replacing any with the same username.
func (u *UserUsecase) SeedUsers(ctx context.Context, users []config.SeedUser) error {
	for _, seed := range users {
		if _, err := bcrypt.Cost([]byte(seed.PasswordHash)); err != nil {
			return fmt.Errorf("user %s has an invalid password hash: %w", seed.Username, err)
		}
		user := model.User{
			Username:     seed.Username,
			Name:         seed.Name,
			PasswordHash: seed.PasswordHash,
			Roles:        model.ParseUserRoles(seed.Roles),
		}
		if err := u.UserStorage.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("failed to save user %s: %w", seed.Username, err)
		}
	}
	return nil
}

// Login checks the password and opens a session valid for the configured TTL.
func (u *UserUsecase) Login(ctx context.Context, username, password string) (model.Session, error) {
	user, err := u.UserStorage.GetUser(ctx, username)
	if err != nil {
		if !errors.Is(err, model.ErrUserDoesNotExist) {
			return model.Session{}, fmt.Errorf("failed to get user %s: %w", username, err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return model.Session{}, ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Session{}, ErrInvalidCredentials
	}

	now := u.now()
	session := model.Session{
		Token:     uuid.New(),
		Username:  user.Username,
		Name:      user.Name,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(u.authCfg.SessionTTL),
	}
	if err = u.SessionStorage.CreateSession(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	u.Logger.Info("user logged in", zap.String("username", user.Username))
	return session, nil
}

func (u *UserUsecase) Logout(ctx context.Context, token uuid.UUID) error {
	err := u.SessionStorage.DeleteSession(ctx, token)
	if err != nil && !errors.Is(err, model.ErrSessionDoesNotExist) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token. Expired sessions are removed.
func (u *UserUsecase) Authenticate(ctx context.Context, token uuid.UUID) (model.Session, error) {
	session, err := u.SessionStorage.GetSession(ctx, token)
	if err != nil {
		return model.Session{}, err
	}
	if !session.LoggedIn {
		return model.Session{}, model.ErrSessionDoesNotExist
	}
	if session.Expired(u.now()) {
		if err = u.SessionStorage.DeleteSession(ctx, token); err != nil {
			u.Logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return model.Session{}, ErrSessionExpired
	}
	return session, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, username string) (model.User, error) {
	return u.UserStorage.GetUser(ctx, username)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
