package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrSessionDoesNotExist = errors.New("session does not exist")

	ErrPersonaStateDoesNotExist = errors.New("persona state does not exist")
)

type User struct {
	Username     string
	Name         string
	PasswordHash string
	Roles        []UserRole
}

func (u User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is a server-side login record. The cookie carries only Token.
type Session struct {
	Token     uuid.UUID `json:"token"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	LoggedIn  bool      `json:"loggedIn"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
