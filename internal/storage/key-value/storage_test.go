package key_value

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thefortaiagency/bendavis/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestUserStorage(t *testing.T) {
	mr, rdb := newTestRedis(t)
	storage := NewUserStorage(rdb)
	ctx := context.Background()

	_, err := storage.GetUser(ctx, "aoberlin")
	assert.ErrorIs(t, err, model.ErrUserDoesNotExist)

	user := model.User{
		Username:     "aoberlin",
		Name:         "Andy Oberlin",
		PasswordHash: "$2b$10$hash",
		Roles:        []model.UserRole{model.UserRoleDefault, model.UserRoleAdmin},
	}
	require.NoError(t, storage.SaveUser(ctx, user))
	assert.True(t, mr.Exists("user_aoberlin"))

	got, err := storage.GetUser(ctx, "aoberlin")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserStorage_CorruptValue(t *testing.T) {
	mr, rdb := newTestRedis(t)
	require.NoError(t, mr.Set("user_broken", "{not json"))

	_, err := NewUserStorage(rdb).GetUser(context.Background(), "broken")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUserDoesNotExist)
}

func TestSessionStorage(t *testing.T) {
	mr, rdb := newTestRedis(t)
	storage := NewSessionStorage(rdb)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	session := model.Session{
		Token:     uuid.New(),
		Username:  "bdavis",
		Name:      "Brent Davis",
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}
	require.NoError(t, storage.CreateSession(ctx, session))

	key := "session_" + session.Token.String()
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), mr.TTL(key).Seconds(), 5)

	got, err := storage.GetSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, storage.DeleteSession(ctx, session.Token))
	_, err = storage.GetSession(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrSessionDoesNotExist)
	assert.ErrorIs(t, storage.DeleteSession(ctx, session.Token), model.ErrSessionDoesNotExist)
}

func TestSessionStorage_ExpiresWithTTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	storage := NewSessionStorage(rdb)
	ctx := context.Background()

	session := model.Session{Token: uuid.New(), LoggedIn: true, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, storage.CreateSession(ctx, session))

	mr.FastForward(2 * time.Hour)

	_, err := storage.GetSession(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrSessionDoesNotExist)
}

func TestSessionStorage_RejectsExpired(t *testing.T) {
	_, rdb := newTestRedis(t)

	err := NewSessionStorage(rdb).CreateSession(
		context.Background(), model.Session{Token: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)},
	)

	assert.Error(t, err)
}

func TestPersonaStateStorage(t *testing.T) {
	mr, rdb := newTestRedis(t)
	storage := NewPersonaStateStorage(rdb)
	ctx := context.Background()

	_, err := storage.GetActivePersona(ctx, 42)
	assert.ErrorIs(t, err, model.ErrPersonaStateDoesNotExist)

	require.NoError(t, storage.SetActivePersona(ctx, 42, model.PersonaBrent))
	got, err := storage.GetActivePersona(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.PersonaBrent, got)

	require.NoError(t, mr.Set("telegram_persona_7", "grandpa"))
	_, err = storage.GetActivePersona(ctx, 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrPersonaStateDoesNotExist)
}
