package authService

import (
	"context"
	"io"
	"testing"
	"time"

	"ExpenseTracker/internal/api/auth"
	authRepository "ExpenseTracker/internal/api/auth/repository"
	"ExpenseTracker/internal/entity"
	"ExpenseTracker/pkg/bcrypt"
	jwtPkg "ExpenseTracker/pkg/jwt"
	redisPkg "ExpenseTracker/pkg/redis"
	"ExpenseTracker/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cryptoBcrypt "golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byID map[string]entity.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	for _, u := range f.byID {
		if u.Username == user.Username {
			return auth.ErrUsernameAlreadyExists
		}
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (entity.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

type fakeRepository struct {
	users *fakeUsers
}

func (r *fakeRepository) NewClient(bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    r.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fixture struct {
	svc   AuthService
	users *fakeUsers
	mr    *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "access-secret")
	t.Setenv(jwtPkg.RefreshTokenSecret, "refresh-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := &fakeUsers{byID: map[string]entity.User{}}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	svc := New(logger,
		&fakeRepository{users: users},
		redisPkg.NewFromClient(client),
		bcrypt.NewWithCost(cryptoBcrypt.MinCost),
		utils.NewWithClock(func() time.Time { return now }),
	)

	return &fixture{svc: svc, users: users, mr: mr}
}

func (f *fixture) register(t *testing.T, username, password string) auth.UserResponse {
	t.Helper()
	res, err := f.svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return res
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	res := f.register(t, " alice ", "correct-horse")
	assert.Equal(t, "alice", res.Username)
	assert.Len(t, res.ID, 26)

	stored := f.users.byID[res.ID]
	assert.NotEqual(t, "correct-horse", stored.Password)

	_, err := f.svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{Username: "alice", Password: "another-pass"})
	assert.ErrorIs(t, err, auth.ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "correct-horse")

	res, err := f.svc.Auth().Login(context.Background(), auth.LoginUserRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Access)
	assert.NotEmpty(t, res.Refresh)
	assert.InDelta(t, 60, res.ExpiresInMinutes, 1)

	claims, err := jwtPkg.Parse(res.Access, jwtPkg.AccessTokenSecret, jwtPkg.TokenTypeAccess)
	require.NoError(t, err)
	principal, err := jwtPkg.UserFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, "alice", principal.Username)

	rc, err := jwtPkg.Parse(res.Refresh, jwtPkg.RefreshTokenSecret, jwtPkg.TokenTypeRefresh)
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("refresh_token:"+rc["jti"].(string)))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "correct-horse")

	_, err := f.svc.Auth().Login(context.Background(), auth.LoginUserRequest{Username: "alice", Password: "wrong-horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidUsernameOrPassword)

	_, err = f.svc.Auth().Login(context.Background(), auth.LoginUserRequest{Username: "mallory", Password: "correct-horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidUsernameOrPassword)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "correct-horse")
	ctx := context.Background()

	first, err := f.svc.Auth().Login(ctx, auth.LoginUserRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := f.svc.Auth().Refresh(ctx, auth.RefreshTokenRequest{Refresh: first.Refresh})
	require.NoError(t, err)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	_, err = f.svc.Auth().Refresh(ctx, auth.RefreshTokenRequest{Refresh: first.Refresh})
	assert.ErrorIs(t, err, auth.ErrorInvalidToken)

	_, err = f.svc.Auth().Refresh(ctx, auth.RefreshTokenRequest{Refresh: second.Access})
	assert.ErrorIs(t, err, auth.ErrorInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "correct-horse")
	ctx := context.Background()

	tokens, err := f.svc.Auth().Login(ctx, auth.LoginUserRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Auth().Logout(ctx, auth.RefreshTokenRequest{Refresh: tokens.Refresh}))

	_, err = f.svc.Auth().Refresh(ctx, auth.RefreshTokenRequest{Refresh: tokens.Refresh})
	assert.ErrorIs(t, err, auth.ErrorInvalidToken)

	assert.ErrorIs(t, f.svc.Auth().Logout(ctx, auth.RefreshTokenRequest{Refresh: "not-a-token"}), auth.ErrorInvalidToken)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "correct-horse")

	got, err := f.svc.User().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = f.svc.User().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
