package usecase

import (
	"context"
	"testing"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (AuthService, *memStore) {
	store := newMemStore()
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
		Auth:    utils.AuthConfig{BcryptCost: bcrypt.MinCost, LoginPath: "/login"},
	}
	return NewAuthService(store.repo, config, zap.NewNop()), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct-horse",
	}, ClientInfo{UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, reg.Role)
	assert.NotEmpty(t, reg.Token)

	user, err := store.users.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	for _, identifier := range []string{"maria", "maria@example.com"} {
		resp, err := svc.Login(ctx, &request.LoginRequest{Username: identifier, Password: "correct-horse"}, ClientInfo{})
		require.NoError(t, err, identifier)

		session, err := store.sessions.FindValidSession(ctx, uuid.MustParse(resp.Token))
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, user.ID, session.UserID)
	}

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "maria", Password: "wrong-password"}, ClientInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, err = svc.Register(ctx, &request.RegisterRequest{
		Username: "maria2",
		Email:    "maria@example.com",
		Password: "correct-horse",
	}, ClientInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "sean",
		Email:    "sean@example.com",
		Password: "long-enough",
	}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.Token))
	assert.ErrorIs(t, svc.Logout(ctx, reg.Token), ErrNotFound)

	session, err := store.sessions.FindValidSession(ctx, uuid.MustParse(reg.Token))
	require.NoError(t, err)
	assert.Nil(t, session)

	n, err := svc.CleanSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = svc.Logout(ctx, "garbage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestPromoteToAdmin(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "aoife",
		Email:    "aoife@example.com",
		Password: "long-enough",
	}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToAdmin(ctx, "aoife"))

	user, err := store.users.FindByUsername(ctx, "aoife")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	assert.ErrorIs(t, svc.PromoteToAdmin(ctx, "nobody"), ErrNotFound)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &request.RegisterRequest{
		Username: "niamh",
		Email:    "niamh@example.com",
		Password: "long-enough",
	}, ClientInfo{})
	require.NoError(t, err)

	me, err := svc.CurrentUser(ctx, uuid.MustParse(reg.UserID))
	require.NoError(t, err)
	assert.Equal(t, "niamh", me.Username)
	assert.Equal(t, entity.RoleCustomer, me.Role)
	assert.True(t, me.IsActive)

	_, err = svc.CurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
