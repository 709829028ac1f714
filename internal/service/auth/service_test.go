package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/service/event"
	"github.com/healthvault/health-api/internal/service/profile"
	"github.com/healthvault/health-api/pkg/auth"
	"github.com/healthvault/health-api/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := memory.NewProfileRepository()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	profiles := profile.NewService(repo, event.NewService(memory.NewOutboxRepository()))
	require.NoError(t, profiles.Seed(context.Background(), "Demo Owner", "demo@healthvault.local", "demo-password", hasher))

	return NewService(repo, hasher, tokens)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "demo@healthvault.local",
		Password: "demo-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "demo@healthvault.local", claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "demo@healthvault.local",
		Password: "wrong",
	})
	assert.Error(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "someone-else@healthvault.local",
		Password: "demo-password",
	})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "demo@healthvault.local",
		Password: "demo-password",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// An access token is not accepted where a refresh token is expected.
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "demo@healthvault.local",
		Password: "demo-password",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
