package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

func (e *testEnv) signup(t *testing.T, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := e.svc.Auth.Signup(context.Background(), &dto.SignupRequest{
		Email:       email,
		Password:    "motdepasse1",
		DisplayName: "Amina",
	})
	require.NoError(t, err)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.signup(t, "  Amina@Univ.DZ ")
	assert.Equal(t, "amina@univ.dz", resp.User.Email)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.NotEmpty(t, resp.Token.AccessToken)

	login, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "AMINA@univ.dz", Password: "motdepasse1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLoginAt)

	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "amina@univ.dz", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "nobody@univ.dz", Password: "motdepasse1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSignupRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "amina@univ.dz")

	_, err := env.svc.Auth.Signup(ctx, &dto.SignupRequest{Email: "AMINA@univ.dz", Password: "motdepasse1", DisplayName: "Autre"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = env.svc.Auth.Signup(ctx, &dto.SignupRequest{Email: "not-an-email", Password: "motdepasse1", DisplayName: "Autre"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = env.svc.Auth.Signup(ctx, &dto.SignupRequest{Email: "autre@univ.dz", Password: "court", DisplayName: "Autre"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signup(t, "amina@univ.dz")

	rotated, err := env.svc.Auth.RefreshToken(ctx, resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Token.RefreshToken, rotated.Token.RefreshToken)

	_, err = env.svc.Auth.RefreshToken(ctx, resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = env.svc.Auth.RefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = env.svc.Auth.RefreshToken(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	require.NoError(t, env.svc.Auth.Logout(ctx, resp.User.ID))
	_, err = env.svc.Auth.RefreshToken(ctx, rotated.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.ErrorIs(t, env.svc.Auth.Logout(ctx, 0), apperrors.ErrUnauthenticated)
}

func TestDisabledAccountCannotSignIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signup(t, "amina@univ.dz")

	user, err := env.repos.Users.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, env.repos.Users.Update(ctx, user))

	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "amina@univ.dz", Password: "motdepasse1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = env.svc.Auth.RefreshToken(ctx, resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
