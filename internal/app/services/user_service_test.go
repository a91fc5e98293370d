package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

func boolPtr(b bool) *bool { return &b }

func TestAdminCannotDemoteOrDeleteSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.signup(t, "admin@univ.dz").User

	_, err := env.svc.Users.UpdateUser(ctx, admin.ID, admin.ID, &dto.AdminUpdateUserRequest{Role: models.RoleStudent, IsActive: boolPtr(true)})
	assert.ErrorIs(t, err, apperrors.ErrSelfModification)

	_, err = env.svc.Users.UpdateUser(ctx, admin.ID, admin.ID, &dto.AdminUpdateUserRequest{Role: models.RoleAdmin, IsActive: boolPtr(false)})
	assert.ErrorIs(t, err, apperrors.ErrSelfModification)

	_, err = env.svc.Users.UpdateUser(ctx, admin.ID, admin.ID, &dto.AdminUpdateUserRequest{Role: models.RoleAdmin, IsActive: boolPtr(true)})
	assert.NoError(t, err)

	assert.ErrorIs(t, env.svc.Users.DeleteUser(ctx, admin.ID, admin.ID), apperrors.ErrSelfModification)
}

func TestUpdateUserDisablesAndRevokes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.signup(t, "etudiant@univ.dz")

	req := &dto.AdminUpdateUserRequest{Role: models.RoleStudent, IsActive: boolPtr(false)}
	req.DisplayName = "  Etudiant  "
	req.Level = models.LevelL2
	user, err := env.svc.Users.UpdateUser(ctx, 999, student.User.ID, req)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Equal(t, "Etudiant", user.DisplayName)

	_, err = env.svc.Auth.RefreshToken(ctx, student.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestDeleteUserClearsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	student := env.signup(t, "etudiant@univ.dz").User

	_, err := env.svc.Bookmarks.Add(ctx, student.ID, c.ID)
	require.NoError(t, err)
	ch := env.chapter(t, c.ID, "Intro")
	_, err = env.svc.Progress.MarkViewed(ctx, student.ID, c.ID, models.KindChapter, ch.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Users.DeleteUser(ctx, 999, student.ID))

	_, err = env.svc.Users.GetUser(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	for _, key := range []string{kvstore.ProgressKey(student.ID), kvstore.BookmarksKey(student.ID)} {
		var v interface{}
		found, err := env.state.Load(ctx, key, &v)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}

func TestListUsersFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "amina@univ.dz")
	env.signup(t, "karim@univ.dz")

	users, err := env.svc.Users.ListUsers(ctx, domain.UserFilter{Search: "karim"}, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "karim@univ.dz", users[0].Email)

	users, err = env.svc.Users.ListUsers(ctx, domain.UserFilter{Role: models.RoleAdmin}, "")
	require.NoError(t, err)
	assert.Empty(t, users)
}
