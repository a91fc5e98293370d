package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/uniportal/internal/app/models"
	appRepos "github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/config"
	"github.com/yigit/uniportal/internal/pkg/auth"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	repos := appRepos.NewMemoryRepositories()
	admin := config.AdminConfig{Email: " Admin@Univ.dz ", Password: "admin12345", DisplayName: "Admin"}

	require.NoError(t, CreateDefaultData(ctx, repos, admin, zerolog.Nop()))

	user, err := repos.Users.GetByEmail(ctx, "admin@univ.dz")
	require.NoError(t, err)
	assert.Equal(t, appModels.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, auth.CheckPassword(user.Password, "admin12345"))

	settings, err := repos.Settings.GetExamSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Enabled)

	// a second run finds both and changes nothing
	require.NoError(t, CreateDefaultData(ctx, repos, admin, zerolog.Nop()))
	users, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateDefaultDataWithoutAdmin(t *testing.T) {
	ctx := context.Background()
	repos := appRepos.NewMemoryRepositories()

	require.NoError(t, CreateDefaultData(ctx, repos, config.AdminConfig{}, zerolog.Nop()))
	users, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
