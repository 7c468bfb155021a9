package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/testutil"
)

func createUser(t *testing.T, repo UserRepository, username string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hash",
		IsActive:     true,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository(testutil.SetupInMemoryDB(t))

	created := createUser(t, repo, "baker", false)
	assert.NotZero(t, created.ID)

	byID, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "baker", byID.Username)

	byName, err := repo.GetByUsername(context.Background(), "baker")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)
}

func TestUserGet_UnknownReturnsNil(t *testing.T) {
	repo := NewUserRepository(testutil.SetupInMemoryDB(t))

	user, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserUpdateLastLogin(t *testing.T) {
	repo := NewUserRepository(testutil.SetupInMemoryDB(t))
	created := createUser(t, repo, "baker", false)

	loginTime := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(context.Background(), created.ID, loginTime))

	user, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.WithinDuration(t, loginTime, *user.LastLogin, time.Second)
}

func TestIsAdmin(t *testing.T) {
	repo := NewUserRepository(testutil.SetupInMemoryDB(t))

	admin := createUser(t, repo, "admin", true)
	regular := createUser(t, repo, "baker", false)

	isAdmin, err := repo.IsAdmin(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = repo.IsAdmin(context.Background(), regular.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unknown users are simply not admins
	isAdmin, err = repo.IsAdmin(context.Background(), 99999)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
