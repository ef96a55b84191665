package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usersvc/internal/db"
	"usersvc/internal/model"
)

// setupTestDB opens a fresh in-memory SQLite database with the users table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open("sqlite", ":memory:", "silent")
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// Every pooled connection to :memory: would otherwise get its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(&model.User{}))
	return gormDB
}

func newUser(name, email string, age int) *model.User {
	return &model.User{Name: name, Email: email, Age: age, CreatedAt: time.Now().UTC().Truncate(time.Second)}
}

func TestUserRepository_SaveInsertsAndAssignsID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newUser("Test User", "test@example.com", 30)
	require.NoError(t, repo.Save(ctx, user))

	assert.NotZero(t, user.ID)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", found.Name)
	assert.Equal(t, "test@example.com", found.Email)
	assert.Equal(t, 30, found.Age)
	assert.True(t, user.CreatedAt.Equal(found.CreatedAt))
}

func TestUserRepository_SaveUpdatesExisting(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newUser("Before", "before@example.com", 20)
	require.NoError(t, repo.Save(ctx, user))
	id, createdAt := user.ID, user.CreatedAt

	user.Name = "After"
	user.Email = "after@example.com"
	user.Age = 21
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, "After", found.Name)
	assert.Equal(t, "after@example.com", found.Email)
	assert.Equal(t, 21, found.Age)
	assert.True(t, createdAt.Equal(found.CreatedAt))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newUser("Test User", "test@example.com", 30)))

	found, err := repo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Test User", found.Name)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByIDMissing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user, err := repo.FindByID(context.Background(), 42)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindAll(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Save(ctx, newUser("User 1", "user1@example.com", 25)))
	require.NoError(t, repo.Save(ctx, newUser("User 2", "user2@example.com", 35)))

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	names := []string{users[0].Name, users[1].Name}
	assert.ElementsMatch(t, []string{"User 1", "User 2"}, names)
}

func TestUserRepository_ExistsAndDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	keep := newUser("Keep", "keep@example.com", 40)
	drop := newUser("Drop", "drop@example.com", 41)
	require.NoError(t, repo.Save(ctx, keep))
	require.NoError(t, repo.Save(ctx, drop))

	exists, err := repo.ExistsByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, drop.ID))

	exists, err = repo.ExistsByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByEmail(ctx, "drop@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err = repo.ExistsByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newUser("First", "dup@example.com", 30)))

	err := repo.Save(ctx, newUser("Second", "dup@example.com", 31))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
