package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
	"github.com/dolphin-software/users-service/internal/platform/migrations"
)

// setupTestDB prepares an in-memory SQLite database with the users schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Run(db), "failed to migrate table")
	return db
}

func sampleUser(email string) *domain.User {
	day := time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)
	return &domain.User{FullName: "Alice", Phone: "111", Email: email, Password: "p1", CreateDate: day, UpdateDate: day}
}

func TestRepository_NotConfigured(t *testing.T) {
	repo := NewRepository(nil)
	_, err := repo.List(context.Background())
	require.Error(t, err)
}

func TestRepository_Create(t *testing.T) {
	t.Run("assigns id and round trips", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		ctx := context.Background()

		created, err := repo.Create(ctx, sampleUser("a@x.com"))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		ctx := context.Background()

		_, err := repo.Create(ctx, sampleUser("a@x.com"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleUser("a@x.com"))
		assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
	})

	t.Run("duplicate email differing in case", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		ctx := context.Background()

		_, err := repo.Create(ctx, sampleUser("a@x.com"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleUser("A@X.com"))
		assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
	})

	t.Run("nil user", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		_, err := repo.Create(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	t.Run("replaces columns", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		ctx := context.Background()

		created, err := repo.Create(ctx, sampleUser("a@x.com"))
		require.NoError(t, err)

		created.Password = "p2"
		created.UpdateDate = created.UpdateDate.AddDate(0, 1, 0)
		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "p2", updated.Password)
		assert.Equal(t, created.UpdateDate, updated.UpdateDate)
		assert.Equal(t, created.CreateDate, updated.CreateDate)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		user := sampleUser("a@x.com")
		user.ID = uuid.New()

		_, err := repo.Update(context.Background(), user)
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

func TestRepository_ListAndDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	var ids []uuid.UUID
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		created, err := repo.Create(ctx, sampleUser(email))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	require.NoError(t, repo.Delete(ctx, ids[1]))
	require.NoError(t, repo.Delete(ctx, ids[1]))
	_, err = repo.GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, ports.ErrNotFound)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
