package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One in-memory SQLite DB per connection; pin the pool to one.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  password_hash TEXT,
  address TEXT,
  city TEXT,
  is_admin INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  CONSTRAINT uq_users_email UNIQUE (email)
);`
	require.NoError(t, conn.Exec(users).Error)
	return conn
}

func TestRepositoryCreateAndFind(t *testing.T) {
	conn := setupIdentityTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := &models.User{Name: "Amina", Email: "amina@example.com", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina", byID.Name)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	conn := setupIdentityTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "First", Email: "dup@example.com"}))
	err := repo.Create(ctx, &models.User{Name: "Second", Email: "dup@example.com"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "uq_users_email"))
}

func TestRepositoryTouchLastLogin(t *testing.T) {
	conn := setupIdentityTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := &models.User{Name: "Amina", Email: "amina@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(ctx, user.ID, at))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, reloaded.LastLoginAt.Equal(at))
}
