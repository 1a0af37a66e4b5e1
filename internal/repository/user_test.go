package repository

import (
	"context"
	"testing"

	"talenthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	// One in-memory database per connection; force a single connection so
	// every goroutine in a test sees the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("CreateAndGetByEmail", func(t *testing.T) {
		user := &models.User{
			Name:     "Ada Admin",
			Email:    "ada@example.com",
			Password: "hashed",
			Role:     models.RoleAdmin,
		}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		got, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("GetByEmailUnknownReturnsNilNil", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DuplicateEmailIsConflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			Name:     "Ada Again",
			Email:    "ada@example.com",
			Password: "hashed",
			Role:     models.RoleAdmin,
		})
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("CreateApplicantCreatesLinkedProfile", func(t *testing.T) {
		user := &models.User{
			Name:     "Bob Builder",
			Email:    "bob@example.com",
			Password: "hashed",
			Role:     models.RoleApplicant,
		}
		require.NoError(t, repo.CreateApplicant(ctx, user))
		require.NotNil(t, user.ProfileID)

		var profile models.Profile
		require.NoError(t, db.Where("applicant_id = ?", user.ID).First(&profile).Error)
		assert.Equal(t, "Bob Builder", profile.Name)
		assert.Equal(t, "bob@example.com", profile.Email)

		got, err := repo.GetByIDWithProfile(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Profile)
		assert.Equal(t, profile.ID, got.Profile.ID)
	})

	t.Run("GetByIDUnknownIsNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("ListFiltersByRoleAndSearch", func(t *testing.T) {
		users, total, err := repo.List(ctx, UserFilter{Role: models.RoleApplicant, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "bob@example.com", users[0].Email)

		users, total, err = repo.List(ctx, UserFilter{Search: "Ada", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "ada@example.com", users[0].Email)
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, IsUniqueConstraintError(nil))
	assert.False(t, IsUniqueConstraintError(assert.AnError))
	assert.True(t, IsUniqueConstraintError(errString("duplicate key value violates unique constraint")))
	assert.True(t, IsUniqueConstraintError(errString("ERROR: something (SQLSTATE 23505)")))
	assert.True(t, IsUniqueConstraintError(errString("UNIQUE constraint failed: users.email")))
}

type errString string

func (e errString) Error() string { return string(e) }
