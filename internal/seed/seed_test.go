package seed

import (
	"testing"

	"talenthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
	))
	return db
}

func TestSeeder(t *testing.T) {
	db := setupSeedDB(t)
	s, err := NewSeeder(db)
	require.NoError(t, err)

	admins, err := s.SeedAdmins(3)
	require.NoError(t, err)
	require.Len(t, admins, 3)

	applicants, err := s.SeedApplicants(10)
	require.NoError(t, err)
	require.Len(t, applicants, 10)

	jobs, err := s.SeedJobs(admins, 8)
	require.NoError(t, err)
	require.Len(t, jobs, 8)

	created, err := s.SeedApplications(jobs, applicants, 4)
	require.NoError(t, err)

	t.Run("ApplicantsHaveProfiles", func(t *testing.T) {
		var profiles int64
		require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
		assert.Equal(t, int64(10), profiles)

		for _, a := range applicants {
			var user models.User
			require.NoError(t, db.First(&user, a.ID).Error)
			assert.NotNil(t, user.ProfileID)
			assert.Equal(t, models.RoleApplicant, user.Role)
		}
	})

	t.Run("JobsBelongToAdmins", func(t *testing.T) {
		adminIDs := map[uint]bool{}
		for _, a := range admins {
			adminIDs[a.ID] = true
		}
		for _, j := range jobs {
			assert.True(t, adminIDs[j.PostedByID])
			assert.True(t, models.IsValidJobType(j.JobType))
		}
	})

	t.Run("ApplicationCountsMatch", func(t *testing.T) {
		var rows int64
		require.NoError(t, db.Model(&models.Application{}).Count(&rows).Error)
		assert.Equal(t, int64(created), rows)

		var counterSum int64
		require.NoError(t, db.Model(&models.Job{}).
			Select("COALESCE(SUM(total_applications), 0)").Scan(&counterSum).Error)
		assert.Equal(t, rows, counterSum)
	})

	t.Run("ClearAllEmptiesTables", func(t *testing.T) {
		require.NoError(t, s.ClearAll())
		for _, model := range []any{&models.User{}, &models.Profile{}, &models.Job{}, &models.Application{}} {
			var count int64
			require.NoError(t, db.Model(model).Count(&count).Error)
			assert.Zero(t, count)
		}
	})
}
