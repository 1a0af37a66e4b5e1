package repository

import (
	"context"
	"errors"

	"talenthub/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for applicant profiles.
type ProfileRepository interface {
	GetByApplicantID(ctx context.Context, applicantID uint) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByApplicantID(ctx context.Context, applicantID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// Save upserts the profile: a zero ID inserts, otherwise the row is updated
// in full so parser-merged fields land atomically.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("Profile already exists for this applicant")
		}
		return models.NewInternalError(err)
	}
	return nil
}
