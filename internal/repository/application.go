package repository

import (
	"context"

	"talenthub/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error)
	CountByJob(ctx context.Context, jobID uint) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts the application. The composite unique index on
// (job_id, applicant_id) decides duplicates: no prior-read check can close
// the race between two concurrent submissions, so the constraint violation
// is the expected duplicate signal and becomes a Conflict.
func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("You have already applied for this job")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var applications []models.Application
	if err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return applications, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	var applications []models.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return applications, nil
}

func (r *applicationRepository) CountByJob(ctx context.Context, jobID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
