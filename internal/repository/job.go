package repository

import (
	"context"
	"errors"
	"strings"

	"talenthub/internal/models"

	"gorm.io/gorm"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	GetByIDWithApplicants(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	ListActive(ctx context.Context, f JobFilter) ([]models.Job, int64, error)
	ListByPoster(ctx context.Context, posterID uint, f PosterJobFilter) ([]models.Job, int64, error)
	RecordApplicant(ctx context.Context, jobID, applicantID uint) error
}

// JobFilter narrows the public active-jobs listing.
type JobFilter struct {
	Search   string
	Location string
	JobType  string
	Limit    int
	Offset   int
}

// PosterJobFilter narrows an admin's own postings listing.
// Status is "active", "inactive" or empty for all.
type PosterJobFilter struct {
	Status string
	Limit  int
	Offset int
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) GetByIDWithApplicants(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).
		Preload("PostedBy").
		Preload("Applicants").
		First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) ListActive(ctx context.Context, f JobFilter) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("is_active = ?", true)

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(company_name) LIKE ?", pattern, pattern, pattern)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var jobs []models.Job
	if err := q.Preload("PostedBy").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

func (r *jobRepository) ListByPoster(ctx context.Context, posterID uint, f PosterJobFilter) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("posted_by_id = ?", posterID)

	switch f.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

// RecordApplicant bumps the denormalized counter and adds the applicant to
// the job's membership set. The counter uses a SQL expression rather than a
// read-modify-write so concurrent applies don't lose increments.
func (r *jobRepository) RecordApplicant(ctx context.Context, jobID, applicantID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Job{}).
			Where("id = ?", jobID).
			UpdateColumn("total_applications", gorm.Expr("total_applications + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{ID: jobID}).
			Association("Applicants").
			Append(&models.User{ID: applicantID})
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
