// Package service implements the application ledger and resume ingestion pipeline.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/observability"
	"talenthub/internal/repository"
)

// ApplicationService enforces the one-application-per-(job, applicant)
// invariant and records application lifecycle.
type ApplicationService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

// NewApplicationService returns a new ApplicationService.
func NewApplicationService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{jobRepo: jobRepo, appRepo: appRepo}
}

// Apply submits an application for jobID on behalf of applicantID.
//
// The insert relies on the storage layer's composite unique index for
// duplicate detection: of two concurrent submissions for the same pair,
// exactly one commits and the other receives a Conflict. The job counter and
// membership set are updated after the insert and are deliberately not part
// of the same transaction; a failure there is logged and the committed
// application stands (eventual consistency between counter and rows).
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID uint) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			observability.ApplicationsRejected.WithLabelValues("job_not_found").Inc()
		}
		return nil, err
	}
	if !job.IsActive {
		observability.ApplicationsRejected.WithLabelValues("job_inactive").Inc()
		return nil, models.NewJobInactiveError()
	}

	application := &models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      models.StatusApplied,
		AppliedAt:   time.Now().UTC(),
	}
	if err := s.appRepo.Create(ctx, application); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			observability.ApplicationsRejected.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}
	observability.ApplicationsSubmitted.Inc()

	if err := s.jobRepo.RecordApplicant(ctx, jobID, applicantID); err != nil {
		middleware.Logger.Error("failed to record applicant on job after successful application",
			slog.Uint64("job_id", uint64(jobID)),
			slog.Uint64("applicant_id", uint64(applicantID)),
			slog.String("error", err.Error()),
		)
	}

	return application, nil
}

// JobWithApplications loads a job together with its applications, newest first.
func (s *ApplicationService) JobWithApplications(ctx context.Context, jobID uint) (*models.Job, []models.Application, error) {
	job, err := s.jobRepo.GetByIDWithApplicants(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	applications, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return job, applications, nil
}
