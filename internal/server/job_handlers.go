package server

import (
	"strings"

	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/repository"
	"talenthub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateJobRequest is the payload for posting a new job.
type CreateJobRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CompanyName    string `json:"companyName"`
	Requirements   string `json:"requirements"`
	Location       string `json:"location"`
	JobType        string `json:"jobType"`
	SalaryMin      int    `json:"salaryMin"`
	SalaryMax      int    `json:"salaryMax"`
	SalaryCurrency string `json:"salaryCurrency"`
}

// CreateJob handles job posting creation by an admin
func (s *Server) CreateJob(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CompanyName = strings.TrimSpace(req.CompanyName)

	if err := validation.ValidateRequired("title", req.Title, 200); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateRequired("description", req.Description, 2000); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateRequired("companyName", req.CompanyName, 100); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLength("requirements", req.Requirements, 1000); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	jobType := req.JobType
	if jobType == "" {
		jobType = "Full-time"
	}
	if !models.IsValidJobType(jobType) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid job type"))
	}
	if req.SalaryMin < 0 || req.SalaryMax < 0 || (req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid salary range"))
	}

	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		CompanyName:    req.CompanyName,
		PostedByID:     userID,
		Requirements:   req.Requirements,
		Location:       strings.TrimSpace(req.Location),
		JobType:        jobType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		IsActive:       true,
	}

	if err := s.jobRepo.Create(c.Context(), job); err != nil {
		middleware.Logger.Error("job creation failed", "error", err, "posted_by", userID)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return respondSuccess(c, fiber.StatusCreated, "Job posted successfully", fiber.Map{
		"job": job,
	})
}

// ListJobs returns active job postings for any authenticated user
func (s *Server) ListJobs(c *fiber.Ctx) error {
	p := parsePagination(c)

	filter := repository.JobFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Location: strings.TrimSpace(c.Query("location")),
		JobType:  strings.TrimSpace(c.Query("jobType")),
		Limit:    p.Limit,
		Offset:   p.Offset(),
	}
	if filter.JobType != "" && !models.IsValidJobType(filter.JobType) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid job type"))
	}

	jobs, total, err := s.jobRepo.ListActive(c.Context(), filter)
	if err != nil {
		middleware.Logger.Error("job listing failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"jobs":       jobs,
		"pagination": paginationEnvelope(p, total),
	})
}

// GetJobDetails returns a job with its applications for the posting admin
func (s *Server) GetJobDetails(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, applications, err := s.applicationSvc.JobWithApplications(c.Context(), jobID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"job":          job,
		"applications": applications,
	})
}

// Apply submits a job application for the authenticated applicant
func (s *Server) Apply(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	jobID := c.QueryInt("job_id", 0)
	if jobID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("job_id query parameter is required"))
	}

	application, err := s.applicationSvc.Apply(c.Context(), uint(jobID), userID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, "Application submitted successfully", fiber.Map{
		"application": application,
	})
}
