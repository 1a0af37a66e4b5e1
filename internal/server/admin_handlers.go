package server

import (
	"strings"

	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ListApplicants returns all applicant accounts with their profiles
func (s *Server) ListApplicants(c *fiber.Ctx) error {
	p := parsePagination(c)

	role := strings.TrimSpace(c.Query("userType", models.RoleApplicant))
	if !models.IsValidRole(role) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userType must be Admin or Applicant"))
	}

	filter := repository.UserFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Role:   role,
		Limit:  p.Limit,
		Offset: p.Offset(),
	}

	applicants, total, err := s.userRepo.List(c.Context(), filter)
	if err != nil {
		middleware.Logger.Error("applicant listing failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"applicants": applicants,
		"pagination": paginationEnvelope(p, total),
	})
}

// GetApplicantDetails returns a single applicant with profile and applications
func (s *Server) GetApplicantDetails(c *fiber.Ctx) error {
	applicantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	applicant, err := s.userRepo.GetByIDWithProfile(c.Context(), applicantID)
	if err != nil {
		return respondWithAppError(c, err)
	}
	if applicant.Role != models.RoleApplicant {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Applicant", applicantID))
	}

	applications, err := s.appRepo.ListByApplicant(c.Context(), applicantID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"applicant":    applicant,
		"applications": applications,
	})
}

// ListAdminJobs returns the jobs posted by the authenticated admin
func (s *Server) ListAdminJobs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	p := parsePagination(c)

	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != "active" && status != "inactive" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("status must be active or inactive"))
	}

	jobs, total, err := s.jobRepo.ListByPoster(c.Context(), userID, repository.PosterJobFilter{
		Status: status,
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		middleware.Logger.Error("admin job listing failed", "error", err, "user_id", userID)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return respondSuccess(c, fiber.StatusOK, "", fiber.Map{
		"jobs":       jobs,
		"pagination": paginationEnvelope(p, total),
	})
}
