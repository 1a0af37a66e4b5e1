package server

import (
	"io"

	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadResume handles resume uploads for the authenticated applicant
func (s *Server) UploadResume(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("resume file is required"))
	}
	files := form.File["resume"]
	if len(files) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("resume file is required"))
	}
	if len(files) > 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("exactly one resume file is allowed per upload"))
	}
	fileHeader := files[0]

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		middleware.Logger.Error("reading resume upload failed", "error", err, "user_id", userID)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile, err := s.resumeSvc.Upload(c.Context(), service.UploadResumeInput{
		ApplicantID: userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, "Resume uploaded successfully", fiber.Map{
		"profile": profile,
	})
}
