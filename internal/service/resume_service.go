package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/observability"
	"talenthub/internal/parser"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultUploadDir       = "uploads/resumes"
	DefaultMaxUploadSizeMB = 5
)

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedResumeMIMEs = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ResumeParser is the boundary to the external parsing service. Implemented
// by parser.Client; stubbed in tests.
type ResumeParser interface {
	Parse(ctx context.Context, content []byte) (*parser.Result, error)
}

// UploadResumeInput carries one uploaded artifact.
type UploadResumeInput struct {
	ApplicantID uint
	Filename    string
	ContentType string
	Content     []byte
}

// ResumeService runs the resume ingestion pipeline: validate, persist the
// artifact, best-effort parse, merge into the applicant's profile.
type ResumeService struct {
	profileRepo        repository.ProfileRepository
	userRepo           repository.UserRepository
	parser             ResumeParser
	uploadDir          string
	maxUploadSizeBytes int64
	parseTimeout       time.Duration
}

// NewResumeService builds the pipeline from config, falling back to defaults.
func NewResumeService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, resumeParser ResumeParser, cfg *config.Config) *ResumeService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB
	parseTimeout := 30 * time.Second

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
		if cfg.ResumeParseTimeout > 0 {
			parseTimeout = time.Duration(cfg.ResumeParseTimeout) * time.Second
		}
	}

	return &ResumeService{
		profileRepo:        profileRepo,
		userRepo:           userRepo,
		parser:             resumeParser,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		parseTimeout:       parseTimeout,
	}
}

// Upload ingests one resume for the applicant and returns the profile's
// persisted state.
//
// The artifact is written to durable storage before parsing is attempted, so
// it survives a parser outage. Parser failures are logged and absorbed: the
// upload still succeeds with the artifact location recorded. If persisting
// the profile itself fails, the just-written artifact is removed so no
// orphaned upload remains.
func (s *ResumeService) Upload(ctx context.Context, in UploadResumeInput) (*models.Profile, error) {
	if in.ApplicantID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedResumeExtensions[ext] && !allowedResumeMIMEs[normalizeContentType(in.ContentType)] {
		return nil, models.NewUnsupportedMediaTypeError("Only PDF and DOCX files are allowed.")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewPayloadTooLargeError(fmt.Sprintf("File size too large. Maximum size is %dMB.", s.maxUploadSizeBytes/(1024*1024)))
	}

	user, err := s.userRepo.GetByID(ctx, in.ApplicantID)
	if err != nil {
		return nil, err
	}

	// Persist the artifact before anything else can fail.
	storedName := generateResumeFilename(ext)
	storedPath := filepath.Join(s.uploadDir, storedName)
	if err := writeBytesToFile(storedPath, in.Content); err != nil {
		return nil, models.NewInternalError(err)
	}

	profile, err := s.profileRepo.GetByApplicantID(ctx, in.ApplicantID)
	if err != nil {
		s.removeArtifact(storedPath)
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{
			ApplicantID: in.ApplicantID,
			Name:        user.Name,
			Email:       user.Email,
		}
	}
	profile.ResumeFileAddress = filepath.ToSlash(storedPath)

	s.mergeParsedFields(ctx, profile, in.Content)

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.removeArtifact(storedPath)
		return nil, err
	}

	if user.ProfileID == nil {
		if err := s.userRepo.LinkProfile(ctx, user.ID, profile.ID); err != nil {
			s.removeArtifact(storedPath)
			return nil, err
		}
	}

	observability.ResumesUploaded.Inc()
	return profile, nil
}

// mergeParsedFields calls the external parser under its own timeout and error
// boundary. Scalars overwrite only when the parser supplied a non-empty
// value; collections are flattened to delimited text; the verbatim response
// is retained for reprocessing. Every failure path is a logged no-op.
func (s *ResumeService) mergeParsedFields(ctx context.Context, profile *models.Profile, content []byte) {
	if s.parser == nil {
		return
	}

	parseCtx, cancel := context.WithTimeout(ctx, s.parseTimeout)
	defer cancel()

	result, err := s.parser.Parse(parseCtx, content)
	if err != nil {
		observability.ResumeParseFailures.Inc()
		middleware.Logger.Warn("resume parsing service failed, keeping upload without parsed fields",
			slog.Uint64("applicant_id", uint64(profile.ApplicantID)),
			slog.String("error", err.Error()),
		)
		return
	}

	if result.Name != "" {
		profile.Name = result.Name
	}
	if result.Email != "" {
		profile.Email = result.Email
	}
	if result.Phone != "" {
		profile.Phone = result.Phone
	}
	if skills := result.FlattenSkills(); skills != "" {
		profile.Skills = skills
	}
	if education := result.FlattenEducation(); education != "" {
		profile.Education = education
	}
	if experience := result.FlattenExperience(); experience != "" {
		profile.Experience = experience
	}
	if len(result.Raw) > 0 {
		profile.ExtractedData = string(result.Raw)
	}
}

func (s *ResumeService) removeArtifact(path string) {
	if err := os.Remove(path); err != nil {
		middleware.Logger.Error("failed to delete uploaded resume during error recovery",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}

// generateResumeFilename builds a collision-resistant stored name:
// timestamp plus random suffix plus the original extension.
func generateResumeFilename(ext string) string {
	return fmt.Sprintf("resume-%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
