// Package server contains the HTTP handlers for the recruitment API.
package server

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"talenthub/internal/cache"
	"talenthub/internal/config"
	"talenthub/internal/database"
	"talenthub/internal/middleware"
	"talenthub/internal/models"
	"talenthub/internal/parser"
	"talenthub/internal/repository"
	"talenthub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	jobRepo        repository.JobRepository
	appRepo        repository.ApplicationRepository
	resumeSvc      *service.ResumeService
	applicationSvc *service.ApplicationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	parserClient := parser.NewClient(
		cfg.ResumeParserURL,
		cfg.ResumeParserAPIKey,
		time.Duration(cfg.ResumeParseTimeout)*time.Second,
	)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		jobRepo:        jobRepo,
		appRepo:        appRepo,
		resumeSvc:      service.NewResumeService(profileRepo, userRepo, parserClient, cfg),
		applicationSvc: service.NewApplicationService(jobRepo, appRepo),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	prometheus := fiberprometheus.New("talenthub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	// Uploaded resumes are retrievable under their generated filename.
	app.Static("/uploads", s.uploadRoot())

	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Role checks always run after AuthRequired; identity comes from the
	// validated token, never from the request body.
	app.Post("/resume/upload",
		s.AuthRequired(), s.RequireRole(models.RoleApplicant),
		middleware.RateLimit(s.redis, 10, time.Minute, "resume_upload"),
		s.UploadResume)

	app.Post("/job", s.AuthRequired(), s.RequireRole(models.RoleAdmin), s.CreateJob)
	app.Get("/jobs", s.AuthRequired(), s.RequireAnyRole(), s.ListJobs)
	app.Get("/job/:id", s.AuthRequired(), s.RequireRole(models.RoleAdmin), s.GetJobDetails)
	app.Get("/apply", s.AuthRequired(), s.RequireRole(models.RoleApplicant), s.Apply)

	admin := app.Group("/admin", s.AuthRequired(), s.RequireRole(models.RoleAdmin))
	admin.Get("/applicants", s.ListApplicants)
	admin.Get("/applicant/:id", s.GetApplicantDetails)
	admin.Get("/jobs", s.ListAdminJobs)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": "Recruitment Management System API is running",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC(),
	})
}

// AuthRequired returns the authentication middleware. It validates the
// bearer token, then resolves the identity against the user store so a
// deleted account cannot keep using an old token.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access token is required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has expired"))
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token"))
		}
		if !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// The token asserts identity only; the role is resolved from the
		// store so role changes take effect without reissuing tokens.
		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid token - user not found"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

		c.Locals("userID", user.ID)
		c.Locals("userRole", user.Role)

		return c.Next()
	}
}

// RequireRole returns a middleware enforcing that the authenticated user
// holds the given role. It must run after AuthRequired.
func (s *Server) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("userRole").(string)
		if !ok || current != role {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Access denied. "+role+" privileges required."))
		}
		return c.Next()
	}
}

// RequireAnyRole admits any authenticated user with a known role.
func (s *Server) RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("userRole").(string)
		if !ok || !models.IsValidRole(current) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Access denied. Valid user privileges required."))
		}
		return c.Next()
	}
}

func (s *Server) uploadRoot() string {
	if s.config != nil && s.config.UploadDir != "" {
		return s.config.UploadDir
	}
	return service.DefaultUploadDir
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
