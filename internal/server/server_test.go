package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talenthub/internal/config"
	"talenthub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthRequired(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), okHandler)

	validClaims := func(sub string) jwt.MapClaims {
		now := time.Now()
		return jwt.MapClaims{
			"sub": sub,
			"iss": tokenIssuer,
			"aud": tokenAudience,
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
			"nbf": now.Unix(),
		}
	}

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("BadSignature", func(t *testing.T) {
		token := signToken(t, "other_secret", validClaims("1"))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		claims := validClaims("1")
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signToken(t, "test_secret", claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Token has expired", body["message"])
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		claims := validClaims("1")
		claims["iss"] = "someone-else"
		token := signToken(t, "test_secret", claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		mockRepo.On("GetByID", mock.Anything, uint(42)).
			Return(nil, models.NewNotFoundError("User", uint(42))).Once()

		token := signToken(t, "test_secret", validClaims("42"))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ValidToken", func(t *testing.T) {
		mockRepo.On("GetByID", mock.Anything, uint(7)).
			Return(&models.User{ID: 7, Role: models.RoleApplicant}, nil).Once()

		token := signToken(t, "test_secret", validClaims("7"))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	mockRepo.AssertExpectations(t)
}

func TestRequireRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app := fiber.New()
	app.Get("/admin-only", s.AuthRequired(), s.RequireRole(models.RoleAdmin), okHandler)

	issue := func(userID uint, role string) string {
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Role: role}, nil).Once()
		s := &Server{config: &config.Config{JWTSecret: "test_secret"}}
		token, err := s.generateToken(&models.User{ID: userID})
		require.NoError(t, err)
		return token
	}

	t.Run("ApplicantForbidden", func(t *testing.T) {
		token := issue(1, models.RoleApplicant)
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "FORBIDDEN", body["code"])
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		token := issue(2, models.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	mockRepo.AssertExpectations(t)
}
