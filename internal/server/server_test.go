package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guildbook/internal/auth"
	"guildbook/internal/config"
	"guildbook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func signToken(t *testing.T, identity, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  identity,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func openPlaceholderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB
}

// newRoutedApp builds an app through SetupRoutes so authentication, the
// capability table, and the degraded-mode gate are all exercised.
func newRoutedApp(t *testing.T, s *Server) *fiber.App {
	t.Helper()
	s.config = &config.Config{JWTSecret: testSecret}
	s.verifier = auth.NewJWTVerifier(testSecret)
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func TestRoutes_RequireCredential(t *testing.T) {
	s := newTestServer(new(MockGuideRepository), new(MockEndorsementRepository), new(MockCommentRepository))
	s.db = openPlaceholderDB(t)
	app := newRoutedApp(t, s)

	t.Run("Missing credential", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guides", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/guides", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Cookie credential accepted", func(t *testing.T) {
		guides := new(MockGuideRepository)
		guides.On("List", mock.Anything, 200).Return([]*models.GuideSummary{}, nil)
		s2 := newTestServer(guides, new(MockEndorsementRepository), new(MockCommentRepository))
		s2.db = openPlaceholderDB(t)
		app2 := newRoutedApp(t, s2)

		req := httptest.NewRequest(fiber.MethodGet, "/guides", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, "thrall", "member")})
		resp, err := app2.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRoutes_CapabilityTable(t *testing.T) {
	t.Run("Member cannot update", func(t *testing.T) {
		s := newTestServer(new(MockGuideRepository), new(MockEndorsementRepository), new(MockCommentRepository))
		s.db = openPlaceholderDB(t)
		app := newRoutedApp(t, s)

		req := jsonRequest(t, fiber.MethodPatch, "/guides/1", map[string]string{"title": "New"})
		req.Header.Set("Authorization", "Bearer "+signToken(t, "thrall", "member"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("Officer can update", func(t *testing.T) {
		guides := new(MockGuideRepository)
		guides.On("UpdateFields", mock.Anything, uint(1), mock.Anything).Return(nil)
		guides.On("SummaryByID", mock.Anything, uint(1)).
			Return(&models.GuideSummary{ID: 1, Title: "New"}, nil)
		s := newTestServer(guides, new(MockEndorsementRepository), new(MockCommentRepository))
		s.db = openPlaceholderDB(t)
		app := newRoutedApp(t, s)

		req := jsonRequest(t, fiber.MethodPatch, "/guides/1", map[string]string{"title": "New"})
		req.Header.Set("Authorization", "Bearer "+signToken(t, "jaina", "officer"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("GM can update", func(t *testing.T) {
		guides := new(MockGuideRepository)
		guides.On("UpdateFields", mock.Anything, uint(1), mock.Anything).Return(nil)
		guides.On("SummaryByID", mock.Anything, uint(1)).
			Return(&models.GuideSummary{ID: 1, Title: "New"}, nil)
		s := newTestServer(guides, new(MockEndorsementRepository), new(MockCommentRepository))
		s.db = openPlaceholderDB(t)
		app := newRoutedApp(t, s)

		req := jsonRequest(t, fiber.MethodPatch, "/guides/1", map[string]string{"title": "New"})
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", "gm"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRoutes_DegradedMode(t *testing.T) {
	s := &Server{} // no database configured
	app := newRoutedApp(t, s)

	req := httptest.NewRequest(fiber.MethodGet, "/guides", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "thrall", "member"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	t.Run("Liveness still answers", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Readiness reports degraded", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
